package plugins

import (
	"fmt"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
	"github.com/xab-mack/metaast/internal/traverse"
)

// nestingDepth flags control-flow constructs nested deeper than max_nesting.
// Reported once, at the outermost construct of an offending chain.
type nestingDepth struct{}

const defaultMaxNesting = 4

func (d *nestingDepth) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{
		Name:         "nesting-depth",
		Category:     model.CategoryComplexity,
		Severity:     model.SeverityWarning,
		Description:  "reports conditionals and loops nested beyond the configured limit",
		Configurable: true,
	}
}

// Setup resolves max_nesting once; a non-positive limit disables the analyzer
// for the run.
func (d *nestingDepth) Setup(ctx *analyzer.Context) analyzer.SetupResult {
	max := ctx.IntOption("max_nesting", defaultMaxNesting)
	if max <= 0 {
		return analyzer.SkipWith("max_nesting disabled")
	}
	return analyzer.Ready(ctx.WithScope(max))
}

func (d *nestingDepth) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if !nests(n.Type) {
		return nil
	}
	// Only the outermost construct of a chain reports.
	for _, a := range ctx.Ancestors {
		if nests(a.Type) {
			return nil
		}
	}
	max, _ := ctx.Scope.(int)
	if max == 0 {
		max = defaultMaxNesting
	}
	level := nestingLevel(n)
	if level <= max {
		return nil
	}
	return []model.Issue{{
		Message:  fmt.Sprintf("control flow nested %d levels deep (limit %d)", level, max),
		Node:     n,
		Metadata: map[string]any{"nesting_level": level, "max_nesting": max},
	}}
}

func nests(t node.Type) bool {
	return t == node.TypeConditional || t == node.TypeLoop
}

// nestingLevel is the longest chain of nesting constructs in the subtree,
// counting n itself.
func nestingLevel(n *node.Node) int {
	deepest := 0
	for _, c := range traverse.Children(n) {
		if d := nestingLevel(c); d > deepest {
			deepest = d
		}
	}
	if nests(n.Type) {
		deepest++
	}
	return deepest
}
