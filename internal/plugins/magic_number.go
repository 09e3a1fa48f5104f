package plugins

import (
	"fmt"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// magicNumber flags bare numeric literals outside a binding or assignment.
// Zero and one are conventional and ignored. Teardown collapses repeats of
// the same value to a single issue carrying an occurrence count.
type magicNumber struct{}

func (d *magicNumber) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{
		Name:        "magic-number",
		Category:    model.CategoryStyle,
		Severity:    model.SeverityInfo,
		Description: "reports unnamed numeric constants used outside bindings",
	}
}

// Setup seeds the per-run occurrence table.
func (d *magicNumber) Setup(ctx *analyzer.Context) analyzer.SetupResult {
	return analyzer.Ready(ctx.WithScope(map[string]int{}))
}

func (d *magicNumber) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeLiteral {
		return nil
	}
	if n.Attrs.Kind != node.LiteralInteger && n.Attrs.Kind != node.LiteralFloat {
		return nil
	}
	if trivial(n.Value) {
		return nil
	}
	if p := ctx.Parent(); p != nil {
		switch p.Type {
		case node.TypeBinding, node.TypeAssignment:
			return nil
		}
	}
	key := fmt.Sprintf("%v", n.Value)
	if counts, ok := ctx.Scope.(map[string]int); ok {
		counts[key]++
	}
	return []model.Issue{{
		Message:  fmt.Sprintf("magic number %v; bind it to a named value", n.Value),
		Node:     n,
		Metadata: map[string]any{"value": key},
	}}
}

// Teardown keeps the first issue per distinct value and annotates it with how
// often the value appeared.
func (d *magicNumber) Teardown(ctx *analyzer.Context, issues []model.Issue) []model.Issue {
	counts, _ := ctx.Scope.(map[string]int)
	seen := map[string]bool{}
	out := issues[:0:0]
	for _, is := range issues {
		if is.Analyzer != d.Meta().Name {
			out = append(out, is)
			continue
		}
		key, _ := is.Metadata["value"].(string)
		if seen[key] {
			continue
		}
		seen[key] = true
		if counts[key] > 1 {
			is.Metadata["occurrences"] = counts[key]
		}
		out = append(out, is)
	}
	return out
}

func trivial(v any) bool {
	switch x := v.(type) {
	case int:
		return x == 0 || x == 1 || x == -1
	case int64:
		return x == 0 || x == 1 || x == -1
	case float64:
		return x == 0 || x == 1
	default:
		return false
	}
}
