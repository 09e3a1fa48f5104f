// Package analyzer defines the plugin contract: the capability set every
// analyzer implements and the per-run context threaded through one traversal.
package analyzer

import (
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// Analyzer is the required capability set. Meta must return complete metadata
// with a registry-unique name; Analyze is called once per visited node, in
// traversal order, and returns the issues found at that node.
type Analyzer interface {
	Meta() model.AnalyzerMeta
	Analyze(n *node.Node, ctx *Context) []model.Issue
}

// Setup is the optional pre-run hook. It sees the analyzer's initial context
// and either readies a (possibly enriched) context or skips the whole run.
// A skipped analyzer receives no Analyze or Teardown calls and is excluded
// from the report's executed-analyzer list.
type Setup interface {
	Setup(ctx *Context) SetupResult
}

// Teardown is the optional post-run hook. It receives the accumulated issue
// list and returns a possibly augmented one; teardown calls chain across
// analyzers in resolution order.
type Teardown interface {
	Teardown(ctx *Context, issues []model.Issue) []model.Issue
}

// SetupResult is the tagged outcome of a Setup call.
type SetupResult struct {
	Ctx     *Context
	Skipped bool
	Reason  string
}

// Ready marks the analyzer ready with the given context.
func Ready(ctx *Context) SetupResult { return SetupResult{Ctx: ctx} }

// SkipWith opts the analyzer out of the run.
func SkipWith(reason string) SetupResult { return SetupResult{Skipped: true, Reason: reason} }
