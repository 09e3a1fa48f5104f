package plugins

import (
	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// emptyHandler flags try constructs whose handler block swallows the
// exception without doing anything.
type emptyHandler struct{}

func (d *emptyHandler) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{
		Name:        "empty-handler",
		Category:    model.CategorySecurity,
		Severity:    model.SeverityWarning,
		Description: "reports exception handlers with an empty body",
	}
}

func (d *emptyHandler) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeTry {
		return nil
	}
	handlers := n.Children[1]
	if handlers.Type != node.TypeBlock || len(handlers.Children) > 0 {
		return nil
	}
	return []model.Issue{{
		Message: "exception handler is empty; the failure is silently discarded",
		Node:    n,
	}}
}
