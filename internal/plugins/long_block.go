package plugins

import (
	"fmt"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// longBlock flags blocks with more than max_statements direct statements.
type longBlock struct{}

const defaultMaxStatements = 25

func (d *longBlock) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{
		Name:         "long-block",
		Category:     model.CategoryComplexity,
		Severity:     model.SeverityInfo,
		Description:  "reports blocks with more statements than the configured limit",
		Configurable: true,
	}
}

func (d *longBlock) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeBlock {
		return nil
	}
	max := ctx.IntOption("max_statements", defaultMaxStatements)
	if len(n.Children) <= max {
		return nil
	}
	msg := fmt.Sprintf("block has %d statements (limit %d)", len(n.Children), max)
	if ctx.EnclosingFunction != "" {
		msg = fmt.Sprintf("%s in function %q", msg, ctx.EnclosingFunction)
	}
	return []model.Issue{{
		Message:  msg,
		Node:     n,
		Metadata: map[string]any{"statements": len(n.Children), "max_statements": max},
	}}
}
