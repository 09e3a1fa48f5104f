package plugins

import (
	"fmt"

	"github.com/xab-mack/metaast/internal/analyzer"
	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/node"
)

// unreachableCode flags statements following an early return inside a block.
// Reported once per block, at the first unreachable statement, with a removal
// suggestion.
type unreachableCode struct{}

func (d *unreachableCode) Meta() model.AnalyzerMeta {
	return model.AnalyzerMeta{
		Name:        "unreachable-code",
		Category:    model.CategoryDeadCode,
		Severity:    model.SeverityWarning,
		Description: "reports statements that can never execute because a return precedes them",
	}
}

func (d *unreachableCode) Analyze(n *node.Node, ctx *analyzer.Context) []model.Issue {
	if n.Type != node.TypeBlock {
		return nil
	}
	for i, stmt := range n.Children {
		if stmt.Type == node.TypeReturn && i+1 < len(n.Children) {
			dead := n.Children[i+1]
			return []model.Issue{{
				Message: fmt.Sprintf("%d statement(s) after return are unreachable", len(n.Children)-i-1),
				Node:    dead,
				Suggestion: &model.Suggestion{
					Action:  model.ActionRemove,
					Message: "delete the statements after the return",
				},
				Metadata: map[string]any{"unreachable_count": len(n.Children) - i - 1},
			}}
		}
	}
	return nil
}
