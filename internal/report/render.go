// Package report renders a runner report for human or machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/xab-mack/metaast/internal/model"
	"github.com/xab-mack/metaast/internal/util"
)

var severityPaint = map[model.Severity]*color.Color{
	model.SeverityError:   color.New(color.FgRed, color.Bold),
	model.SeverityWarning: color.New(color.FgYellow),
	model.SeverityInfo:    color.New(color.FgCyan),
}

// ToJSON serializes the full report.
func ToJSON(rep *model.Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// WriteTable prints a human-readable issue listing with colored severities.
func WriteTable(w io.Writer, rep *model.Report) {
	fmt.Fprintf(w, "Issues: %d (analyzers: %s)\n", rep.Summary.Total, strings.Join(rep.AnalyzersRun, ", "))
	for _, sk := range rep.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", sk.Name, sk.Reason)
	}
	for _, is := range rep.Issues {
		sev := string(is.Severity)
		if paint, ok := severityPaint[is.Severity]; ok {
			sev = paint.Sprint(sev)
		}
		loc := ""
		if is.Location != nil {
			loc = fmt.Sprintf(" @%d:%d", is.Location.Line, is.Location.Col)
		} else if is.Node != nil && is.Node.Attrs.Line > 0 {
			loc = fmt.Sprintf(" @%d:%d", is.Node.Attrs.Line, is.Node.Attrs.Col)
		}
		what := ""
		if is.Node != nil {
			what = fmt.Sprintf(" <%s>", is.Node.Type)
		}
		fmt.Fprintf(w, "- [%s] %s%s%s %s\n", sev, is.Analyzer, what, loc, is.Message)
		if is.Suggestion != nil && is.Suggestion.Message != "" {
			fmt.Fprintf(w, "    fix (%s): %s\n", is.Suggestion.Action, is.Suggestion.Message)
		}
		if snippet := snippetFor(rep, is); snippet != "" {
			for _, line := range strings.Split(snippet, "\n") {
				fmt.Fprintf(w, "    | %s\n", line)
			}
		}
	}
	if rep.Timing != nil {
		fmt.Fprintf(w, "elapsed %s\n", rep.Timing.Total)
	}
}

// snippetFor shows the offending source lines when the document kept its
// original text and the issue knows its position.
func snippetFor(rep *model.Report, is model.Issue) string {
	if rep.Document == nil || rep.Document.Source == "" {
		return ""
	}
	line := 0
	if is.Node != nil {
		line = is.Node.Attrs.Line
	}
	if is.Location != nil {
		line = is.Location.Line
	}
	if line < 1 {
		return ""
	}
	return util.ExtractSnippet(rep.Document.Source, line, 3)
}
