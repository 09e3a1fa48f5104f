package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xab-mack/metaast/internal/model"
)

type modelT struct {
	report *model.Report
	cursor int
}

func initialModel(rep *model.Report) modelT { return modelT{report: rep} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.report.Issues)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issues (%d), q to quit\n\n", len(m.report.Issues))
	for i, is := range m.report.Issues {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s [%s] <%s> %s\n", marker, is.Analyzer, is.Severity, nodeType(is), is.Message)
	}
	if len(m.report.Issues) > 0 {
		sel := m.report.Issues[m.cursor]
		if sel.Suggestion != nil {
			fmt.Fprintf(&b, "\nfix (%s): %s\n", sel.Suggestion.Action, sel.Suggestion.Message)
		}
	}
	return b.String()
}

func nodeType(is model.Issue) string {
	if is.Node == nil {
		return "?"
	}
	return string(is.Node.Type)
}

// Run launches a minimal TUI list view over a report.
func Run(rep *model.Report) error {
	p := tea.NewProgram(initialModel(rep))
	_, err := p.Run()
	return err
}
