package model

import (
	"time"

	"github.com/xab-mack/metaast/internal/node"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityError):
		return SeverityError
	case string(SeverityWarning):
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityInfo: 1, SeverityWarning: 2, SeverityError: 3}
	return order[a] >= order[b]
}

// Category groups analyzers by what they look for.
type Category string

const (
	CategoryComplexity    Category = "complexity"
	CategorySecurity      Category = "security"
	CategoryDeadCode      Category = "dead_code"
	CategoryStyle         Category = "style"
	CategoryEncapsulation Category = "encapsulation"
)

// AnalyzerMeta is the metadata every analyzer declares about itself.
// Name must be unique across the registry.
type AnalyzerMeta struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Severity     Severity `json:"severity"`
	Description  string   `json:"description"`
	Configurable bool     `json:"configurable"`
}

// SuggestionAction says how a proposed fix relates to the offending node.
type SuggestionAction string

const (
	ActionReplace      SuggestionAction = "replace"
	ActionRemove       SuggestionAction = "remove"
	ActionInsertBefore SuggestionAction = "insert_before"
	ActionInsertAfter  SuggestionAction = "insert_after"
)

// Suggestion is an optional machine-applicable fix attached to an issue.
// Replacement is a proposed subtree; the input document is never edited.
type Suggestion struct {
	Action      SuggestionAction `json:"action"`
	Replacement *node.Node       `json:"replacement,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Location is an optional source position for an issue.
type Location struct {
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Path string `json:"path,omitempty"`
}

// Issue is one finding produced by an analyzer for one node.
type Issue struct {
	Analyzer   string         `json:"analyzer"`
	Category   Category       `json:"category"`
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	Node       *node.Node     `json:"node,omitempty"`
	Location   *Location      `json:"location,omitempty"`
	Suggestion *Suggestion    `json:"suggestion,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	// Fingerprint is a stable key for tracking the issue across runs;
	// the runner fills it in when the analyzer leaves it empty.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Document is one analysis request: a conforming root plus front-end metadata.
// Never mutated after construction; analyses only produce derived reports.
type Document struct {
	Root     *node.Node     `json:"root" yaml:"root" msgpack:"root"`
	Language string         `json:"language" yaml:"language" msgpack:"language"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" msgpack:"metadata,omitempty"`
	Source   string         `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
}

// NewDocument builds a document from a front end's output.
func NewDocument(root *node.Node, language string, metadata map[string]any, source string) *Document {
	return &Document{Root: root, Language: language, Metadata: metadata, Source: source}
}

// Summary aggregates issue counts.
type Summary struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByCategory map[Category]int `json:"by_category"`
	ByAnalyzer map[string]int   `json:"by_analyzer"`
}

// Summarize counts issues by severity, category, and analyzer.
func Summarize(issues []Issue) Summary {
	s := Summary{
		Total:      len(issues),
		BySeverity: map[Severity]int{},
		ByCategory: map[Category]int{},
		ByAnalyzer: map[string]int{},
	}
	for _, is := range issues {
		s.BySeverity[is.Severity]++
		s.ByCategory[is.Category]++
		s.ByAnalyzer[is.Analyzer]++
	}
	return s
}

// Timing holds optional per-run timing, keyed by analyzer name.
type Timing struct {
	Total       time.Duration            `json:"total"`
	PerAnalyzer map[string]time.Duration `json:"per_analyzer,omitempty"`
}

// SkippedAnalyzer records an analyzer that opted out (or was demoted) at setup.
type SkippedAnalyzer struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Report is the aggregate result of one runner invocation.
type Report struct {
	RunID        string            `json:"run_id"`
	Document     *Document         `json:"-"`
	AnalyzersRun []string          `json:"analyzers_run"`
	Skipped      []SkippedAnalyzer `json:"skipped,omitempty"`
	Issues       []Issue           `json:"issues"`
	Summary      Summary           `json:"summary"`
	Timing       *Timing           `json:"timing,omitempty"`
}
