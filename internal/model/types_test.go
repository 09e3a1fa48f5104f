package model

import "testing"

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"error":   SeverityError,
		"warning": SeverityWarning,
		"info":    SeverityInfo,
		"bogus":   SeverityInfo,
		"":        SeverityInfo,
	}
	for in, want := range cases {
		if got := ParseSeverity(in); got != want {
			t.Fatalf("ParseSeverity(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !SeverityGTE(SeverityError, SeverityWarning) {
		t.Fatalf("error must outrank warning")
	}
	if !SeverityGTE(SeverityWarning, SeverityWarning) {
		t.Fatalf("ordering must be reflexive")
	}
	if SeverityGTE(SeverityInfo, SeverityError) {
		t.Fatalf("info must not outrank error")
	}
}

func TestSummarize(t *testing.T) {
	issues := []Issue{
		{Analyzer: "a", Category: CategoryStyle, Severity: SeverityWarning},
		{Analyzer: "a", Category: CategoryStyle, Severity: SeverityWarning},
		{Analyzer: "b", Category: CategorySecurity, Severity: SeverityError},
	}
	s := Summarize(issues)
	if s.Total != 3 {
		t.Fatalf("total = %d", s.Total)
	}
	if s.BySeverity[SeverityWarning] != 2 || s.BySeverity[SeverityError] != 1 {
		t.Fatalf("by severity = %v", s.BySeverity)
	}
	if s.ByCategory[CategoryStyle] != 2 || s.ByCategory[CategorySecurity] != 1 {
		t.Fatalf("by category = %v", s.ByCategory)
	}
	if s.ByAnalyzer["a"] != 2 || s.ByAnalyzer["b"] != 1 {
		t.Fatalf("by analyzer = %v", s.ByAnalyzer)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.BySeverity == nil {
		t.Fatalf("empty summary must still carry initialized maps")
	}
}
