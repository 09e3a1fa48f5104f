package util

import (
	"strings"
	"testing"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("nesting-depth", "conditional", 3, 1, "too deep")
	b := Fingerprint("nesting-depth", "conditional", 3, 1, "too deep")
	if a != b {
		t.Fatalf("same key must hash identically")
	}
	if a == Fingerprint("nesting-depth", "conditional", 4, 1, "too deep") {
		t.Fatalf("different keys must hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
}

func TestExtractSnippet(t *testing.T) {
	src := "one\ntwo\nthree\nfour\nfive"
	got := ExtractSnippet(src, 3, 3)
	if got != "two\nthree\nfour" {
		t.Fatalf("snippet = %q", got)
	}
	if ExtractSnippet(src, 99, 3) != "" {
		t.Fatalf("out-of-range line must yield nothing")
	}
	if ExtractSnippet("", 1, 3) != "" {
		t.Fatalf("empty source must yield nothing")
	}
	// Edges clamp instead of panicking.
	if !strings.HasPrefix(ExtractSnippet(src, 1, 3), "one") {
		t.Fatalf("first-line snippet must start at the top")
	}
}
