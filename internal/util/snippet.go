package util

import "strings"

// ExtractSnippet returns up to maxLines source lines centered on a 1-based
// line number, for showing the offending code next to an issue.
func ExtractSnippet(content string, line, maxLines int) string {
	if content == "" || line < 1 {
		return ""
	}
	if maxLines <= 0 {
		maxLines = 3
	}
	lines := strings.Split(content, "\n")
	if line > len(lines) {
		return ""
	}
	s := max(0, line-1-maxLines/2)
	e := min(len(lines)-1, line-1+maxLines/2)
	return strings.Join(lines[s:e+1], "\n")
}
