package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for an issue key, so downstream tooling
// can track an issue across runs even when its position drifts.
func Fingerprint(analyzer, nodeType string, line, col int, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d|%s", analyzer, nodeType, line, col, message)
	return hex.EncodeToString(h.Sum(nil))
}
