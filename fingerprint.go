package jsontools

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint derives the stable classification signature used by every
// engine that emits a structured error: the first 16 hex characters of
// sha256 over "tool|stage|class|code|http_status". It depends on nothing
// else, so changing a message never changes the fingerprint.
func Fingerprint(tool, stage, class, code string, httpStatus int) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%d", tool, stage, class, code, httpStatus)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:16]
}

// Truncate shortens s to at most limit runes. No suffix is appended; the
// cut is the whole deterministic story.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
