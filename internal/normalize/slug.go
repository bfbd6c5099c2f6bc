package normalize

import (
	"strings"
	"unicode"
)

// Slug converts a display name (or URL) into a stable, URL-safe record
// identifier: lowercase, alphanumeric runs joined by single hyphens.
// Upserts keyed by slug are idempotent across re-crawls.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
