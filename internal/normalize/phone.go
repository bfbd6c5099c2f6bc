// Package normalize holds pure string canonicalizers for scraped values:
// phone numbers, address blobs, transaction text blocks, and record IDs.
// Nothing in this package performs I/O.
package normalize

import "strings"

// Area-code repair for a recurring source typo: 426 is unassigned, 425 is
// the correct code for the region the listings belong to.
const (
	typoAreaCode    = "426"
	fixedAreaCode   = "425"
	typoAreaCode1   = "1426"
	fixedAreaCode1  = "1425"
	usCountryPrefix = "1"
)

// Phone canonicalizes a raw phone string toward E.164. It is a best-effort
// reformatter, not a validator: it never rejects input. An empty result
// means "no value".
//
// Steps: strip non-ASCII (emoji glyphs embedded in labels), keep digits and
// a leading plus, repair the 426/1426 area-code typo, then prefix by length
// (10 digits assumed domestic, 11 starting with 1 gets a bare plus, longer
// strings get a plus as-is).
func Phone(raw string) string {
	digits := keepDigits(stripNonASCII(raw))
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "+") {
		return digits
	}

	if strings.HasPrefix(digits, typoAreaCode1) {
		digits = fixedAreaCode1 + digits[len(typoAreaCode1):]
	} else if strings.HasPrefix(digits, typoAreaCode) {
		digits = fixedAreaCode + digits[len(typoAreaCode):]
	}

	switch {
	case len(digits) == 10:
		return "+" + usCountryPrefix + digits
	case len(digits) == 11 && strings.HasPrefix(digits, usCountryPrefix):
		return "+" + digits
	default:
		return "+" + digits
	}
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepDigits keeps digit runes and a plus only when it leads the string.
func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LooksLikePhone reports whether a line of text is itself a phone number
// (used to filter phone lines that leak into address blocks).
func LooksLikePhone(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "+1") {
		return true
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, line)
	if len(stripped) < 10 {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
