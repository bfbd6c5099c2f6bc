package normalize

import "strings"

// ParsedAddress is the structured form of a multi-line office address blob.
type ParsedAddress struct {
	Street string
	City   string
	State  string
	Zip    string
}

// CleanAddressLines splits a raw address blob into trimmed lines, dropping
// boilerplate phrases and any line that is itself a phone number.
func CleanAddressLines(raw string, junk []string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || isJunkLine(s, junk) || LooksLikePhone(s) {
			continue
		}
		lines = append(lines, s)
	}
	return lines
}

func isJunkLine(s string, junk []string) bool {
	for _, j := range junk {
		if s == j {
			return true
		}
	}
	return strings.HasPrefix(s, "View my")
}

// Address parses cleaned address lines. The last line is assumed to be
// "City, ST ZIP": it is split on the last comma, the remainder on
// whitespace. All preceding lines join into the street field. A last line
// without a comma falls back to city-only.
func Address(lines []string) ParsedAddress {
	var a ParsedAddress
	if len(lines) == 0 {
		return a
	}

	last := lines[len(lines)-1]
	a.Street = strings.Join(lines[:len(lines)-1], ", ")

	idx := strings.LastIndex(last, ",")
	if idx < 0 {
		a.City = last
		return a
	}

	a.City = strings.TrimSpace(last[:idx])
	stateZip := strings.Fields(last[idx+1:])
	if len(stateZip) >= 2 {
		a.State = stateZip[0]
		a.Zip = stateZip[1]
	} else if len(stateZip) == 1 {
		a.State = stateZip[0]
	}
	return a
}
