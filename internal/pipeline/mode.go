package pipeline

import "strings"

// Mode selects what kind of page the pipeline treats the start URL as.
type Mode string

const (
	ModeAuto              Mode = "auto"
	ModePerson            Mode = "person"
	ModeProperty          Mode = "property"
	ModePersonDirectory   Mode = "person-directory"
	ModePropertyDirectory Mode = "property-directory"
)

// ValidMode reports whether m is a recognized mode value.
func ValidMode(m Mode) bool {
	switch m {
	case ModeAuto, ModePerson, ModeProperty, ModePersonDirectory, ModePropertyDirectory:
		return true
	}
	return false
}

// InferMode classifies a start URL by its shape. Listing-search paths win
// over everything because they also carry query strings; a /people/ path
// with a trailing segment is a profile, while the bare /people page (or any
// fragment/query URL) is a search directory.
func InferMode(url string) Mode {
	lower := strings.ToLower(url)
	trimmed := strings.TrimRight(lower, "/")

	if strings.Contains(lower, "properties-for-lease") || strings.Contains(lower, "properties-for-sale") {
		return ModePropertyDirectory
	}
	if strings.Contains(lower, "/people/") && !strings.HasSuffix(trimmed, "/people") {
		return ModePerson
	}
	if strings.Contains(lower, "/properties/") || strings.Contains(lower, "/listings/") {
		return ModeProperty
	}
	return ModePersonDirectory
}
