package release

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalPart normalizes an operator-supplied part name to the casing
// Sportarr uses ("main card" becomes "Main Card"). Empty input stays empty
// and means every part of the event.
func CanonicalPart(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return cases.Title(language.Und).String(trimmed)
}
