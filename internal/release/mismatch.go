package release

import "fmt"

// MismatchWarnings compares a candidate against files already acquired for
// other parts of the same event and returns human-readable warnings for any
// classification differences. The first other-part file serves as the
// comparison reference. An empty part means the search spans all parts and
// detection is skipped. The result is never nil and is order-stable:
// quality, then codec, then source.
func MismatchWarnings(candidate Candidate, part string, existing []PartFile) []string {
	warnings := []string{}
	if part == "" {
		return warnings
	}

	var ref *PartFile
	for i := range existing {
		if existing[i].PartName != part {
			ref = &existing[i]
			break
		}
	}
	if ref == nil {
		return warnings
	}

	if ref.Quality != "" && candidate.Quality != "" && ref.Quality != candidate.Quality {
		warnings = append(warnings, fmt.Sprintf("Different quality than %s: %s", ref.PartName, ref.Quality))
	}
	if ref.Codec != "" && candidate.Codec != "" && ref.Codec != candidate.Codec {
		warnings = append(warnings, fmt.Sprintf("Different codec than %s: %s", ref.PartName, ref.Codec))
	}
	if ref.Source != "" && candidate.Source != "" && ref.Source != candidate.Source {
		warnings = append(warnings, fmt.Sprintf("Different source than %s: %s", ref.PartName, ref.Source))
	}
	return warnings
}
