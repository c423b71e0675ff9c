package constants

import "strings"

// Gender is the optional patient-gender hint used for gender-specific
// reference ranges.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender canonicalizes a free-form gender string. Anything that is
// not clearly male or female maps to GenderUnknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Specific reports whether the gender can select a gender-qualified
// reference entry.
func (g Gender) Specific() bool {
	return g == GenderMale || g == GenderFemale
}
