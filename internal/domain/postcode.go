package domain

import (
	"regexp"
	"strings"
)

// PostcodeInvalid is returned by NormalizePostcode for input matching no accepted shape.
const PostcodeInvalid = "postcode_invalid"

var (
	// Street part accepts any letters so that pseudo-postcodes such as ZZ99 5VZ validate.
	postcodePattern = regexp.MustCompile(`^([A-Z]{1,2})([0-9R][0-9A-Z]?)([0-9][A-Z]{2})$`)
	// Newport codes have no numeric district.
	newportPattern = regexp.MustCompile(`^(NPT)([0-9][A-Z]{2})$`)
)

// NormalizePostcode validates a UK postcode and returns it upper-cased with a single
// space between the outward and inward codes, or PostcodeInvalid. It checks shape only.
// Older gateways padded the outward code to four characters instead (M1  1AE, SW1A1AA);
// the single-space form is what callers compare against.
func NormalizePostcode(postcode string) string {
	compact := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))

	if m := postcodePattern.FindStringSubmatch(compact); m != nil {
		return m[1] + m[2] + " " + m[3]
	}
	if m := newportPattern.FindStringSubmatch(compact); m != nil {
		return m[1] + " " + m[2]
	}
	return PostcodeInvalid
}

// IsValidPostcode reports whether NormalizePostcode accepts the input.
func IsValidPostcode(postcode string) bool {
	return NormalizePostcode(postcode) != PostcodeInvalid
}
