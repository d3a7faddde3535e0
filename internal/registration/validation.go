package registration

import (
	"regexp"
	"strings"
)

// codePattern is the entry-code format: exactly 7 alphanumeric characters.
var codePattern = regexp.MustCompile(`^[A-Z0-9]{7}$`)

// NormalizeCode trims whitespace and uppercases a pairing code.
// Codes are stored uppercase; the thermostat UI shows them uppercase but
// users type them in any case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks the entry-code format after normalisation.
// Returns ErrInvalidCode for anything other than 7 alphanumerics, so
// malformed input is rejected before any store access.
func ValidateCode(code string) error {
	if !codePattern.MatchString(NormalizeCode(code)) {
		return ErrInvalidCode
	}
	return nil
}
