// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "UA"

// The three accepted Ukrainian mobile shapes, checked after stripping whitespace.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+380\d{9}$`),
	regexp.MustCompile(`^380\d{9}$`),
	regexp.MustCompile(`^0\d{9}$`),
}

var whitespace = regexp.MustCompile(`\s+`)

// IsValid reports whether the input matches one of the accepted Ukrainian
// phone shapes: +380XXXXXXXXX, 380XXXXXXXXX or 0XXXXXXXXX.
func IsValid(input string) bool {
	cleaned := whitespace.ReplaceAllString(input, "")
	for _, p := range patterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
