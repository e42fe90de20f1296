// internal/utils/phone.go
package utils

import (
	"regexp"
	"strings"
)

// Nepal mobile numbers: 98XXXXXXXX or 97XXXXXXXX, optionally prefixed with
// the 977 country code. Validation runs on the digits only; any formatting
// characters the user typed are stripped first.
var nepalMobileRegex = regexp.MustCompile(`^(977)?(98|97)\d{8}$`)

// CleanPhone strips every non-digit character.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidNepalMobile reports whether phone is a valid Nepal mobile number
// after stripping formatting.
func IsValidNepalMobile(phone string) bool {
	return nepalMobileRegex.MatchString(CleanPhone(phone))
}

// NormalizeNepalMobile returns the number in international form (977
// prefixed, digits only) for use in WhatsApp deep links. The second return
// is false when the input is not a valid Nepal mobile number.
func NormalizeNepalMobile(phone string) (string, bool) {
	clean := CleanPhone(phone)
	if !nepalMobileRegex.MatchString(clean) {
		return "", false
	}
	if !strings.HasPrefix(clean, "977") {
		clean = "977" + clean
	}
	return clean, true
}
