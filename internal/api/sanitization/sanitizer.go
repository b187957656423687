package sanitization

import (
	"strings"
	"unicode/utf8"
)

// Hard caps applied before a value reaches any sink. They back up the
// validation rules for payloads that slip past the regexes.
const (
	MaxNameLength        = 50
	MaxEmailLength       = 255
	MaxPhoneLength       = 20
	MaxDescriptionLength = 1000
)

// Truncate cuts s to at most n runes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// SanitizeString trims surrounding whitespace and caps the length.
func SanitizeString(input string, maxLen int) string {
	return Truncate(strings.TrimSpace(input), maxLen)
}

// SanitizeName trims and caps a name.
func SanitizeName(input string) string {
	return SanitizeString(input, MaxNameLength)
}

// SanitizeEmail trims, lower-cases and caps an email address.
func SanitizeEmail(input string) string {
	return Truncate(strings.ToLower(strings.TrimSpace(input)), MaxEmailLength)
}

// SanitizePhone trims and caps a phone number.
func SanitizePhone(input string) string {
	return SanitizeString(input, MaxPhoneLength)
}

// SanitizeDescription trims and caps the message body.
func SanitizeDescription(input string) string {
	return SanitizeString(input, MaxDescriptionLength)
}
