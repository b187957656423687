package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Contact form field names, as they appear on the wire.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldDescription    = "description"
	FieldTurnstileToken = "turnstileToken"
)

// Field limits
const (
	NameMinLength        = 2
	NameMaxLength        = 50
	EmailMaxLength       = 254
	PhoneMinDigits       = 10
	PhoneMaxDigits       = 15
	DescriptionMinLength = 2
	DescriptionMaxLength = 1000
)

var (
	// Letters (Latin plus the Latin-1, Extended-A/B and Additional ranges),
	// whitespace including Unicode spaces such as U+00A0, apostrophes and hyphens.
	nameRegex    = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\x{0100}-\x{017F}\x{0180}-\x{024F}\x{1E00}-\x{1EFF}\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}'-]+$`)
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex   = regexp.MustCompile(`^[+]?[\s\-()]?[\d\s\-()]{10,}$`)
	nonDigitsRex = regexp.MustCompile(`\D`)
)

// Result is the outcome of validating a single field.
// Missing is set when a required field is empty, so callers can decide
// whether the message should be shown yet.
type Result struct {
	Valid   bool
	Missing bool
	Error   string
}

func ok() Result { return Result{Valid: true} }

func invalid(msg string) Result { return Result{Error: msg} }

func missing(msg string) Result { return Result{Missing: true, Error: msg} }

// ValidateName checks a person's name.
func ValidateName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return missing("Name is required")
	}

	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLength {
		return invalid("Name must be at least 2 characters long")
	}
	if n > NameMaxLength {
		return invalid("Name cannot exceed 50 characters")
	}

	if !nameRegex.MatchString(trimmed) {
		return invalid("Name can only contain letters, spaces, hyphens, and apostrophes")
	}

	return ok()
}

// ValidateEmail checks an address has a local@domain.tld shape.
func ValidateEmail(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return missing("Email is required")
	}

	if utf8.RuneCountInString(trimmed) > EmailMaxLength {
		return invalid("Email address is too long")
	}

	if !emailRegex.MatchString(trimmed) {
		return invalid("Please enter a valid email address (e.g., name@example.com)")
	}

	return ok()
}

// ValidatePhone checks an optional phone number. Empty is valid.
func ValidatePhone(phone string) Result {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return ok()
	}

	digits := PhoneDigits(trimmed)
	if len(digits) < PhoneMinDigits {
		return invalid("Phone number must be at least 10 digits")
	}
	if len(digits) > PhoneMaxDigits {
		return invalid("Phone number cannot exceed 15 digits")
	}

	if !phoneRegex.MatchString(trimmed) {
		return invalid("Please enter a valid phone number")
	}

	return ok()
}

// ValidateDescription checks the free-text message body.
func ValidateDescription(description string) Result {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return missing("Message is required")
	}

	n := utf8.RuneCountInString(trimmed)
	if n < DescriptionMinLength {
		return invalid("Message must be at least 2 characters long")
	}
	if n > DescriptionMaxLength {
		return invalid("Message cannot exceed 1000 characters")
	}

	return ok()
}

// PhoneDigits strips every non-digit character.
func PhoneDigits(phone string) string {
	return nonDigitsRex.ReplaceAllString(phone, "")
}

// Rule validates one field value.
type Rule func(string) Result

// Rules maps each contact form field to its rule.
var Rules = map[string]Rule{
	FieldName:        ValidateName,
	FieldEmail:       ValidateEmail,
	FieldPhone:       ValidatePhone,
	FieldDescription: ValidateDescription,
}

// FieldOrder is the order fields appear in the form.
var FieldOrder = []string{FieldName, FieldEmail, FieldPhone, FieldDescription, FieldTurnstileToken}

// FieldErrors maps a field name to its user-facing error message.
type FieldErrors map[string]string

// First returns the first field, in form order, that has an error.
func (fe FieldErrors) First() (string, bool) {
	for _, field := range FieldOrder {
		if fe[field] != "" {
			return field, true
		}
	}
	return "", false
}
