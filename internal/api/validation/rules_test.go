package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		missing bool
	}{
		{name: "min length", input: "Jo"},
		{name: "accented", input: "José Ñúñez"},
		{name: "apostrophe and hyphen", input: "O'Brien-Smith"},
		{name: "surrounding whitespace trimmed", input: "  Jo  "},
		{name: "no-break space", input: "Jean\u00a0Paul"},
		{name: "thin space", input: "Jean\u2009Paul"},
		{name: "max length", input: strings.Repeat("a", 50)},
		{name: "empty", input: "", wantErr: "Name is required", missing: true},
		{name: "whitespace only", input: "   ", wantErr: "Name is required", missing: true},
		{name: "too short", input: "J", wantErr: "Name must be at least 2 characters long"},
		{name: "too long", input: strings.Repeat("a", 51), wantErr: "Name cannot exceed 50 characters"},
		{name: "digits", input: "Jo3", wantErr: "Name can only contain letters, spaces, hyphens, and apostrophes"},
		{name: "markup", input: "<b>Jo</b>", wantErr: "Name can only contain letters, spaces, hyphens, and apostrophes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateName(tt.input)
			assert.Equal(t, tt.wantErr == "", got.Valid)
			assert.Equal(t, tt.wantErr, got.Error)
			assert.Equal(t, tt.missing, got.Missing)
		})
	}
}

func TestValidateName_CountsRunes(t *testing.T) {
	// 50 two-byte letters is within the limit.
	assert.True(t, ValidateName(strings.Repeat("é", 50)).Valid)
	assert.False(t, ValidateName(strings.Repeat("é", 51)).Valid)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "simple", input: "jo@x.com"},
		{name: "plus and dots", input: "first.last+tag@mail.example.co"},
		{name: "empty", input: "", wantErr: "Email is required"},
		{name: "no at", input: "jo.x.com", wantErr: "Please enter a valid email address (e.g., name@example.com)"},
		{name: "short tld", input: "jo@x.c", wantErr: "Please enter a valid email address (e.g., name@example.com)"},
		{name: "space inside", input: "jo @x.com", wantErr: "Please enter a valid email address (e.g., name@example.com)"},
		{name: "too long", input: strings.Repeat("a", 250) + "@x.com", wantErr: "Email address is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEmail(tt.input)
			assert.Equal(t, tt.wantErr == "", got.Valid)
			assert.Equal(t, tt.wantErr, got.Error)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty is optional", input: ""},
		{name: "whitespace is optional", input: "  "},
		{name: "plain digits", input: "5551234567"},
		{name: "formatted", input: "+1 (555) 123-4567"},
		{name: "fifteen digits", input: "123456789012345"},
		{name: "too few digits", input: "555-1234", wantErr: "Phone number must be at least 10 digits"},
		{name: "nine digits", input: "555123456", wantErr: "Phone number must be at least 10 digits"},
		{name: "too many digits", input: "1234567890123456", wantErr: "Phone number cannot exceed 15 digits"},
		{name: "letters", input: "call 5551234567", wantErr: "Please enter a valid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.input)
			assert.Equal(t, tt.wantErr == "", got.Valid)
			assert.Equal(t, tt.wantErr, got.Error)
			assert.False(t, got.Missing)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "min length", input: "Hi"},
		{name: "max length", input: strings.Repeat("a", 1000)},
		{name: "multi-line", input: "Hello\nthere"},
		{name: "empty", input: "", wantErr: "Message is required"},
		{name: "too short", input: " a ", wantErr: "Message must be at least 2 characters long"},
		{name: "too long", input: strings.Repeat("a", 1001), wantErr: "Message cannot exceed 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDescription(tt.input)
			assert.Equal(t, tt.wantErr == "", got.Valid)
			assert.Equal(t, tt.wantErr, got.Error)
		})
	}
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "15551234567", PhoneDigits("+1 (555) 123-4567"))
	assert.Equal(t, "", PhoneDigits("()-"))
}

func TestFieldErrorsFirst(t *testing.T) {
	field, ok := FieldErrors{}.First()
	assert.False(t, ok)
	assert.Empty(t, field)

	field, ok = FieldErrors{
		FieldDescription:    "Message is required",
		FieldTurnstileToken: "CAPTCHA verification is required",
		FieldEmail:          "Email is required",
	}.First()
	assert.True(t, ok)
	assert.Equal(t, FieldEmail, field)

	field, ok = FieldErrors{FieldTurnstileToken: "x", "unknown": "y"}.First()
	assert.True(t, ok)
	assert.Equal(t, FieldTurnstileToken, field)
}
