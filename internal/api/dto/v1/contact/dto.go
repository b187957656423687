package contact

import (
	"bytes"
	"encoding/json"
)

// User-facing messages for the contact endpoint
const (
	MessageSent             = "Thank you! Your message has been sent successfully. I'll get back to you soon."
	MessageReceived         = "Thank you! Your message has been received. I'll get back to you soon."
	MessageValidationFailed = "Please fix the validation errors"
	MessageInvalidFormat    = "Invalid data format"
	MessagePostOnly         = "This endpoint only accepts POST requests"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           FlexString `json:"name" validate:"contact_name"`
	Email          FlexString `json:"email" validate:"contact_email"`
	Phone          FlexString `json:"phone,omitempty" validate:"contact_phone"`
	Description    FlexString `json:"description" validate:"contact_description"`
	TurnstileToken FlexString `json:"turnstileToken,omitempty"`
}

// FlexString decodes any JSON scalar into its string form so that a
// wrongly-typed field fails validation instead of the whole decode.
// null, objects and arrays decode to the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
	case 'n', '{', '[':
		*s = ""
	default:
		// numbers, true, false
		*s = FlexString(data)
	}
	return nil
}

// String returns the plain string value.
func (s FlexString) String() string {
	return string(s)
}
