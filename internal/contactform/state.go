// Package contactform models the contact form as explicit state driven by a
// pure reducer. Side effects are returned as commands for a Controller to run.
package contactform

import (
	"maps"

	"github.com/osa911/portfolio/internal/api/validation"
)

// StatusType is the form-level submission status
type StatusType string

const (
	StatusIdle    StatusType = "idle"
	StatusLoading StatusType = "loading"
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// User-facing form messages
const (
	MessageFixBeforeSubmit = "Please fix the errors above before submitting."
	MessageFixErrors       = "Please fix the errors above."
	MessageSending         = "Sending message..."
	MessageSuccess         = "Thank you! Your message has been sent successfully."
	MessageGenericFailure  = "Sorry, there was an error sending your message. Please try again."

	MessageCaptchaRequired = "Please complete the CAPTCHA verification."
	MessageCaptchaExpired  = "CAPTCHA expired. Please verify again."
	MessageCaptchaFailed   = "CAPTCHA verification failed. Please try again."
)

// InputFields are the fields a user types into, in display order.
var InputFields = []string{
	validation.FieldName,
	validation.FieldEmail,
	validation.FieldPhone,
	validation.FieldDescription,
}

// requiredFields must be non-empty and valid before the CAPTCHA is shown.
var requiredFields = []string{
	validation.FieldName,
	validation.FieldEmail,
	validation.FieldDescription,
}

// Status is the form-level status line
type Status struct {
	Type    StatusType `json:"type"`
	Message string     `json:"message,omitempty"`
}

// CaptchaState tracks the CAPTCHA widget
type CaptchaState struct {
	Enabled  bool   `json:"enabled"`
	Rendered bool   `json:"rendered"`
	Token    string `json:"token,omitempty"`
}

// State is the complete, serializable form state.
type State struct {
	Values  map[string]string      `json:"values"`
	Errors  validation.FieldErrors `json:"errors"`
	Touched map[string]bool        `json:"touched"`
	// Typed records fields the user has typed into at least once.
	Typed map[string]bool `json:"typed"`
	// Submitted is set once a submit has been attempted.
	Submitted bool         `json:"submitted"`
	Captcha   CaptchaState `json:"captcha"`
	Status    Status       `json:"status"`
}

// NewState returns an empty form.
func NewState(captchaEnabled bool) State {
	values := make(map[string]string, len(InputFields))
	for _, field := range InputFields {
		values[field] = ""
	}
	return State{
		Values:  values,
		Errors:  validation.FieldErrors{},
		Touched: map[string]bool{},
		Typed:   map[string]bool{},
		Captcha: CaptchaState{Enabled: captchaEnabled},
		Status:  Status{Type: StatusIdle},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Values = cloneMap(s.Values)
	out.Errors = validation.FieldErrors(cloneMap(map[string]string(s.Errors)))
	out.Touched = cloneMap(s.Touched)
	out.Typed = cloneMap(s.Typed)
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return maps.Clone(m)
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	if s.Status.Type == StatusLoading {
		return false
	}
	if s.Captcha.Enabled && s.Captcha.Rendered && s.Captcha.Token == "" {
		return false
	}
	return true
}

// Valid reports whole-form validity: required fields non-empty and passing,
// phone without an error.
func (s State) Valid() bool {
	for _, field := range requiredFields {
		if !validation.ValidateField(field, s.Values[field]).Valid {
			return false
		}
	}
	return validation.ValidatePhone(s.Values[validation.FieldPhone]).Valid
}

// VisibleError returns the message shown under field, if any.
func (s State) VisibleError(field string) (string, bool) {
	msg, ok := s.Errors[field]
	return msg, ok && msg != ""
}
