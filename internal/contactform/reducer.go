package contactform

import (
	"slices"

	"github.com/osa911/portfolio/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio/internal/api/validation"
)

// Action is an event fed to Reduce.
type Action interface {
	action()
}

// Change records a keystroke in a field.
type Change struct {
	Field string
	Value string
}

// Blur records the user leaving a field.
type Blur struct {
	Field string
}

// Submit is a submit attempt.
type Submit struct{}

// CaptchaVerified carries a token from the widget.
type CaptchaVerified struct {
	Token string
}

// CaptchaExpired reports the widget token expired.
type CaptchaExpired struct{}

// CaptchaFailed reports the widget could not produce a token.
type CaptchaFailed struct {
	Reason string
}

// SubmitSucceeded reports a 2xx success response.
type SubmitSucceeded struct {
	Message string
}

// SubmitFailed reports a rejected or failed submission. FieldErrors comes
// from the server; Message is used when there are none.
type SubmitFailed struct {
	FieldErrors validation.FieldErrors
	Message     string
}

func (Change) action()          {}
func (Blur) action()            {}
func (Submit) action()          {}
func (CaptchaVerified) action() {}
func (CaptchaExpired) action()  {}
func (CaptchaFailed) action()   {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}

// Command is a side effect requested by Reduce.
type Command interface {
	command()
}

// RenderCaptcha mounts the CAPTCHA widget.
type RenderCaptcha struct{}

// ResetCaptcha clears the mounted widget so it issues a fresh token.
type ResetCaptcha struct{}

// SendSubmission posts the payload to the contact endpoint.
type SendSubmission struct {
	Payload contact.ContactRequest
}

// FocusField moves input focus to a field.
type FocusField struct {
	Field string
}

func (RenderCaptcha) command()  {}
func (ResetCaptcha) command()   {}
func (SendSubmission) command() {}
func (FocusField) command()     {}

// Reduce applies a to s. It never mutates s.
func Reduce(s State, a Action) (State, []Command) {
	next := s.Clone()

	switch a := a.(type) {
	case Change:
		return next.change(a)
	case Blur:
		return next.blur(a)
	case Submit:
		return next.submit()
	case CaptchaVerified:
		next.Captcha.Token = a.Token
		delete(next.Errors, validation.FieldTurnstileToken)
		return next, nil
	case CaptchaExpired:
		next.Captcha.Token = ""
		next.Errors[validation.FieldTurnstileToken] = MessageCaptchaExpired
		return next, nil
	case CaptchaFailed:
		next.Captcha.Token = ""
		next.Errors[validation.FieldTurnstileToken] = MessageCaptchaFailed
		return next, nil
	case SubmitSucceeded:
		return next.succeeded()
	case SubmitFailed:
		return next.failed(a)
	}

	return next, nil
}

func isInputField(field string) bool {
	return slices.Contains(InputFields, field)
}

func (s State) change(a Change) (State, []Command) {
	if !isInputField(a.Field) {
		return s, nil
	}

	s.Values[a.Field] = a.Value
	s.Typed[a.Field] = true

	// A touched field only clears or refreshes an error it already shows.
	if s.Touched[a.Field] {
		if _, shown := s.Errors[a.Field]; shown {
			if result := validation.ValidateField(a.Field, a.Value); result.Valid {
				delete(s.Errors, a.Field)
			} else {
				s.Errors[a.Field] = result.Error
			}
		}
	}

	if s.Status.Type == StatusError {
		s.Status = Status{Type: StatusIdle}
	}

	return s, s.maybeRenderCaptcha()
}

func (s State) blur(a Blur) (State, []Command) {
	if !isInputField(a.Field) {
		return s, nil
	}

	s.Touched[a.Field] = true
	s.setFieldError(a.Field)

	return s, s.maybeRenderCaptcha()
}

// setFieldError validates field and records the outcome. An empty required
// field stays silent until the user has typed into it or tried to submit.
func (s *State) setFieldError(field string) {
	result := validation.ValidateField(field, s.Values[field])
	switch {
	case result.Valid:
		delete(s.Errors, field)
	case result.Missing && !s.Typed[field] && !s.Submitted:
		delete(s.Errors, field)
	default:
		s.Errors[field] = result.Error
	}
}

// maybeRenderCaptcha mounts the widget once every required field has been
// touched and the form is valid.
func (s *State) maybeRenderCaptcha() []Command {
	if !s.Captcha.Enabled || s.Captcha.Rendered {
		return nil
	}
	for _, field := range requiredFields {
		if !s.Touched[field] {
			return nil
		}
	}
	if !s.Valid() {
		return nil
	}
	s.Captcha.Rendered = true
	return []Command{RenderCaptcha{}}
}

func (s State) submit() (State, []Command) {
	// One submission in flight at a time.
	if s.Status.Type == StatusLoading {
		return s, nil
	}

	s.Submitted = true
	for _, field := range InputFields {
		s.Touched[field] = true
		s.Typed[field] = true
		s.setFieldError(field)
	}

	var cmds []Command
	if s.Captcha.Enabled && s.Captcha.Token == "" {
		if _, shown := s.Errors[validation.FieldTurnstileToken]; !shown {
			s.Errors[validation.FieldTurnstileToken] = MessageCaptchaRequired
		}
		if !s.Captcha.Rendered {
			s.Captcha.Rendered = true
			cmds = append(cmds, RenderCaptcha{})
		}
	}

	if field, hasError := s.Errors.First(); hasError {
		s.Status = Status{Type: StatusError, Message: MessageFixBeforeSubmit}
		return s, append(cmds, FocusField{Field: field})
	}

	s.Status = Status{Type: StatusLoading, Message: MessageSending}
	return s, append(cmds, SendSubmission{Payload: s.payload()})
}

func (s State) payload() contact.ContactRequest {
	return contact.ContactRequest{
		Name:           contact.FlexString(s.Values[validation.FieldName]),
		Email:          contact.FlexString(s.Values[validation.FieldEmail]),
		Phone:          contact.FlexString(s.Values[validation.FieldPhone]),
		Description:    contact.FlexString(s.Values[validation.FieldDescription]),
		TurnstileToken: contact.FlexString(s.Captcha.Token),
	}
}

func (s State) succeeded() (State, []Command) {
	reset := NewState(s.Captcha.Enabled)
	reset.Status = Status{Type: StatusSuccess, Message: MessageSuccess}

	var cmds []Command
	if s.Captcha.Rendered {
		// The widget stays mounted; a reset makes it issue a fresh token.
		reset.Captcha.Rendered = true
		cmds = append(cmds, ResetCaptcha{})
	}
	return reset, cmds
}

func (s State) failed(a SubmitFailed) (State, []Command) {
	var cmds []Command

	// Tokens are single use; the server has consumed this one.
	if s.Captcha.Rendered && s.Captcha.Token != "" {
		s.Captcha.Token = ""
		cmds = append(cmds, ResetCaptcha{})
	}

	if len(a.FieldErrors) > 0 {
		s.Errors = validation.FieldErrors{}
		for field, msg := range a.FieldErrors {
			if msg != "" {
				s.Errors[field] = msg
			}
		}
		s.Status = Status{Type: StatusError, Message: MessageFixErrors}
		if field, ok := s.Errors.First(); ok {
			cmds = append(cmds, FocusField{Field: field})
		}
		return s, cmds
	}

	message := a.Message
	if message == "" {
		message = MessageGenericFailure
	}
	s.Status = Status{Type: StatusError, Message: message}
	return s, cmds
}
