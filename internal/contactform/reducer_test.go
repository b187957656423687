package contactform

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/portfolio/internal/api/validation"
)

// apply feeds actions through Reduce and collects every command emitted.
func apply(s State, actions ...Action) (State, []Command) {
	var all []Command
	for _, a := range actions {
		var cmds []Command
		s, cmds = Reduce(s, a)
		all = append(all, cmds...)
	}
	return s, all
}

func fill(field, value string) []Action {
	return []Action{Change{Field: field, Value: value}, Blur{Field: field}}
}

func validForm() []Action {
	var actions []Action
	actions = append(actions, fill(validation.FieldName, "Jo")...)
	actions = append(actions, fill(validation.FieldEmail, "jo@x.com")...)
	actions = append(actions, fill(validation.FieldDescription, "Hi there")...)
	return actions
}

func countCommands[T Command](cmds []Command) int {
	n := 0
	for _, c := range cmds {
		if _, ok := c.(T); ok {
			n++
		}
	}
	return n
}

func TestBlur_UntouchedEmptyFieldShowsNoError(t *testing.T) {
	s, _ := apply(NewState(false), Blur{Field: validation.FieldName})

	assert.True(t, s.Touched[validation.FieldName])
	_, shown := s.VisibleError(validation.FieldName)
	assert.False(t, shown)
}

func TestBlur_ShowsErrorForInvalidValue(t *testing.T) {
	s, _ := apply(NewState(false), fill(validation.FieldName, "J")...)

	msg, shown := s.VisibleError(validation.FieldName)
	require.True(t, shown)
	assert.Equal(t, "Name must be at least 2 characters long", msg)
}

func TestBlur_EmptyAfterTypingShowsRequired(t *testing.T) {
	s, _ := apply(NewState(false),
		Change{Field: validation.FieldEmail, Value: "a"},
		Change{Field: validation.FieldEmail, Value: ""},
		Blur{Field: validation.FieldEmail},
	)

	msg, shown := s.VisibleError(validation.FieldEmail)
	require.True(t, shown)
	assert.Equal(t, "Email is required", msg)
}

func TestChange_DoesNotIntroduceErrors(t *testing.T) {
	// Touched and valid, then typing an invalid value: no new error mid-keystroke.
	s, _ := apply(NewState(false), fill(validation.FieldName, "Jo")...)
	s, _ = apply(s, Change{Field: validation.FieldName, Value: "J"})

	_, shown := s.VisibleError(validation.FieldName)
	assert.False(t, shown)

	// The error appears on the next blur.
	s, _ = apply(s, Blur{Field: validation.FieldName})
	_, shown = s.VisibleError(validation.FieldName)
	assert.True(t, shown)
}

func TestChange_ClearsAndRefreshesExistingError(t *testing.T) {
	s, _ := apply(NewState(false), fill(validation.FieldPhone, "555")...)
	msg, _ := s.VisibleError(validation.FieldPhone)
	assert.Equal(t, "Phone number must be at least 10 digits", msg)

	s, _ = apply(s, Change{Field: validation.FieldPhone, Value: "5551234567890123"})
	msg, _ = s.VisibleError(validation.FieldPhone)
	assert.Equal(t, "Phone number cannot exceed 15 digits", msg)

	s, _ = apply(s, Change{Field: validation.FieldPhone, Value: "+1 (555) 123-4567"})
	_, shown := s.VisibleError(validation.FieldPhone)
	assert.False(t, shown)
}

func TestChange_UntouchedFieldIsNotValidated(t *testing.T) {
	s, _ := apply(NewState(false), Change{Field: validation.FieldDescription, Value: "x"})
	assert.Empty(t, s.Errors)
}

func TestChange_ClearsErrorStatus(t *testing.T) {
	s, _ := apply(NewState(false), Submit{})
	require.Equal(t, StatusError, s.Status.Type)

	s, _ = apply(s, Change{Field: validation.FieldName, Value: "J"})
	assert.Equal(t, StatusIdle, s.Status.Type)
	assert.Empty(t, s.Status.Message)
}

func TestChange_UnknownFieldIgnored(t *testing.T) {
	before := NewState(false)
	after, cmds := Reduce(before, Change{Field: "company", Value: "Acme"})
	assert.Empty(t, cmds)
	assert.NotContains(t, after.Values, "company")
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := NewState(false)
	_, _ = apply(before, fill(validation.FieldName, "J")...)

	assert.Equal(t, "", before.Values[validation.FieldName])
	assert.Empty(t, before.Errors)
	assert.Empty(t, before.Touched)
}

func TestCaptcha_RendersOnceWhenRequiredFieldsValid(t *testing.T) {
	s, cmds := apply(NewState(true), validForm()...)

	assert.True(t, s.Captcha.Rendered)
	assert.Equal(t, 1, countCommands[RenderCaptcha](cmds))

	// More keystrokes never re-render.
	_, cmds = apply(s, Change{Field: validation.FieldName, Value: "Joe"}, Blur{Field: validation.FieldName})
	assert.Equal(t, 0, countCommands[RenderCaptcha](cmds))
}

func TestCaptcha_NotRenderedUntilAllRequiredTouched(t *testing.T) {
	actions := append(fill(validation.FieldName, "Jo"), fill(validation.FieldEmail, "jo@x.com")...)
	// Description typed but not blurred.
	actions = append(actions, Change{Field: validation.FieldDescription, Value: "Hi there"})

	s, cmds := apply(NewState(true), actions...)
	assert.False(t, s.Captcha.Rendered)
	assert.Empty(t, cmds)
}

func TestCaptcha_NotRenderedWhenDisabled(t *testing.T) {
	s, cmds := apply(NewState(false), validForm()...)
	assert.False(t, s.Captcha.Rendered)
	assert.Empty(t, cmds)
}

func TestCaptcha_TokenLifecycle(t *testing.T) {
	s, _ := apply(NewState(true), validForm()...)
	assert.False(t, s.CanSubmit(), "widget shown without token")

	s, _ = apply(s, CaptchaVerified{Token: "tok"})
	assert.True(t, s.CanSubmit())
	assert.Equal(t, "tok", s.Captcha.Token)

	s, _ = apply(s, CaptchaExpired{})
	assert.False(t, s.CanSubmit())
	msg, _ := s.VisibleError(validation.FieldTurnstileToken)
	assert.Equal(t, MessageCaptchaExpired, msg)

	s, _ = apply(s, CaptchaVerified{Token: "tok-2"})
	_, shown := s.VisibleError(validation.FieldTurnstileToken)
	assert.False(t, shown)

	s, _ = apply(s, CaptchaFailed{Reason: "network"})
	assert.Empty(t, s.Captcha.Token)
	msg, _ = s.VisibleError(validation.FieldTurnstileToken)
	assert.Equal(t, MessageCaptchaFailed, msg)
}

func TestSubmit_EmptyFormFocusesFirstInvalidField(t *testing.T) {
	s, cmds := apply(NewState(false), Submit{})

	assert.Equal(t, StatusError, s.Status.Type)
	assert.Equal(t, MessageFixBeforeSubmit, s.Status.Message)
	assert.Equal(t, "Name is required", s.Errors[validation.FieldName])
	assert.Equal(t, "Email is required", s.Errors[validation.FieldEmail])
	assert.Equal(t, "Message is required", s.Errors[validation.FieldDescription])
	assert.NotContains(t, s.Errors, validation.FieldPhone)
	require.Equal(t, []Command{FocusField{Field: validation.FieldName}}, cmds)
}

func TestSubmit_FocusOrder(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    string
	}{
		{
			name:    "email before description",
			actions: append(fill(validation.FieldName, "Jo"), fill(validation.FieldEmail, "nope")...),
			want:    validation.FieldEmail,
		},
		{
			name: "phone before description",
			actions: append(append(append(fill(validation.FieldName, "Jo"),
				fill(validation.FieldEmail, "jo@x.com")...),
				fill(validation.FieldPhone, "123")...),
				Change{Field: validation.FieldDescription, Value: "x"}),
			want: validation.FieldPhone,
		},
		{
			name:    "description last",
			actions: append(append(fill(validation.FieldName, "Jo"), fill(validation.FieldEmail, "jo@x.com")...), fill(validation.FieldDescription, strings.Repeat("a", 1001))...),
			want:    validation.FieldDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := apply(NewState(false), tt.actions...)
			_, cmds := Reduce(s, Submit{})
			require.Len(t, cmds, 1)
			assert.Equal(t, FocusField{Field: tt.want}, cmds[0])
		})
	}
}

func TestSubmit_ValidFormSendsPayload(t *testing.T) {
	actions := append(validForm(), fill(validation.FieldPhone, "+1 (555) 123-4567")...)
	s, _ := apply(NewState(false), actions...)

	s, cmds := Reduce(s, Submit{})

	assert.Equal(t, StatusLoading, s.Status.Type)
	assert.False(t, s.CanSubmit())
	require.Len(t, cmds, 1)
	send, ok := cmds[0].(SendSubmission)
	require.True(t, ok)
	assert.Equal(t, "Jo", send.Payload.Name.String())
	assert.Equal(t, "jo@x.com", send.Payload.Email.String())
	assert.Equal(t, "+1 (555) 123-4567", send.Payload.Phone.String())
	assert.Equal(t, "Hi there", send.Payload.Description.String())

	// A second submit while loading does nothing.
	_, cmds = Reduce(s, Submit{})
	assert.Empty(t, cmds)
}

func TestSubmit_CaptchaRequired(t *testing.T) {
	// Captcha enabled but fields were never blurred, so the widget is not shown yet.
	s, _ := apply(NewState(true),
		Change{Field: validation.FieldName, Value: "Jo"},
		Change{Field: validation.FieldEmail, Value: "jo@x.com"},
		Change{Field: validation.FieldDescription, Value: "Hi there"},
	)

	s, cmds := Reduce(s, Submit{})

	assert.Equal(t, StatusError, s.Status.Type)
	assert.Equal(t, MessageCaptchaRequired, s.Errors[validation.FieldTurnstileToken])
	assert.True(t, s.Captcha.Rendered)
	assert.Equal(t, []Command{RenderCaptcha{}, FocusField{Field: validation.FieldTurnstileToken}}, cmds)

	s, _ = apply(s, CaptchaVerified{Token: "tok"})
	s, cmds = Reduce(s, Submit{})
	require.Len(t, cmds, 1)
	send := cmds[0].(SendSubmission)
	assert.Equal(t, "tok", send.Payload.TurnstileToken.String())
	assert.Equal(t, StatusLoading, s.Status.Type)
}

func TestSubmitSucceeded_ResetsForm(t *testing.T) {
	s, _ := apply(NewState(true), validForm()...)
	s, _ = apply(s, CaptchaVerified{Token: "tok"}, Submit{})

	s, cmds := Reduce(s, SubmitSucceeded{Message: "server text"})

	assert.Equal(t, StatusSuccess, s.Status.Type)
	assert.Equal(t, MessageSuccess, s.Status.Message)
	for _, field := range InputFields {
		assert.Empty(t, s.Values[field])
	}
	assert.Empty(t, s.Errors)
	assert.Empty(t, s.Touched)
	assert.Empty(t, s.Typed)
	assert.False(t, s.Submitted)
	assert.Empty(t, s.Captcha.Token)
	assert.Equal(t, []Command{ResetCaptcha{}}, cmds)
}

func TestSubmitFailed_ServerFieldErrors(t *testing.T) {
	s, _ := apply(NewState(false), validForm()...)
	s, _ = apply(s, Submit{})

	s, cmds := Reduce(s, SubmitFailed{
		FieldErrors: validation.FieldErrors{"email": "Email address is too long"},
		Message:     "Please fix the validation errors",
	})

	assert.Equal(t, StatusError, s.Status.Type)
	assert.Equal(t, MessageFixErrors, s.Status.Message)
	assert.Equal(t, validation.FieldErrors{"email": "Email address is too long"}, s.Errors)
	assert.Equal(t, "Jo", s.Values[validation.FieldName], "values kept for retry")
	assert.Equal(t, []Command{FocusField{Field: validation.FieldEmail}}, cmds)
	assert.True(t, s.CanSubmit())
}

func TestSubmitFailed_GenericMessage(t *testing.T) {
	s, _ := apply(NewState(false), validForm()...)
	s, _ = apply(s, Submit{})

	failed, _ := Reduce(s, SubmitFailed{})
	assert.Equal(t, MessageGenericFailure, failed.Status.Message)

	failed, _ = Reduce(s, SubmitFailed{Message: "Something went wrong. Please try again."})
	assert.Equal(t, "Something went wrong. Please try again.", failed.Status.Message)
	assert.Equal(t, "Hi there", failed.Values[validation.FieldDescription])
}

func TestSubmitFailed_ResetsUsedToken(t *testing.T) {
	s, _ := apply(NewState(true), validForm()...)
	s, _ = apply(s, CaptchaVerified{Token: "tok"}, Submit{})

	s, cmds := Reduce(s, SubmitFailed{FieldErrors: validation.FieldErrors{"turnstileToken": "CAPTCHA verification failed"}})

	assert.Empty(t, s.Captcha.Token)
	assert.Contains(t, cmds, Command(ResetCaptcha{}))
	assert.Contains(t, cmds, Command(FocusField{Field: validation.FieldTurnstileToken}))
	assert.False(t, s.CanSubmit())
}

func TestState_JSONRoundTrip(t *testing.T) {
	s, _ := apply(NewState(true), fill(validation.FieldName, "J")...)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}
