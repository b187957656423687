package contactform

import (
	"context"
	"sync"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/api/dto/v1/contact"
)

// Submitter posts a submission to the contact endpoint. A non-nil error
// means no usable response was received.
type Submitter interface {
	Submit(ctx context.Context, payload contact.ContactRequest) (common.APIResponse, int, error)
}

// CaptchaWidget produces CAPTCHA tokens.
type CaptchaWidget interface {
	// Render shows the widget and blocks until it yields a token.
	Render(ctx context.Context) (string, error)
	// Reset clears the current token.
	Reset(ctx context.Context) error
}

// Focuser moves input focus to a field.
type Focuser interface {
	Focus(field string)
}

// Controller owns a form State and runs the commands Reduce emits. It is
// safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	state     State
	submitter Submitter
	captcha   CaptchaWidget
	focuser   Focuser
}

// NewController creates a controller. captcha and focuser may be nil.
func NewController(state State, submitter Submitter, captcha CaptchaWidget, focuser Focuser) *Controller {
	return &Controller{
		state:     state,
		submitter: submitter,
		captcha:   captcha,
		focuser:   focuser,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies a and every action its commands produce, then returns
// the resulting state.
func (c *Controller) Dispatch(ctx context.Context, a Action) State {
	queue := []Action{a}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		c.mu.Lock()
		var cmds []Command
		c.state, cmds = Reduce(c.state, next)
		c.mu.Unlock()

		for _, cmd := range cmds {
			if follow := c.run(ctx, cmd); follow != nil {
				queue = append(queue, follow)
			}
		}
	}
	return c.State()
}

func (c *Controller) run(ctx context.Context, cmd Command) Action {
	switch cmd := cmd.(type) {
	case RenderCaptcha:
		if c.captcha == nil {
			return nil
		}
		token, err := c.captcha.Render(ctx)
		if err != nil {
			return CaptchaFailed{Reason: err.Error()}
		}
		return CaptchaVerified{Token: token}
	case ResetCaptcha:
		if c.captcha != nil {
			_ = c.captcha.Reset(ctx)
		}
		return nil
	case FocusField:
		if c.focuser != nil {
			c.focuser.Focus(cmd.Field)
		}
		return nil
	case SendSubmission:
		return c.send(ctx, cmd.Payload)
	}
	return nil
}

func (c *Controller) send(ctx context.Context, payload contact.ContactRequest) Action {
	if c.submitter == nil {
		return SubmitFailed{}
	}

	resp, status, err := c.submitter.Submit(ctx, payload)
	if err != nil {
		return SubmitFailed{}
	}
	if status >= 200 && status < 300 && resp.Success {
		return SubmitSucceeded{Message: resp.Message}
	}
	return SubmitFailed{FieldErrors: resp.FieldErrors, Message: resp.Message}
}
