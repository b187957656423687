package service

import "errors"

// Sentinel errors for service layer
var (
	// ErrNotConfigured marks a sink whose configuration is absent.
	ErrNotConfigured = errors.New("not configured")

	ErrCaptchaRequired    = errors.New("CAPTCHA verification is required")
	ErrCaptchaUnavailable = errors.New("CAPTCHA verification unavailable")
	ErrCaptchaFailed      = errors.New("CAPTCHA verification failed")
)

// CaptchaMessage returns the user-facing message for a CAPTCHA verification error.
func CaptchaMessage(err error) string {
	switch {
	case errors.Is(err, ErrCaptchaRequired):
		return ErrCaptchaRequired.Error()
	case errors.Is(err, ErrCaptchaUnavailable):
		return ErrCaptchaUnavailable.Error()
	default:
		return ErrCaptchaFailed.Error()
	}
}
