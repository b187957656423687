package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteverifyServer(t *testing.T, status int, body string, form *map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if form != nil {
			*form = map[string]string{
				"secret":   r.PostForm.Get("secret"),
				"response": r.PostForm.Get("response"),
				"remoteip": r.PostForm.Get("remoteip"),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTurnstileVerify(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		token   string
		status  int
		body    string
		wantErr error
	}{
		{"success", "secret", "tok", http.StatusOK, `{"success":true}`, nil},
		{"missing token", "secret", "", http.StatusOK, `{"success":true}`, ErrCaptchaRequired},
		{"missing secret", "", "tok", http.StatusOK, `{"success":true}`, ErrCaptchaUnavailable},
		{"rejected", "secret", "tok", http.StatusOK, `{"success":false,"error-codes":["invalid-input-response"]}`, ErrCaptchaFailed},
		{"non-2xx", "secret", "tok", http.StatusBadGateway, `{}`, ErrCaptchaFailed},
		{"bad json", "secret", "tok", http.StatusOK, `not json`, ErrCaptchaFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSiteverifyServer(t, tt.status, tt.body, nil)
			v, err := NewCaptchaVerifier(CaptchaConfig{
				Provider:  ProviderTurnstile,
				SecretKey: tt.secret,
				VerifyURL: srv.URL,
			})
			require.NoError(t, err)

			err = v.Verify(context.Background(), tt.token, "203.0.113.7")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTurnstileVerify_SendsForm(t *testing.T) {
	var form map[string]string
	srv := newSiteverifyServer(t, http.StatusOK, `{"success":true}`, &form)

	v, err := NewCaptchaVerifier(CaptchaConfig{SecretKey: "s3cret", VerifyURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, v.Verify(context.Background(), "token-1", "198.51.100.2"))

	assert.Equal(t, "s3cret", form["secret"])
	assert.Equal(t, "token-1", form["response"])
	assert.Equal(t, "198.51.100.2", form["remoteip"])
}

func TestTurnstileVerify_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	v, err := NewCaptchaVerifier(CaptchaConfig{SecretKey: "s", VerifyURL: url})
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), ErrCaptchaFailed)
}

func TestRecaptchaVerify_Score(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"high score", `{"success":true,"score":0.9}`, false},
		{"low score", `{"success":true,"score":0.1}`, true},
		{"no score", `{"success":true}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSiteverifyServer(t, http.StatusOK, tt.body, nil)
			v, err := NewCaptchaVerifier(CaptchaConfig{
				Provider:  ProviderRecaptcha,
				SecretKey: "secret",
				MinScore:  0.5,
				VerifyURL: srv.URL,
			})
			require.NoError(t, err)

			err = v.Verify(context.Background(), "tok", "")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCaptchaFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCaptchaVerifier_UnknownProvider(t *testing.T) {
	_, err := NewCaptchaVerifier(CaptchaConfig{Provider: "hcaptcha"})
	assert.Error(t, err)
}

func TestCaptchaMessage(t *testing.T) {
	assert.Equal(t, "CAPTCHA verification is required", CaptchaMessage(ErrCaptchaRequired))
	assert.Equal(t, "CAPTCHA verification unavailable", CaptchaMessage(ErrCaptchaUnavailable))
	assert.Equal(t, "CAPTCHA verification failed", CaptchaMessage(ErrCaptchaFailed))
	assert.Equal(t, "CAPTCHA verification failed", CaptchaMessage(assert.AnError))
}
