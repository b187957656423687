package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// TurnstileVerifyURL is Cloudflare's siteverify endpoint
	TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	// RecaptchaVerifyURL is Google's siteverify endpoint
	RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

	ProviderTurnstile = "turnstile"
	ProviderRecaptcha = "recaptcha"
)

// CaptchaVerifier checks a CAPTCHA token issued to a client.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// CaptchaConfig configures a CaptchaVerifier
type CaptchaConfig struct {
	Provider  string
	SecretKey string
	MinScore  float64
	VerifyURL string
	Client    *http.Client
}

// NewCaptchaVerifier returns the verifier for cfg.Provider.
func NewCaptchaVerifier(cfg CaptchaConfig) (CaptchaVerifier, error) {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	switch cfg.Provider {
	case ProviderTurnstile, "":
		return &TurnstileService{siteVerifier: newSiteVerifier(cfg, TurnstileVerifyURL, client)}, nil
	case ProviderRecaptcha:
		return &RecaptchaService{
			siteVerifier: newSiteVerifier(cfg, RecaptchaVerifyURL, client),
			minScore:     cfg.MinScore,
		}, nil
	default:
		return nil, fmt.Errorf("unknown CAPTCHA provider %q", cfg.Provider)
	}
}

// siteverifyResponse covers both Turnstile and reCAPTCHA replies
type siteverifyResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

type siteVerifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func newSiteVerifier(cfg CaptchaConfig, defaultURL string, client *http.Client) siteVerifier {
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = defaultURL
	}
	return siteVerifier{
		secretKey: cfg.SecretKey,
		verifyURL: verifyURL,
		client:    client,
	}
}

// verify posts the token to the siteverify endpoint and decodes the reply.
func (s siteVerifier) verify(ctx context.Context, token, remoteIP string) (*siteverifyResponse, error) {
	if token == "" {
		return nil, ErrCaptchaRequired
	}
	if s.secretKey == "" {
		return nil, fmt.Errorf("%w: secret key not configured", ErrCaptchaUnavailable)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: siteverify returned status %d", ErrCaptchaFailed, resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrCaptchaFailed, err)
	}

	if !result.Success {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaFailed, result.ErrorCodes)
	}

	return &result, nil
}

// TurnstileService verifies Cloudflare Turnstile tokens
type TurnstileService struct {
	siteVerifier
}

func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) error {
	_, err := s.verify(ctx, token, remoteIP)
	return err
}

// RecaptchaService verifies reCAPTCHA v3 tokens and enforces a minimum score
type RecaptchaService struct {
	siteVerifier
	minScore float64
}

func (s *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) error {
	result, err := s.verify(ctx, token, remoteIP)
	if err != nil {
		return err
	}

	// v2 replies carry no score
	if result.Score != nil && *result.Score < s.minScore {
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrCaptchaFailed, *result.Score, s.minScore)
	}

	return nil
}
