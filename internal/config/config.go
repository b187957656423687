package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Proxy Configuration. Forwarding headers are only honoured from
	// TrustedProxies; TrustedPlatform trusts a CDN's client IP header.
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	TrustedPlatform string   `env:"TRUSTED_PLATFORM"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	Database      DatabaseConfig
	Captcha       CaptchaConfig
	Notifications NotificationConfig
	RateLimit     RateLimitConfig
	Telemetry     TelemetryConfig
}

// DatabaseConfig describes the relational store contact rows are written to.
// An empty URL disables persistence.
type DatabaseConfig struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	URL         string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"DATABASE_AUTO_MIGRATE" envDefault:"true"`
}

// CaptchaConfig gates contact submissions behind a CAPTCHA provider.
type CaptchaConfig struct {
	Enabled            bool    `env:"CAPTCHA_ENABLED" envDefault:"false"`
	Provider           string  `env:"CAPTCHA_PROVIDER" envDefault:"turnstile"`
	TurnstileSecretKey string  `env:"TURNSTILE_SECRET_KEY"`
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
	VerifyURL          string  `env:"CAPTCHA_VERIFY_URL"`
}

// NotificationConfig lists the chat/e-mail sinks a submission is forwarded to.
type NotificationConfig struct {
	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`
	TelegramBotToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    string `env:"TELEGRAM_CHAT_ID"`
	ResendAPIKey      string `env:"RESEND_API_KEY"`
	ResendFromEmail   string `env:"RESEND_FROM_EMAIL"`
	ContactToEmail    string `env:"CONTACT_TO_EMAIL"`
}

// RateLimitConfig bounds contact submissions per client IP.
type RateLimitConfig struct {
	RPS   float64 `env:"CONTACT_RATE_RPS" envDefault:"1"`
	Burst int     `env:"CONTACT_RATE_BURST" envDefault:"5"`
}

// TelemetryConfig controls tracing and metrics.
type TelemetryConfig struct {
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"portfolio-api"`
}

// Values accepted by TRUSTED_PLATFORM
const (
	PlatformCloudflare      = "cloudflare"
	PlatformGoogleAppEngine = "appengine"
	PlatformFlyIO           = "flyio"
)

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{
		".env",
	}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.Captcha.Provider = strings.ToLower(c.Captcha.Provider)

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}

	switch c.Captcha.Provider {
	case "turnstile", "recaptcha":
	default:
		return fmt.Errorf("unsupported CAPTCHA_PROVIDER %q (want turnstile or recaptcha)", c.Captcha.Provider)
	}

	for i, origin := range c.AllowedOrigins {
		c.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	c.TrustedPlatform = strings.ToLower(strings.TrimSpace(c.TrustedPlatform))
	switch c.TrustedPlatform {
	case "", PlatformCloudflare, PlatformGoogleAppEngine, PlatformFlyIO:
	default:
		return fmt.Errorf("unsupported TRUSTED_PLATFORM %q (want cloudflare, appengine or flyio)", c.TrustedPlatform)
	}

	for i, proxy := range c.TrustedProxies {
		proxy = strings.TrimSpace(proxy)
		c.TrustedProxies[i] = proxy
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}

	// Ensure log directory exists
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return nil
}
