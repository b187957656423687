package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/portfolio/internal/api/handlers"
	"github.com/osa911/portfolio/internal/api/validation"
	"github.com/osa911/portfolio/internal/config"
	"github.com/osa911/portfolio/internal/db"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/repository"
	"github.com/osa911/portfolio/internal/server"
	"github.com/osa911/portfolio/internal/server/routes"
	"github.com/osa911/portfolio/internal/service"
	"github.com/osa911/portfolio/internal/telemetry"
	"github.com/osa911/portfolio/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger configuration
	logging.Configure(&logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      7,
		LogRequests: cfg.LogRequests,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting portfolio API %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName, version.Version)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	// Persistence is optional; without a database the notification sinks
	// carry every submission on their own.
	var (
		contactRepo repository.ContactRepository
		pinger      handlers.Pinger
	)
	if cfg.Database.URL != "" {
		database, err := db.Open(ctx, db.Config{Driver: cfg.Database.Driver, URL: cfg.Database.URL})
		if err != nil {
			logger.Error("Failed to initialize database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if cfg.Database.AutoMigrate {
			if err := db.Migrate(ctx, database, logger); err != nil {
				logger.Error("Failed to run migrations: %v", err)
				os.Exit(1)
			}
		}

		contactRepo = repository.NewContactRepository(database)
		pinger = database
	} else {
		logger.Warn("DATABASE_URL is not set, contact submissions will not be stored")
	}

	contacts := service.NewContactService(contactRepo, logger, buildNotifiers(cfg, logger)...)

	var captcha service.CaptchaVerifier
	if cfg.Captcha.Enabled {
		captcha, err = service.NewCaptchaVerifier(captchaConfig(cfg))
		if err != nil {
			logger.Error("Failed to configure CAPTCHA: %v", err)
			os.Exit(1)
		}
		logger.Info("CAPTCHA verification enabled (%s)", cfg.Captcha.Provider)
	}

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(validation.New(), captcha, contacts, logger),
		Health:  handlers.NewHealthHandler(pinger, logger),
	}

	srv := server.NewServer(cfg, h, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}

func buildNotifiers(cfg *config.Config, logger *logging.Logger) []service.Notifier {
	n := cfg.Notifications

	if n.DiscordWebhookURL == "" {
		logger.Warn("DISCORD_WEBHOOK_URL is not set, Discord notifications are disabled")
	}
	notifiers := []service.Notifier{service.NewDiscordService(n.DiscordWebhookURL, nil)}

	if telegram := service.NewTelegramService(n.TelegramBotToken, n.TelegramChatID, nil); telegram.Configured() {
		notifiers = append(notifiers, telegram)
	}
	if email := service.NewEmailService(n.ResendAPIKey, n.ResendFromEmail, n.ContactToEmail); email != nil {
		notifiers = append(notifiers, email)
	}

	return notifiers
}

func captchaConfig(cfg *config.Config) service.CaptchaConfig {
	c := service.CaptchaConfig{
		Provider:  cfg.Captcha.Provider,
		SecretKey: cfg.Captcha.TurnstileSecretKey,
		VerifyURL: cfg.Captcha.VerifyURL,
	}
	if c.Provider == service.ProviderRecaptcha {
		c.SecretKey = cfg.Captcha.RecaptchaSecretKey
		c.MinScore = cfg.Captcha.RecaptchaMinScore
	}
	return c
}
