package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/middleware"
	"github.com/osa911/portfolio/internal/config"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/server/routes"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance with every route registered
func NewServer(cfg *config.Config, h *routes.Handlers, logger *logging.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	configureClientIP(router, cfg, logger)

	routes.Setup(router, h, routes.Options{
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			Development:    cfg.Environment == "development" && len(cfg.AllowedOrigins) == 0,
		},
		ContactLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		},
		MaxBodyBytes:   cfg.MaxBodyBytes,
		ServiceName:    cfg.Telemetry.ServiceName,
		MetricsEnabled: cfg.Telemetry.MetricsEnabled,
	}, logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// configureClientIP decides which forwarding headers ClientIP may read.
// With no trusted proxies configured only the socket peer is used.
func configureClientIP(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	var proxies []string
	if len(cfg.TrustedProxies) > 0 {
		proxies = cfg.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		logger.Error("Invalid trusted proxies %v, trusting none: %v", proxies, err)
		_ = router.SetTrustedProxies(nil)
	}

	switch cfg.TrustedPlatform {
	case config.PlatformCloudflare:
		router.TrustedPlatform = gin.PlatformCloudflare
	case config.PlatformGoogleAppEngine:
		router.TrustedPlatform = gin.PlatformGoogleAppEngine
	case config.PlatformFlyIO:
		router.TrustedPlatform = gin.PlatformFlyIO
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", listener.Addr())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
