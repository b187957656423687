package routes

import (
	"github.com/osa911/portfolio/internal/api/handlers"
	"github.com/osa911/portfolio/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Options configures the middleware installed by Setup
type Options struct {
	CORS           middleware.CORSConfig
	ContactLimit   middleware.RateLimitConfig
	MaxBodyBytes   int64
	ServiceName    string
	MetricsEnabled bool
}
