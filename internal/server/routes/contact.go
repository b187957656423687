package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/handlers"
	"github.com/osa911/portfolio/internal/api/middleware"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, opts Options) {
	public := router.Group("/api/contact")
	{
		// Public endpoint, rate limited per client IP
		public.POST("",
			middleware.RateLimitByIP(opts.ContactLimit),
			contact.Submit,
		)
		public.GET("", contact.MethodNotAllowed)
	}
}
