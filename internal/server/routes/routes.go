package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/api/middleware"
	"github.com/osa911/portfolio/internal/logging"
)

// Setup configures global middleware and every route group
func Setup(router *gin.Engine, h *Handlers, opts Options, logger *logging.Logger) {
	SetupGlobalMiddleware(router, opts, logger)

	if opts.MetricsEnabled {
		SetupMetricsRoutes(router)
	}

	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, opts)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(common.MessageMethodNotAllowed, nil))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Not found", nil))
	})

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, opts Options, logger *logging.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(opts.CORS))
	router.Use(middleware.LimitRequestBody(opts.MaxBodyBytes))
}

// SetupMetricsRoutes exposes Prometheus metrics on /metrics
func SetupMetricsRoutes(router *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)
}
