package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/services/health"
	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/metrics"
	"summarizer-backend/internal/shared/server/middleware"
	"summarizer-backend/internal/shared/server/respond"
)

const (
	apiPrefix      = "/api/v1"
	summarizeGroup = "SUMMARIZE"
)

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps collects what the router needs from bootstrap.
type RouterDeps struct {
	Config         config.Config
	Verifier       middleware.TokenVerifier
	Health         *health.Service
	SummaryHandler RouteRegistrar
	RateLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(deps.Verifier, apiPrefix+"/health", apiPrefix+"/metrics"),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				summarizeGroup: {Rate: cfg.SummarizeRPS, Burst: cfg.SummarizeBurst},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == apiPrefix+"/summarize" {
					return summarizeGroup
				}
				return ""
			},
			Limiter: deps.RateLimiter,
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})
	api.GET("/metrics", metrics.Handler())
	registerMeRoutes(api)
	if deps.SummaryHandler != nil {
		deps.SummaryHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
