package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/analysis"
	"ats-checker/internal/services/health"
	"ats-checker/internal/shared/config"
	"ats-checker/internal/shared/metrics"
	"ats-checker/internal/shared/server/middleware"
	"ats-checker/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, analysisHandler *analysis.Handler) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	healthSvc := health.NewService(analysisHandler.Svc.Registry.Version())
	liveness := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	}
	r.GET("/health", liveness)
	r.GET("/ready", func(c *gin.Context) {
		payload, ok := healthSvc.Ready()
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	r.GET("/metrics", metrics.Handler())

	limit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupDefault:  {Rate: cfg.CatalogRateLimitRPS, Burst: cfg.CatalogRateLimitBurst},
			middleware.GroupAnalysis: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
		},
		GroupFor: rateLimitGroup,
	})

	api := r.Group("/api/v1")
	api.GET("/health", liveness)
	analysisHandler.RegisterRoutes(api, limit)
	analysisHandler.RegisterLegacyRoutes(r.Group("/api"), limit)

	r.NoRoute(func(c *gin.Context) {
		respond.JSON(c, http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	return r
}

// rateLimitGroup puts document submissions in the analysis bucket; every
// other API call is a catalog read.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return middleware.GroupAnalysis
	}
	return middleware.GroupDefault
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
