package server

import (
	"github.com/gin-gonic/gin"

	googleauth "outreach-backend/internal/auth"
	"outreach-backend/internal/outreach"
	"outreach-backend/internal/services/health"
	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/metrics"
	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/users"
)

// RouterDeps are the handlers and middleware dependencies mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Verifier        middleware.TokenVerifier
	Limiter         *middleware.RateLimiter
	Health          *health.Service
	UserHandler     *users.Handler
	OutreachHandler *outreach.Handler
	GoogleAuth      *googleauth.GoogleService
}

// publicPrefixes bypass the bearer token check.
var publicPrefixes = []string{
	"/health",
	"/metrics",
	"/api/health",
	"/api/auth/signup",
	"/api/auth/login",
	"/api/auth/google/",
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier, publicPrefixes...),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", healthSvc.Handler())
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", healthSvc.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(api)
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.OutreachHandler != nil {
		limiter := deps.Limiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(nil)
		}
		pipeline := api.Group("", middleware.RateLimit(limiter, "pipeline", middleware.RateLimitRule{
			Rate:  deps.Config.RateLimitRPS,
			Burst: deps.Config.RateLimitBurst,
		}))
		deps.OutreachHandler.RegisterPipelineRoutes(pipeline)
		deps.OutreachHandler.RegisterHistoryRoutes(api)
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
