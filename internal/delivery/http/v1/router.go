package v1

import (
	"go-contact-relay/config"
	"go-contact-relay/internal/delivery/http/middleware"
	"go-contact-relay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  domain.HealthUsecase
	// Redis returns the rate limit store; nil keeps counters in memory
	Redis  func() *goredis.Client
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(middleware.MethodNotAllowed())
	r.NoRoute(middleware.NotFound())

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	// Public routes
	limiter := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		deps.Config.ContactRateLimit,
		deps.Config.ContactRateWindow,
		deps.Redis,
	))
	NewContactHandler(api, deps.ContactUC, deps.Config.ExposeErrorDetails, limiter)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
