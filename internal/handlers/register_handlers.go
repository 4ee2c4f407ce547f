package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_conversion_service/cmd/docs"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/middleware"
	"github.com/SscSPs/currency_conversion_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. ipLimiter may be nil to disable the per-IP throttle.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	ipLimiter *limiter.Limiter,
) {
	if err := registerValidators(); err != nil {
		slog.Error("Failed to register validators", slog.String("error", err.Error()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIRoutes(r, cfg, services, ipLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	ipLimiter *limiter.Limiter,
) {
	api := r.Group("/api")
	if ipLimiter != nil {
		api.Use(middleware.RateLimit(ipLimiter))
	}

	errs := errorMapper{richStatusCodes: cfg.RichStatusCodes}
	registerUserRoutes(api, services.User, errs)
	registerConversionRoutes(api, services, errs)
	registerRequestLogRoutes(api, services, errs)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
