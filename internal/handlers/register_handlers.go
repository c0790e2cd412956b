package handlers

import (
	"fmt"

	"github.com/JuanPescoran/bond-valuation-app/cmd/docs"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/JuanPescoran/bond-valuation-app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	formatter *projection.Formatter,
) error {
	r.GET("/health", getHealth)

	authLimiter, err := middleware.NewLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("invalid AUTH_RATE_LIMIT %q: %w", cfg.AuthRateLimit, err)
	}

	v1 := r.Group("/api/v1")

	// Public authentication routes
	registerAuthRoutes(v1, cfg, services.Auth, middleware.RateLimit(authLimiter))

	setupAPIV1Routes(v1, cfg, services, formatter)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	formatter *projection.Formatter,
) {
	public := v1.Group("", middleware.OptionalAuthMiddleware(services.Auth, cfg.SessionCookieName))
	protected := v1.Group("", middleware.AuthMiddleware(services.Auth, cfg.SessionCookieName))

	registerValuationRoutes(public, protected, services, formatter)
	registerHistoryRoutes(protected, services.Valuation)
	registerSettingsRoutes(protected, services.Settings)
	registerEventRoutes(protected, services.Events, cfg.FrontendBaseURL)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
