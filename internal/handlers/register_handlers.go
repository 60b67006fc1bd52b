package handlers

import (
	"github.com/scholarbase/scholarship_portal_api/cmd/docs"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/middleware"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply rate limiting and AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", newRateLimiter(cfg.APIRateLimit, "300-M"), middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerScholarRoutes(v1, service.Scholar, service.Allowance, service.Document)
	registerAllowanceRoutes(v1, service.Allowance)
	registerAnnouncementRoutes(v1, service.Announcement)
	registerScheduleRoutes(v1, service.Schedule)
	registerDocumentRoutes(v1, service.Document)
	RegisterLateSubmissionRoutes(v1, service.LateSubmission)
	registerNotificationRoutes(v1, service.Notification)
	registerAuditRoutes(v1, service.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
