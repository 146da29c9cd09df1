package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mehrabhossain1/midwife-backend/internal/config"
	"github.com/mehrabhossain1/midwife-backend/internal/http/handlers"
	"github.com/mehrabhossain1/midwife-backend/internal/http/middleware"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

// SetupRouter assembles the route table.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api/v1")

	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/register", authRateLimit, authHandler.Register)
	api.POST("/login", authRateLimit, authHandler.Login)

	// Report submission and listing are open to field devices.
	api.POST("/reports", reportHandler.Submit)
	api.GET("/reports", reportHandler.List)
	api.PATCH("/reports/:reportId", reportHandler.Resolve)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireAdmin())
	{
		admin.PATCH("/verify-user/:email", adminHandler.VerifyUser)
		admin.PATCH("/block-user/:email", adminHandler.BlockUser)
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users", adminHandler.DeleteUser)
		admin.GET("/recent-users", adminHandler.RecentUsers)
	}

	return r
}
