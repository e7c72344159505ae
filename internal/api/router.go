package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())

	flash := NewFlashCodec([]byte(cfg.Session.FlashSecret), cfg.Session.FlashCookie, cfg.Session.CookieSecure)
	session := sessionMiddleware(services.Session, cfg.Session, log)
	flashes := flashMiddleware(flash)

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	// Handlers
	blogHandler := NewBlogHandler(services, cfg, log)
	adminHandler := NewAdminHandler(services, flash, log)
	postHandler := NewPostHandler(services, cfg, flash, log)
	authHandler := NewAuthHandler(services, flash, log)

	// Health check
	router.GET("/health", healthCheck(services, log))

	site := router.Group("/", session, flashes)
	{
		site.GET("/", blogHandler.Home)
		site.GET("/posts", blogHandler.Posts)
		site.POST("/search", blogHandler.Search)
		site.POST("/search/input", blogHandler.SearchInput)
		site.POST("/search/clear", blogHandler.SearchClear)

		site.GET("/login", authHandler.LoginForm)
		site.POST("/login", authHandler.Login)
		site.GET("/register", authHandler.RegisterForm)
		site.POST("/register", authHandler.Register)
		site.GET("/forgot-password", authHandler.ForgotPasswordForm)
		site.POST("/forgot-password", authHandler.ForgotPassword)
		site.GET("/reset-password/:id/:token", authHandler.ResetPasswordForm)
		site.POST("/reset-password/:id/:token", authHandler.ResetPassword)
		site.POST("/logout", authHandler.Logout)

		authed := site.Group("/", requireCapability(models.CapabilityAuthenticated))
		{
			authed.GET("/create", postHandler.CreateForm)
			authed.POST("/create", postHandler.Create)
		}

		admin := site.Group("/admin", requireCapability(models.CapabilityAdmin))
		{
			admin.GET("", adminHandler.Dashboard)
			admin.POST("/posts/:id/approve", adminHandler.Approve)
			admin.POST("/posts/:id/reject", adminHandler.Reject)
		}
	}

	router.NoRoute(session, flashes, renderNotFound)

	return router
}

// healthCheck returns the health status, including the session store when one is configured
func healthCheck(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if services.Store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := services.Store.HealthCheck(ctx); err != nil {
				log.Error().Err(err).Msg("Session store health check failed")
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
			"sessions":  services.Views.Len(),
		})
	}
}
