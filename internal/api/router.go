package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maintdesk/maintdesk/internal/api/handlers"
	"github.com/maintdesk/maintdesk/internal/auth"
	"github.com/maintdesk/maintdesk/internal/config"
	"github.com/maintdesk/maintdesk/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware())

	authenticator := auth.NewBasicAuthenticator(db, cfg.Auth.JWTSecret)
	loginLimiter := auth.NewLoginRateLimiter(
		cfg.Auth.LoginRateLimit,
		time.Duration(cfg.Auth.LoginRateWindow)*time.Second,
	)

	requestHandler := handlers.NewRequestHandler(service.NewRequestService(db))
	roomHandler := handlers.NewRoomHandler(service.NewRoomService(db))
	statusHandler := handlers.NewStatusHandler(service.NewStatusService(db))
	typeHandler := handlers.NewTypeHandler(service.NewTypeService(db))
	userHandler := handlers.NewUserHandler(service.NewUserService(db))

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", handlers.HealthCheck)
		public.POST("/auth/login", loginLimiter.Middleware(), handlers.Login(authenticator))
	}

	// Protected routes (require authentication)
	protected := router.Group("/api")
	protected.Use(authenticator.Middleware())
	{
		protected.GET("/requests", requestHandler.List)
		protected.POST("/requests", requestHandler.Create)
		protected.GET("/requests/:id", requestHandler.Get)
		protected.PUT("/requests/:id", requestHandler.Update)
		protected.PATCH("/requests/:id/status", requestHandler.ChangeStatus)
		protected.PATCH("/requests/:id/rating", requestHandler.Rate)
		protected.DELETE("/requests/:id", requestHandler.Delete)

		protected.GET("/rooms", roomHandler.List)
		protected.POST("/rooms", roomHandler.Create)
		protected.PUT("/rooms/:id", roomHandler.Update)
		protected.DELETE("/rooms/:id", roomHandler.Delete)

		protected.GET("/statuses", statusHandler.List)
		protected.POST("/statuses", statusHandler.Create)
		protected.PUT("/statuses/:id", statusHandler.Update)
		protected.DELETE("/statuses/:id", statusHandler.Delete)

		protected.GET("/types", typeHandler.List)

		protected.GET("/users", userHandler.List)
		protected.GET("/users/for-responsible", userHandler.ListResponsible)
		protected.POST("/users", userHandler.Create)
	}

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
