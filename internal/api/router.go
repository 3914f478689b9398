package api

import (
	"net/http"
	"time"

	"github.com/blog-post-api/internal/config"
	"github.com/blog-post-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	postHandler := NewPostHandler(services, cfg, log)
	siteHandler := NewSiteHandler(cfg, log)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		// Public endpoints
		api.GET("/posts", postHandler.ListPublished)
		api.POST("/posts", postHandler.Create)
		api.GET("/posts/:slug", postHandler.GetBySlug)
		api.GET("/config", siteHandler.GetConfig)

		// Admin endpoints; access control is the reverse proxy's problem
		admin := api.Group("/admin")
		{
			admin.GET("/posts", postHandler.ListAll)
			admin.GET("/posts/:id", postHandler.GetByID)
			admin.PUT("/posts/:id", postHandler.Update)
			admin.DELETE("/posts/:id", postHandler.Delete)
		}
	}

	return router
}

// healthCheck returns a fixed liveness signal; no dependencies are
// checked.
func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
