package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogcms-backend/internal/shared/middleware"
	"blogcms-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	adminOnly := middleware.AdminAuth(c.Config.Auth.CookieName, c.Issuer)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPostRoutes(v1, c, adminOnly)
		setupAuthorRoutes(v1, c, adminOnly)
		setupUploadRoutes(v1, c, adminOnly)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/verify", c.AuthHandler.Verify)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	posts := v1.Group("/posts")
	{
		// Public reads
		posts.GET("", c.PostHandler.List)
		posts.GET("/:id", c.PostHandler.GetByID)

		// Mutations pass the auth gate
		posts.POST("", adminOnly, c.PostHandler.Create)
		posts.PUT("/:id", adminOnly, c.PostHandler.Update)
		posts.DELETE("/:id", adminOnly, c.PostHandler.Delete)
		posts.POST("/:id/resync", adminOnly, c.PostHandler.ResyncAuthor)
	}

	// Tag counts are read-only and computed from posts
	v1.GET("/tags", c.PostHandler.ListTags)
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.POST("", adminOnly, c.AuthorHandler.Create)
	}
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	v1.POST("/upload", adminOnly, c.UploadHandler.Upload)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
