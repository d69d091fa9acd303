package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"eduflix-api/internal/application/usecase"
	"eduflix-api/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Videos        *VideoHandler
	Categories    *CategoryHandler
	User          *UserHandler
	Notifications *NotificationHandler
	Limiter       *middleware.RateLimiter
	AuthUC        *usecase.AuthUseCase

	AllowedOrigins []string
	// Непустой CertDir включает раздачу локальных сертификатов статикой
	CertDir string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = deps.AllowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	if deps.CertDir != "" {
		r.Static("/static/certificates", deps.CertDir)
	}

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Limiter.Limit("login", 5, 1*time.Minute), deps.Auth.Login)
			auth.POST("/refresh", deps.Auth.Refresh)
			auth.POST("/logout", deps.Auth.Logout)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", deps.Videos.List)
			videos.GET("/popular", deps.Videos.Popular)
			videos.GET("/:id", deps.Videos.Get)
			videos.GET("/:id/related", deps.Videos.Related)
		}
		videosAuth := api.Group("/videos")
		videosAuth.Use(middleware.AuthMiddleware(deps.AuthUC))
		{
			videosAuth.POST("", deps.Videos.Create)
			videosAuth.PUT("/:id", deps.Videos.Update)
			videosAuth.DELETE("/:id", deps.Videos.Delete)
			videosAuth.POST("/:id/rating", deps.Videos.Rate)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", deps.Categories.List)
			categories.GET("/:id/stats", deps.Categories.Stats)
		}
		categoriesAuth := api.Group("/categories")
		categoriesAuth.Use(middleware.AuthMiddleware(deps.AuthUC))
		{
			categoriesAuth.POST("", deps.Categories.Create)
			categoriesAuth.PUT("/:id", deps.Categories.Update)
			categoriesAuth.DELETE("/:id", deps.Categories.Delete)
		}

		user := api.Group("/user")
		user.Use(middleware.AuthMiddleware(deps.AuthUC))
		{
			user.GET("/stats", deps.User.Stats)
			user.GET("/stats/export", deps.User.ExportStats)
			user.GET("/recommendations", deps.User.Recommendations)
			user.POST("/favorites/:videoId", deps.User.ToggleFavorite)
			user.GET("/favorites", deps.User.Favorites)
			user.GET("/history", deps.User.History)
			user.DELETE("/history", deps.User.ClearHistory)
			user.GET("/progress/:videoId", deps.User.GetProgress)
			user.PUT("/progress/:videoId", deps.User.UpdateProgress)
			user.POST("/certificates/:videoId", deps.User.IssueCertificate)
			user.GET("/certificates", deps.User.Certificates)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthMiddleware(deps.AuthUC))
		{
			notifications.GET("", deps.Notifications.List)
			notifications.PATCH("/:id/read", deps.Notifications.MarkRead)
			notifications.POST("/read-all", deps.Notifications.MarkAllRead)
			notifications.DELETE("/:id", deps.Notifications.Remove)
			notifications.DELETE("", deps.Notifications.Clear)
		}
	}

	return r
}
