package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
	"inkwell-backend/pkg/container"
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

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupWritingRoutes(v1, c)
		setupWriterRoutes(v1, c)
		setupSubscriptionRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// =====================================================
// AUTH ROUTES
// =====================================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// =====================================================
// PROFILE ROUTES (current account)
// =====================================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/me")
	me.Use(middleware.Auth(c.JWTManager))
	{
		me.GET("", c.UserHandler.GetProfile)
		me.PUT("", c.UserHandler.UpdateProfile)
	}

	// The feed is personal, so it lives next to the profile.
	v1.GET("/feed", middleware.Auth(c.JWTManager), c.FollowHandler.Feed)
}

// =====================================================
// WRITING ROUTES
// =====================================================
func setupWritingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	writings := v1.Group("/writings")
	{
		// Reads run with an optional session: anonymous viewers get the
		// public slice, signed-in viewers their own writings too.
		writings.GET("", middleware.OptionalAuth(c.JWTManager), c.WritingHandler.ListWritings)
		writings.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.WritingHandler.GetWriting)
		writings.GET("/:id/read", middleware.OptionalAuth(c.JWTManager), c.WritingHandler.ReadWriting)

		// Mutations require a session.
		writings.POST("", middleware.Auth(c.JWTManager), c.WritingHandler.CreateWriting)
		writings.PUT("/:id", middleware.Auth(c.JWTManager), c.WritingHandler.UpdateWriting)
		writings.DELETE("/:id", middleware.Auth(c.JWTManager), c.WritingHandler.DeleteWriting)
	}
}

// =====================================================
// WRITER DIRECTORY + FOLLOW ROUTES
// =====================================================
func setupWriterRoutes(v1 *gin.RouterGroup, c *container.Container) {
	writers := v1.Group("/writers")
	{
		writers.GET("/search", c.UserHandler.SearchWriters)
		writers.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.UserHandler.GetWriterProfile)
		writers.GET("/:id/followers", c.FollowHandler.Followers)
		writers.GET("/:id/following", c.FollowHandler.Following)

		writers.POST("/:id/follow", middleware.Auth(c.JWTManager), c.FollowHandler.Follow)
		writers.DELETE("/:id/follow", middleware.Auth(c.JWTManager), c.FollowHandler.Unfollow)
	}
}

// =====================================================
// SUBSCRIPTION ROUTES
// =====================================================
func setupSubscriptionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	subs := v1.Group("/subscriptions")
	{
		// Unsubscribe is token-authenticated via the emailed link, so
		// neither endpoint needs a session.
		subs.POST("", c.SubscriptionHandler.Subscribe)
		subs.DELETE("/:token", c.SubscriptionHandler.Unsubscribe)
	}
}

// =====================================================
// ADMIN ROUTES
// =====================================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(c.JWTManager), middleware.Admin())
	{
		admin.GET("/subscriptions", c.SubscriptionHandler.List)
	}
}

// =====================================================
// HEALTH CHECK
// =====================================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			health["status"] = "degraded"
			health["database"] = "unreachable"
			response.Success(ctx, http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = "ok"

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = "unreachable"
		} else {
			health["cache"] = "ok"
		}

		response.Success(ctx, http.StatusOK, health)
	}
}
