package main

import (
	"github.com/gin-gonic/gin"

	"github.com/campuslink/backend/internal/handlers"
	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(&svc.cfg.CORS))

	db := models.GetDB()

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(&svc.cfg.RateLimit)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	authHandler := handlers.NewAuthHandler(db, svc.cfg)
	projectHandler := handlers.NewProjectHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	collaborationHandler := handlers.NewCollaborationHandler(db, svc.taskQueue)
	chatHandler := handlers.NewChatHandler(db, svc.sseHub)
	dashboardHandler := handlers.NewDashboardHandler(db, svc.sseHub)
	systemLogHandler := handlers.NewSystemLogHandler(db)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/config", authHandler.GetAuthConfig)
		}

		// Public catalog (browsing requires no account)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.GetByID)

		// SSE stream (public route with internal token validation)
		sseHandler := handlers.NewSSEHandler(db, svc.sseHub)
		api.GET("/conversations/:id/stream", sseHandler.StreamMessages)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			// Profile
			protected.PUT("/profile", profileHandler.Update)

			// Projects (write operations and owner views)
			protected.GET("/projects/mine", projectHandler.ListMine)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)

			// Collaborations
			protected.POST("/collaborations", collaborationHandler.Request)
			protected.GET("/collaborations/outgoing", collaborationHandler.ListOutgoing)
			protected.GET("/collaborations/incoming", collaborationHandler.ListIncoming)
			protected.PUT("/collaborations/:id/respond", collaborationHandler.Respond)
			protected.PUT("/collaborations/:id/complete", collaborationHandler.Complete)
			protected.PUT("/collaborations/:id/progress", collaborationHandler.UpdateProgress)
			protected.DELETE("/collaborations/:id", collaborationHandler.Withdraw)

			// Conversations / messaging
			protected.POST("/conversations", chatHandler.EnsureConversation)
			protected.GET("/conversations", chatHandler.ListConversations)
			protected.GET("/conversations/:id/messages", chatHandler.ListMessages)
			protected.POST("/conversations/:id/messages", chatHandler.SendMessage)
			protected.PUT("/conversations/:id/read", chatHandler.MarkRead)
			protected.GET("/messages/unread-count", chatHandler.UnreadTotal)

			// Dashboards
			protected.GET("/dashboard/student", dashboardHandler.StudentStats)
			protected.GET("/dashboard/collaborator", dashboardHandler.CollaboratorStats)

			// System logs
			protected.GET("/system-logs", systemLogHandler.List)
			protected.GET("/system-logs/modules", systemLogHandler.GetModules)
			protected.GET("/system-logs/retention", systemLogHandler.GetRetention)
			protected.PUT("/system-logs/retention", systemLogHandler.SetRetention)
			protected.DELETE("/system-logs", systemLogHandler.Cleanup)
		}
	}
}
