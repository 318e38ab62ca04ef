package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/store"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	slotHandler         *SlotHandler
	assignmentHandler   *AssignmentHandler
	announcementHandler *AnnouncementHandler
	statsHandler        *StatsHandler
	authMiddleware      *AuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	st *store.Store,
	v *validator.Validator,
	logger *slog.Logger,
) *HandlerManager {
	sessions := NewSessions()
	authMiddleware := NewAuthMiddleware(sessions, serviceManager.Users(), serviceManager.Reset())

	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Users(), sessions, v, logger),
		userHandler:         NewUserHandler(serviceManager.Users(), v, logger),
		slotHandler:         NewSlotHandler(serviceManager.Slots(), v, logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignments(), v, logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcements(), v, logger),
		statsHandler:        NewStatsHandler(serviceManager.Stats(), serviceManager.Reports(), st, logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	requireTeaching := hm.authMiddleware.RequireRole(models.RoleTutor, models.RoleAdmin)
	requireAdmin := hm.authMiddleware.RequireRole(models.RoleAdmin)
	requireStudent := hm.authMiddleware.RequireRole(models.RoleStudent)

	// Login is the only unauthenticated API route.
	router.POST("/api/v1/auth/login", hm.authHandler.Login)

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.Handler())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/me", hm.authHandler.Me)
		}

		users := v1.Group("/users")
		{
			users.POST("", requireAdmin, hm.userHandler.Create)
			users.GET("", requireTeaching, hm.userHandler.List)
			users.GET("/:id", hm.userHandler.Get)
		}

		slots := v1.Group("/slots")
		{
			slots.POST("", requireTeaching, hm.slotHandler.CreateDraft)
			slots.POST("/publish", requireTeaching, hm.slotHandler.PublishWeek)
			slots.GET("/mine", requireTeaching, hm.slotHandler.ListMine)
			slots.GET("/visible", requireStudent, hm.slotHandler.ListVisible)
			slots.POST("/:id/reserve", requireStudent, hm.slotHandler.Reserve)
			slots.POST("/:id/toggle-done", requireTeaching, hm.slotHandler.ToggleDone)
			slots.DELETE("/:id", requireTeaching, hm.slotHandler.Delete)
		}

		assignments := v1.Group("/assignments")
		assignments.Use(requireAdmin)
		{
			assignments.POST("", hm.assignmentHandler.Assign)
			assignments.GET("", hm.assignmentHandler.List)
		}

		announcements := v1.Group("/announcements")
		{
			announcements.POST("", requireTeaching, hm.announcementHandler.Post)
			announcements.GET("/mine", requireTeaching, hm.announcementHandler.ListMine)
			announcements.GET("/visible", requireStudent, hm.announcementHandler.ListVisible)
			announcements.POST("/:id/read", hm.announcementHandler.MarkRead)
			announcements.POST("/:id/hide", requireStudent, hm.announcementHandler.Hide)
			announcements.DELETE("/:id", requireTeaching, hm.announcementHandler.Delete)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.announcementHandler.ListNotifications)
			notifications.POST("/:id/read", hm.announcementHandler.MarkNotificationRead)
			notifications.DELETE("/:id", hm.announcementHandler.RemoveNotification)
			notifications.DELETE("", hm.announcementHandler.ClearNotifications)
		}

		stats := v1.Group("/stats")
		stats.Use(requireTeaching)
		{
			stats.GET("/weekly", hm.statsHandler.Weekly)
			stats.GET("/all-time", hm.statsHandler.AllTime)
			stats.GET("/export", requireAdmin, hm.statsHandler.Export)
		}

		v1.GET("/email-log", requireAdmin, hm.statsHandler.EmailLog)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "scheduling-service",
		})
	})
}
