package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type AnnouncementHandler struct {
	BaseHandler
	announcements services.AnnouncementService
	validator     *validator.Validator
}

func NewAnnouncementHandler(announcements services.AnnouncementService, v *validator.Validator, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:   NewBaseHandler(logger),
		announcements: announcements,
		validator:     v,
	}
}

// Post publishes an announcement to the author's assigned students.
func (h *AnnouncementHandler) Post(c *gin.Context) {
	var req services.CreateAnnouncementRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	ann, err := h.announcements.Post(c.Request.Context(), CurrentUserID(c), &req, time.Now())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ann)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcements.Delete(c.Request.Context(), c.Param("id"), CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkRead records that the acting user has read the announcement.
func (h *AnnouncementHandler) MarkRead(c *gin.Context) {
	if err := h.announcements.MarkRead(c.Request.Context(), c.Param("id"), CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Hide removes the announcement from the acting user's feed only.
func (h *AnnouncementHandler) Hide(c *gin.Context) {
	if err := h.announcements.HideForUser(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVisible returns the acting student's feed, most recent first.
func (h *AnnouncementHandler) ListVisible(c *gin.Context) {
	list, err := h.announcements.VisibleToStudent(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": list})
}

// ListMine returns everything the acting tutor has authored.
func (h *AnnouncementHandler) ListMine(c *gin.Context) {
	list, err := h.announcements.ForAuthor(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": list})
}

// ListNotifications returns the acting user's notification feed.
func (h *AnnouncementHandler) ListNotifications(c *gin.Context) {
	list, err := h.announcements.NotificationsFor(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *AnnouncementHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.announcements.MarkNotificationRead(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnnouncementHandler) RemoveNotification(c *gin.Context) {
	if err := h.announcements.RemoveNotification(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnnouncementHandler) ClearNotifications(c *gin.Context) {
	if err := h.announcements.ClearNotifications(c.Request.Context(), CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
