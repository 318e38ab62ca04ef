package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type SlotHandler struct {
	BaseHandler
	slots     services.SlotService
	validator *validator.Validator
}

func NewSlotHandler(slots services.SlotService, v *validator.Validator, logger *slog.Logger) *SlotHandler {
	return &SlotHandler{
		BaseHandler: NewBaseHandler(logger),
		slots:       slots,
		validator:   v,
	}
}

// CreateDraft adds an unpublished slot. Tutors create for themselves;
// admins may pass tutor_id to create on another tutor's behalf.
func (h *SlotHandler) CreateDraft(c *gin.Context) {
	var req services.CreateSlotRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	slot, err := h.slots.CreateDraft(c.Request.Context(), &req, CurrentUserID(c), time.Now())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// PublishWeek flips every draft of the acting tutor inside the given
// week to published and fans notifications out to assigned students.
func (h *SlotHandler) PublishWeek(c *gin.Context) {
	var req services.PublishWeekRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	actorID := CurrentUserID(c)
	tutorID := c.DefaultQuery("tutor_id", actorID)

	published, err := h.slots.PublishWeek(c.Request.Context(), tutorID, req.WeekStart, actorID, time.Now())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": published})
}

// Reserve books a published slot for the acting student.
func (h *SlotHandler) Reserve(c *gin.Context) {
	slot, err := h.slots.Reserve(c.Request.Context(), c.Param("id"), CurrentUserID(c), time.Now())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// ToggleDone flips the done flag on a slot.
func (h *SlotHandler) ToggleDone(c *gin.Context) {
	slot, err := h.slots.ToggleDone(c.Request.Context(), c.Param("id"), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// Delete removes a slot.
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.slots.Delete(c.Request.Context(), c.Param("id"), CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine returns every slot the acting tutor owns, drafts included.
func (h *SlotHandler) ListMine(c *gin.Context) {
	list, err := h.slots.ForTutor(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": list})
}

// ListVisible returns the published slots of the acting student's
// assigned tutor.
func (h *SlotHandler) ListVisible(c *gin.Context) {
	list, err := h.slots.VisibleToStudent(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": list})
}
