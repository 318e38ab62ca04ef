package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type AssignmentHandler struct {
	BaseHandler
	assignments services.AssignmentService
	validator   *validator.Validator
}

func NewAssignmentHandler(assignments services.AssignmentService, v *validator.Validator, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		assignments: assignments,
		validator:   v,
	}
}

// Assign maps a student to a teacher, replacing any previous mapping.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req services.AssignRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	if err := h.assignments.Assign(c.Request.Context(), req.StudentID, req.TeacherID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns the full student-to-teacher mapping.
func (h *AssignmentHandler) List(c *gin.Context) {
	all, err := h.assignments.Assignments(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": all})
}
