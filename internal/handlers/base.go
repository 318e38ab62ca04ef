package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "path", c.Request.URL.Path, "method", c.Request.Method)
	h.logger.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.logger.Error(msg, "error", err, "path", c.Request.URL.Path)
}

// HandleServiceError maps domain errors onto HTTP statuses.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case services.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case services.IsTemporalError(err), services.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error()})
	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: verrs})
			return
		}
		h.LogError(c, err, "unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}

// BindAndValidate decodes the JSON body and runs struct validation.
func (h *BaseHandler) BindAndValidate(c *gin.Context, v *validator.Validator, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return false
	}
	if err := v.Validate(req); err != nil {
		h.HandleServiceError(c, err)
		return false
	}
	return true
}

// CurrentUserID reads the authenticated identity set by the auth
// middleware. Routes behind AuthMiddleware always have it.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(contextUserIDKey)
	userID, _ := id.(string)
	return userID
}
