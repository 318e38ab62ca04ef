package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	users     services.UserService
	validator *validator.Validator
}

func NewUserHandler(users services.UserService, v *validator.Validator, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		validator:   v,
	}
}

// Create registers a user. New students get a tutor assigned as part
// of the same operation.
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), &req, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Public())
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": models.PublicUsers(users)})
}
