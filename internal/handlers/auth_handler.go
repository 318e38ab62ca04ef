package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	users     services.UserService
	sessions  *Sessions
	validator *validator.Validator
}

func NewAuthHandler(users services.UserService, sessions *Sessions, v *validator.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		sessions:    sessions,
		validator:   v,
	}
}

// Login exchanges an identifier (username or email) and password for a
// bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.BindAndValidate(c, h.validator, &req) {
		return
	}

	user, err := h.users.FindByIdentifier(c.Request.Context(), req.Identifier)
	if err != nil || !h.users.VerifyCredential(user, req.Password) {
		// One response for both failure modes so login probing cannot
		// distinguish unknown users from wrong passwords.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid credentials"})
		return
	}

	token := h.sessions.Issue(user.ID)
	h.LogRequest(c, "user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.sessions.Revoke(token)
	}
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
