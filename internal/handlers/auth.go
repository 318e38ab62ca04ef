package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/services"
)

const contextUserIDKey = "user_id"
const contextUserRoleKey = "user_role"

// Sessions is the in-memory bearer token registry. Tokens are opaque
// and live for the process lifetime unless revoked.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> user ID
}

func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]string)}
}

// Issue mints a fresh token bound to the user.
func (s *Sessions) Issue(userID string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

func (s *Sessions) Resolve(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.tokens[token]
	return userID, ok
}

func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// AuthMiddleware resolves the bearer token, loads the user, and runs
// the opportunistic weekly reset check before the handler executes.
type AuthMiddleware struct {
	sessions *Sessions
	users    services.UserService
	reset    services.ResetService
}

func NewAuthMiddleware(sessions *Sessions, users services.UserService, reset services.ResetService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, users: users, reset: reset}
}

func (m *AuthMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "missing bearer token"})
			return
		}
		userID, ok := m.sessions.Resolve(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
			return
		}
		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "unknown session user"})
			return
		}

		// The weekly reset is a logical job: evaluating it on every
		// authenticated request keeps it current without a scheduler.
		// Failures never block the request.
		_, _ = m.reset.Evaluate(c.Request.Context(), time.Now())

		c.Set(contextUserIDKey, user.ID)
		c.Set(contextUserRoleKey, user.Role)
		c.Next()
	}
}

// RequireRole restricts a route group to the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Get(contextUserRoleKey)
		role, _ := value.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "insufficient role"})
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
