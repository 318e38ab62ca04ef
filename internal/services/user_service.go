package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

type userService struct {
	store       *store.Store
	disp        *dispatcher
	assignments AssignmentService
	logger      *slog.Logger
}

func NewUserService(st *store.Store, disp *dispatcher, assignments AssignmentService, logger *slog.Logger) UserService {
	return &userService{store: st, disp: disp, assignments: assignments, logger: logger}
}

func (s *userService) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	user, ok := s.store.UserByIdentifier(identifier)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// VerifyCredential compares secrets in constant time. The stored
// credential is plaintext; hardening is out of scope here.
func (s *userService) VerifyCredential(user *models.User, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(user.Password), []byte(secret)) == 1
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest, actorID string) (*models.User, error) {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actorID, "user", "create", "only admins create users")
	}
	if s.store.UsernameTaken(req.Username) {
		return nil, ErrUsernameExists
	}
	if s.store.EmailTaken(req.Email) {
		return nil, ErrEmailExists
	}

	user := models.User{
		ID:        uuid.NewString(),
		FullName:  req.FullName,
		Username:  req.Username,
		Email:     req.Email,
		Role:      models.UserRole(req.Role),
		Password:  req.Password,
		CreatedAt: time.Now().UTC(),
	}
	s.store.AddUser(user)

	// New students immediately get a tutor so the one-assignment
	// invariant holds from the first observable state.
	if user.Role == models.RoleStudent {
		if _, err := s.assignments.AutoAssign(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("auto-assign new student: %w", err)
		}
	}

	s.disp.publish(ctx, events.New(events.UserCreated, events.UserPayload{
		UserID: user.ID,
		Role:   string(user.Role),
	}))
	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

func (s *userService) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.store.UserByID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *userService) List(_ context.Context) ([]models.User, error) {
	return s.store.Users(), nil
}
