package services

import (
	"context"
	"log/slog"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

type assignmentService struct {
	store  *store.Store
	disp   *dispatcher
	logger *slog.Logger
}

func NewAssignmentService(st *store.Store, disp *dispatcher, logger *slog.Logger) AssignmentService {
	return &assignmentService{store: st, disp: disp, logger: logger}
}

func (s *assignmentService) Assign(ctx context.Context, studentID, teacherID string) error {
	student, ok := s.store.UserByID(studentID)
	if !ok || student.Role != models.RoleStudent {
		return ErrUserNotFound
	}
	teacher, ok := s.store.UserByID(teacherID)
	if !ok || !teacher.Role.CanTeach() {
		return ErrUnknownTeacher
	}

	// Overwrite, never duplicate: the map keeps exactly one tutor per
	// student.
	s.store.SetAssignment(studentID, teacherID)

	s.disp.publish(ctx, events.New(events.AssignmentUpdated, events.AssignmentPayload{
		StudentID: studentID,
		TutorID:   teacherID,
	}))
	s.logger.Info("student assigned", "student_id", studentID, "tutor_id", teacherID)
	return nil
}

// AutoAssign balances new students across tutors and admins: the
// candidate with the fewest current assignees wins, ties broken by
// stable identity (insertion) order.
func (s *assignmentService) AutoAssign(ctx context.Context, studentID string) (string, error) {
	teachers := s.store.UsersByRole(models.RoleTutor, models.RoleAdmin)
	if len(teachers) == 0 {
		return "", ErrNoTeachers
	}

	best := teachers[0]
	bestLoad := s.store.AssigneeCount(best.ID)
	for _, t := range teachers[1:] {
		if load := s.store.AssigneeCount(t.ID); load < bestLoad {
			best, bestLoad = t, load
		}
	}

	if err := s.Assign(ctx, studentID, best.ID); err != nil {
		return "", err
	}
	return best.ID, nil
}

func (s *assignmentService) Assignments(_ context.Context) (map[string]string, error) {
	return s.store.Assignments(), nil
}
