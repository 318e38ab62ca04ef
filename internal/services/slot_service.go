package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/calendar"
	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

type slotService struct {
	store  *store.Store
	disp   *dispatcher
	logger *slog.Logger
}

func NewSlotService(st *store.Store, disp *dispatcher, logger *slog.Logger) SlotService {
	return &slotService{store: st, disp: disp, logger: logger}
}

func (s *slotService) CreateDraft(ctx context.Context, req *CreateSlotRequest, actorID string, now time.Time) (*models.Slot, error) {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if !actor.Role.CanTeach() {
		return nil, NewPermissionError(actorID, "slot", "create", "students may not create slots")
	}

	tutorID := req.TutorID
	if tutorID == "" {
		tutorID = actorID
	}
	if actor.Role == models.RoleTutor && tutorID != actor.ID {
		return nil, NewPermissionError(actorID, "slot", "create", "tutors may only create their own slots")
	}
	tutor, ok := s.store.UserByID(tutorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if !tutor.Role.CanTeach() {
		return nil, ErrUnknownTeacher
	}

	// Week-level check first, then the day-level check which compares
	// calendar dates only: earlier hours today are still bookable.
	if calendar.IsPastWeek(req.When, now) {
		return nil, ErrWeekInPast
	}
	if calendar.DayBefore(req.When, now) {
		return nil, ErrDayInPast
	}

	slot := models.Slot{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		When:      req.When,
		CreatedAt: now.UTC(),
	}
	s.store.AddSlot(slot)

	s.disp.publish(ctx, events.New(events.SlotCreated, events.SlotPayload{
		SlotID:  slot.ID,
		TutorID: slot.TutorID,
		When:    slot.When,
	}))
	s.logger.Info("draft slot created", "slot_id", slot.ID, "tutor_id", tutorID, "when", slot.When)
	return &slot, nil
}

func (s *slotService) PublishWeek(ctx context.Context, tutorID string, weekStart time.Time, actorID string, now time.Time) ([]models.Slot, error) {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if !actor.Role.CanTeach() {
		return nil, NewPermissionError(actorID, "slot", "publish", "students may not publish slots")
	}
	if actor.Role == models.RoleTutor && tutorID != actor.ID {
		return nil, NewPermissionError(actorID, "slot", "publish", "tutors may only publish their own slots")
	}

	ws := calendar.WeekStart(weekStart)
	published := s.store.PublishWeek(tutorID, ws)
	if len(published) == 0 {
		return nil, ErrNothingToPublish
	}

	instants := make([]time.Time, len(published))
	ids := make([]string, len(published))
	for i, sl := range published {
		instants[i] = sl.When
		ids[i] = sl.ID
	}
	days := calendar.DistinctDays(instants)

	tutor, _ := s.store.UserByID(tutorID)
	title := "New lesson slots available"
	message := fmt.Sprintf("%s opened slots on %s.", tutor.FullName, formatDays(days))
	for _, studentID := range s.store.StudentsAssignedTo(tutorID) {
		s.disp.notify(ctx, studentID, models.NotificationSlotsPublished, title, message, now)
	}

	s.disp.publish(ctx, events.New(events.SlotsPublished, events.SlotsPublishedPayload{
		TutorID:   tutorID,
		WeekStart: ws,
		SlotIDs:   ids,
		Days:      days,
	}))
	s.logger.Info("week published", "tutor_id", tutorID, "week_start", ws, "count", len(published))
	return published, nil
}

func (s *slotService) Reserve(ctx context.Context, slotID, studentID string, now time.Time) (*models.Slot, error) {
	student, ok := s.store.UserByID(studentID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if student.Role != models.RoleStudent {
		return nil, NewPermissionError(studentID, "slot", "reserve", "only students reserve slots")
	}

	slot, ok := s.store.SlotByID(slotID)
	if !ok {
		return nil, ErrSlotNotFound
	}
	if slot.When.Before(now) {
		return nil, ErrSlotInPast
	}
	if !slot.Published {
		return nil, ErrSlotNotPublished
	}

	updated, holder, ok := s.store.ReserveSlot(slotID, studentID)
	if !ok {
		return nil, ErrSlotNotFound
	}
	if holder != nil {
		if *holder == studentID {
			return nil, ErrAlreadyReservedBySelf
		}
		return nil, ErrAlreadyReservedByOther
	}

	s.disp.notify(ctx, slot.TutorID, models.NotificationSlotReserved,
		student.FullName,
		fmt.Sprintf("%s reserved your slot on %s.", student.FullName, slot.When.Format("Mon Jan 2 15:04")),
		now,
	)
	s.logger.Info("slot reserved", "slot_id", slotID, "student_id", studentID)
	return &updated, nil
}

func (s *slotService) ToggleDone(ctx context.Context, slotID, actorID string) (*models.Slot, error) {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	slot, ok := s.store.SlotByID(slotID)
	if !ok {
		return nil, ErrSlotNotFound
	}
	if actor.Role != models.RoleAdmin && slot.TutorID != actorID {
		return nil, NewPermissionError(actorID, "slot", "toggle done", "only the owning tutor or an admin")
	}

	updated, _ := s.store.UpdateSlot(slotID, func(sl *models.Slot) {
		sl.Done = !sl.Done
	})

	// No notification fan-out for done toggling.
	s.disp.publish(ctx, events.New(events.SlotDone, events.SlotPayload{
		SlotID:  updated.ID,
		TutorID: updated.TutorID,
		When:    updated.When,
	}))
	return &updated, nil
}

func (s *slotService) Delete(ctx context.Context, slotID, actorID string) error {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return ErrUserNotFound
	}
	slot, ok := s.store.SlotByID(slotID)
	if !ok {
		return ErrSlotNotFound
	}

	// Admins delete unconditionally; tutors only their own unreserved slots.
	if actor.Role != models.RoleAdmin {
		if slot.TutorID != actorID {
			return NewPermissionError(actorID, "slot", "delete", "not the owning tutor")
		}
		if slot.Reserved() {
			return NewPermissionError(actorID, "slot", "delete", "slot is reserved")
		}
	}

	s.store.RemoveSlot(slotID)
	s.disp.publish(ctx, events.New(events.SlotDeleted, events.SlotPayload{
		SlotID:  slot.ID,
		TutorID: slot.TutorID,
		When:    slot.When,
	}))
	s.logger.Info("slot deleted", "slot_id", slotID, "actor_id", actorID)
	return nil
}

func (s *slotService) ForTutor(_ context.Context, tutorID string) ([]models.Slot, error) {
	if _, ok := s.store.UserByID(tutorID); !ok {
		return nil, ErrUserNotFound
	}
	var out []models.Slot
	for _, sl := range s.store.Slots() {
		if sl.TutorID == tutorID {
			out = append(out, sl)
		}
	}
	return out, nil
}

func (s *slotService) VisibleToStudent(_ context.Context, studentID string) ([]models.Slot, error) {
	if _, ok := s.store.UserByID(studentID); !ok {
		return nil, ErrUserNotFound
	}
	tutorID, ok := s.store.AssignmentOf(studentID)
	if !ok {
		return nil, nil
	}
	var out []models.Slot
	for _, sl := range s.store.Slots() {
		if sl.TutorID == tutorID && sl.Published {
			out = append(out, sl)
		}
	}
	return out, nil
}

func formatDays(days []time.Time) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.Format("Mon Jan 2")
	}
	return strings.Join(parts, ", ")
}
