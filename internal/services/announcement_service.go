package services

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// notificationPreviewLen caps the announcement body carried inside the
// in-app notification.
const notificationPreviewLen = 120

type announcementService struct {
	store  *store.Store
	disp   *dispatcher
	logger *slog.Logger
}

func NewAnnouncementService(st *store.Store, disp *dispatcher, logger *slog.Logger) AnnouncementService {
	return &announcementService{store: st, disp: disp, logger: logger}
}

func (s *announcementService) Post(ctx context.Context, authorID string, req *CreateAnnouncementRequest, now time.Time) (*models.Announcement, error) {
	author, ok := s.store.UserByID(authorID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if !author.Role.CanTeach() {
		return nil, NewPermissionError(authorID, "announcement", "post", "students may not post announcements")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}

	// Recipients are snapshotted at creation: later reassignments do
	// not change who this announcement addressed.
	recipients := s.store.StudentsAssignedTo(authorID)

	ann := models.Announcement{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		Title:      req.Title,
		Body:       req.Body,
		Recipients: recipients,
		CreatedAt:  now.UTC(),
	}
	s.store.AddAnnouncement(ann)

	// Truncation counts runes, not bytes: a preview must never split a
	// multi-byte character into invalid UTF-8.
	preview := req.Body
	if utf8.RuneCountInString(preview) > notificationPreviewLen {
		preview = string([]rune(preview)[:notificationPreviewLen])
	}
	for _, studentID := range recipients {
		s.disp.notify(ctx, studentID, models.NotificationAnnouncement, req.Title, preview, now)
	}

	s.disp.publish(ctx, events.New(events.AnnouncementCreated, events.AnnouncementPayload{
		AnnouncementID: ann.ID,
		AuthorID:       authorID,
	}))
	s.logger.Info("announcement posted", "announcement_id", ann.ID, "author_id", authorID, "recipients", len(recipients))
	return &ann, nil
}

func (s *announcementService) Delete(ctx context.Context, announcementID, actorID string) error {
	actor, ok := s.store.UserByID(actorID)
	if !ok {
		return ErrUserNotFound
	}
	ann, ok := s.store.AnnouncementByID(announcementID)
	if !ok {
		return ErrAnnouncementNotFound
	}
	if actor.Role != models.RoleAdmin && ann.AuthorID != actorID {
		return NewPermissionError(actorID, "announcement", "delete", "only the author or an admin")
	}

	s.store.RemoveAnnouncement(announcementID)
	s.disp.publish(ctx, events.New(events.AnnouncementDeleted, events.AnnouncementPayload{
		AnnouncementID: announcementID,
		AuthorID:       ann.AuthorID,
	}))
	return nil
}

func (s *announcementService) MarkRead(ctx context.Context, announcementID, userID string) error {
	changed, ok := s.store.MarkAnnouncementRead(announcementID, userID)
	if !ok {
		return ErrAnnouncementNotFound
	}
	if changed {
		s.disp.publish(ctx, events.New(events.AnnouncementRead, events.AnnouncementPayload{
			AnnouncementID: announcementID,
			UserID:         userID,
		}))
	}
	return nil
}

func (s *announcementService) HideForUser(ctx context.Context, userID, announcementID string) error {
	if _, ok := s.store.AnnouncementByID(announcementID); !ok {
		return ErrAnnouncementNotFound
	}
	// Personal hidden-set only; global visibility and the reader set
	// stay untouched.
	if s.store.HideAnnouncement(userID, announcementID) {
		s.disp.publish(ctx, events.New(events.AnnouncementHidden, events.AnnouncementPayload{
			AnnouncementID: announcementID,
			UserID:         userID,
		}))
	}
	return nil
}

// VisibleToStudent returns announcements authored by the student's
// currently assigned tutor and not hidden by the student. Hidden-sets
// are not transferred on reassignment, so switching tutors immediately
// switches the visible feed.
func (s *announcementService) VisibleToStudent(_ context.Context, studentID string) ([]models.Announcement, error) {
	if _, ok := s.store.UserByID(studentID); !ok {
		return nil, ErrUserNotFound
	}
	tutorID, ok := s.store.AssignmentOf(studentID)
	if !ok {
		return nil, nil
	}
	var out []models.Announcement
	for _, a := range s.store.Announcements() {
		if a.AuthorID == tutorID && !s.store.IsHidden(studentID, a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *announcementService) ForAuthor(_ context.Context, authorID string) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, a := range s.store.Announcements() {
		if a.AuthorID == authorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *announcementService) Notify(ctx context.Context, userID string, kind models.NotificationKind, title, message string, now time.Time) error {
	if _, ok := s.store.UserByID(userID); !ok {
		return ErrUserNotFound
	}
	s.disp.notify(ctx, userID, kind, title, message, now)
	return nil
}

func (s *announcementService) NotificationsFor(_ context.Context, userID string) ([]models.Notification, error) {
	return s.store.NotificationsFor(userID), nil
}

func (s *announcementService) MarkNotificationRead(_ context.Context, userID, notificationID string) error {
	if !s.store.MarkNotificationRead(userID, notificationID) {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *announcementService) RemoveNotification(_ context.Context, userID, notificationID string) error {
	if !s.store.RemoveNotification(userID, notificationID) {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *announcementService) ClearNotifications(_ context.Context, userID string) error {
	s.store.ClearNotifications(userID)
	return nil
}
