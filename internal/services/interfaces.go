package services

import (
	"context"
	"time"

	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request DTOs live with the validator so tag rules stay next to the
// struct definitions.
type LoginRequest = validator.LoginRequest
type CreateUserRequest = validator.CreateUserRequest
type CreateSlotRequest = validator.CreateSlotRequest
type PublishWeekRequest = validator.PublishWeekRequest
type CreateAnnouncementRequest = validator.CreateAnnouncementRequest
type AssignRequest = validator.AssignRequest

// TutorStats is one tutor's share of a stats projection. Hours derive
// from the fixed 50-minute slot length, rounded to two decimals.
type TutorStats struct {
	TutorID   string  `json:"tutor_id"`
	FullName  string  `json:"full_name"`
	DoneCount int     `json:"done_count"`
	DoneHours float64 `json:"done_hours"`
}

// StudentStats is one student's share of a stats projection.
type StudentStats struct {
	StudentID     string  `json:"student_id"`
	FullName      string  `json:"full_name"`
	ReservedCount int     `json:"reserved_count"`
	DoneCount     int     `json:"done_count"`
	ReservedHours float64 `json:"reserved_hours"`
	DoneHours     float64 `json:"done_hours"`
}

// StatsReport aggregates both sides of a projection window.
type StatsReport struct {
	WeekStart *time.Time     `json:"week_start,omitempty"`
	Tutors    []TutorStats   `json:"tutors"`
	Students  []StudentStats `json:"students"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	// FindByIdentifier resolves a login identifier (username or email).
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// VerifyCredential compares the presented secret. Plaintext by
	// design; hardening is out of scope for this service.
	VerifyCredential(user *models.User, secret string) bool
	Create(ctx context.Context, req *CreateUserRequest, actorID string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type SlotService interface {
	// CreateDraft appends an unpublished slot for the given instant.
	// Time-sensitive: now is injected, never read ambiently.
	CreateDraft(ctx context.Context, req *CreateSlotRequest, actorID string, now time.Time) (*models.Slot, error)
	// PublishWeek atomically publishes the tutor's drafts inside the
	// week and notifies every assigned student.
	PublishWeek(ctx context.Context, tutorID string, weekStart time.Time, actorID string, now time.Time) ([]models.Slot, error)
	Reserve(ctx context.Context, slotID, studentID string, now time.Time) (*models.Slot, error)
	ToggleDone(ctx context.Context, slotID, actorID string) (*models.Slot, error)
	Delete(ctx context.Context, slotID, actorID string) error

	ForTutor(ctx context.Context, tutorID string) ([]models.Slot, error)
	// VisibleToStudent lists published slots of the student's assigned
	// tutor; drafts are invisible regardless of time.
	VisibleToStudent(ctx context.Context, studentID string) ([]models.Slot, error)
}

type AssignmentService interface {
	// Assign overwrites the student's mapping unconditionally.
	Assign(ctx context.Context, studentID, teacherID string) error
	// AutoAssign picks the least-loaded tutor/admin, ties broken by
	// stable identity order, and assigns the student to it.
	AutoAssign(ctx context.Context, studentID string) (string, error)
	Assignments(ctx context.Context) (map[string]string, error)
}

type AnnouncementService interface {
	Post(ctx context.Context, authorID string, req *CreateAnnouncementRequest, now time.Time) (*models.Announcement, error)
	Delete(ctx context.Context, announcementID, actorID string) error
	MarkRead(ctx context.Context, announcementID, userID string) error
	HideForUser(ctx context.Context, userID, announcementID string) error
	// VisibleToStudent applies the visibility rule: authored by the
	// student's current tutor and not personally hidden.
	VisibleToStudent(ctx context.Context, studentID string) ([]models.Announcement, error)
	ForAuthor(ctx context.Context, authorID string) ([]models.Announcement, error)

	// Notify is the dispatcher entry point other components use for
	// ad hoc fan-out.
	Notify(ctx context.Context, userID string, kind models.NotificationKind, title, message string, now time.Time) error

	NotificationsFor(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	RemoveNotification(ctx context.Context, userID, notificationID string) error
	ClearNotifications(ctx context.Context, userID string) error
}

type ResetService interface {
	// Evaluate runs the weekly boundary check. Idempotent per calendar
	// day; reports whether a purge happened.
	Evaluate(ctx context.Context, now time.Time) (bool, error)
}

type StatsService interface {
	// WeeklyStats projects over slots inside [weekStart, weekStart+7d).
	WeeklyStats(ctx context.Context, weekStart time.Time) (*StatsReport, error)
	// AllTimeStats projects over the entire slot history.
	AllTimeStats(ctx context.Context) (*StatsReport, error)
}

type ReportService interface {
	// ExportStats renders a stats report as an xlsx workbook.
	ExportStats(ctx context.Context, report *StatsReport) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Users() UserService
	Slots() SlotService
	Assignments() AssignmentService
	Announcements() AnnouncementService
	Reset() ResetService
	Stats() StatsService
	Reports() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
