package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// dispatcher is the shared fan-out core: it creates in-app
// notifications, mirrors them to the outbound email log and publishes
// domain events. Dispatch is best-effort logging, never transactional:
// a publish failure is logged and swallowed so the triggering store
// mutation always stands.
type dispatcher struct {
	store     *store.Store
	mailer    Mailer
	publisher events.Publisher
	logger    *slog.Logger
}

func newDispatcher(st *store.Store, mailer Mailer, publisher events.Publisher, logger *slog.Logger) *dispatcher {
	return &dispatcher{store: st, mailer: mailer, publisher: publisher, logger: logger}
}

// notify prepends a notification to the user's list (most recent
// first) and appends a mock email addressed to the user. The caller's
// now stamps both records so time-sensitive flows stay replayable.
func (d *dispatcher) notify(ctx context.Context, userID string, kind models.NotificationKind, title, message string, now time.Time) {
	n := models.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now.UTC(),
	}
	d.store.PushNotification(userID, n)
	d.publish(ctx, events.New(events.NotificationCreated, events.NotificationPayload{
		UserID:         userID,
		NotificationID: n.ID,
		Kind:           string(kind),
	}))

	if user, ok := d.store.UserByID(userID); ok {
		d.mailer.Send(user.Email, emailSubject(kind, title), message, now)
	} else {
		d.logger.Warn("notification for unknown user, skipping email", "user_id", userID)
	}
}

func (d *dispatcher) publish(ctx context.Context, event events.Event) {
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Warn("event publish failed", "type", event.Type, "error", err)
	}
}

// emailSubject maps a notification kind to its subject line.
func emailSubject(kind models.NotificationKind, title string) string {
	switch kind {
	case models.NotificationSlotsPublished:
		return "New lesson slots: " + title
	case models.NotificationSlotReserved:
		return "Slot reserved: " + title
	case models.NotificationAnnouncement:
		return "Announcement: " + title
	case models.NotificationSystem:
		return "System notice: " + title
	default:
		return title
	}
}
