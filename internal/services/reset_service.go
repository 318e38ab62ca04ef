package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tutorhub/scheduling-service/internal/calendar"
	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// resetService runs the weekly boundary purge. It is a logical
// recurring job, not a cron: callers evaluate it opportunistically
// (startup, request handling) and the per-day idempotence guard keeps
// repeated evaluation safe.
type resetService struct {
	mu     sync.Mutex
	store  *store.Store
	disp   *dispatcher
	logger *slog.Logger
}

func NewResetService(st *store.Store, disp *dispatcher, logger *slog.Logger) ResetService {
	return &resetService{store: st, disp: disp, logger: logger}
}

func (s *resetService) Evaluate(ctx context.Context, now time.Time) (bool, error) {
	// The mutex serializes concurrent evaluations so the purge and the
	// reset-timestamp write act as one step.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !calendar.SameDay(now, calendar.WeekStart(now)) {
		return false, nil // not the first day of a week
	}
	if last := s.store.LastWeeklyResetAt(); last != nil && calendar.SameDay(*last, now) {
		return false, nil // already reset today
	}

	purged := s.store.PurgeSlots()
	s.store.SetLastWeeklyResetAt(now)

	for _, u := range s.store.Users() {
		s.disp.notify(ctx, u.ID, models.NotificationSystem,
			"Weekly schedule reset",
			"A new week has started; last week's schedule was cleared.",
			now)
	}

	s.disp.publish(ctx, events.New(events.ResetWeekly, events.ResetPayload{
		At:     now.UTC(),
		Purged: purged,
	}))
	s.logger.Info("weekly reset performed", "purged", purged, "at", now)
	return true, nil
}
