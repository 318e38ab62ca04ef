package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/tutorhub/scheduling-service/internal/calendar"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// statsService derives read-side projections over the slot history.
// Attribution keys off slot ownership, never the live assignment map:
// reassigning a student does not move past bookkeeping between tutors.
type statsService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewStatsService(st *store.Store, logger *slog.Logger) StatsService {
	return &statsService{store: st, logger: logger}
}

func (s *statsService) WeeklyStats(_ context.Context, weekStart time.Time) (*StatsReport, error) {
	ws := calendar.WeekStart(weekStart)
	report := s.project(func(sl models.Slot) bool {
		return calendar.InWeek(sl.When, ws)
	})
	report.WeekStart = &ws
	return report, nil
}

func (s *statsService) AllTimeStats(_ context.Context) (*StatsReport, error) {
	return s.project(func(models.Slot) bool { return true }), nil
}

func (s *statsService) project(include func(models.Slot) bool) *StatsReport {
	type studentCounts struct{ reserved, done int }
	tutorDone := map[string]int{}
	students := map[string]*studentCounts{}

	for _, sl := range s.store.Slots() {
		if !include(sl) {
			continue
		}
		if sl.Done {
			tutorDone[sl.TutorID]++
		}
		if sl.ReservedBy != nil {
			sc := students[*sl.ReservedBy]
			if sc == nil {
				sc = &studentCounts{}
				students[*sl.ReservedBy] = sc
			}
			sc.reserved++
			if sl.Done {
				sc.done++
			}
		}
	}

	report := &StatsReport{
		Tutors:   []TutorStats{},
		Students: []StudentStats{},
	}
	for _, u := range s.store.UsersByRole(models.RoleTutor, models.RoleAdmin) {
		done := tutorDone[u.ID]
		report.Tutors = append(report.Tutors, TutorStats{
			TutorID:   u.ID,
			FullName:  u.FullName,
			DoneCount: done,
			DoneHours: slotHours(done),
		})
	}
	for _, u := range s.store.UsersByRole(models.RoleStudent) {
		sc := students[u.ID]
		if sc == nil {
			sc = &studentCounts{}
		}
		report.Students = append(report.Students, StudentStats{
			StudentID:     u.ID,
			FullName:      u.FullName,
			ReservedCount: sc.reserved,
			DoneCount:     sc.done,
			ReservedHours: slotHours(sc.reserved),
			DoneHours:     slotHours(sc.done),
		})
	}
	return report
}

// slotHours converts a slot count to hours using the fixed 50-minute
// lesson length, rounded to two decimals.
func slotHours(count int) float64 {
	return math.Round(float64(count)*50.0/60.0*100) / 100
}
