package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// serviceManager wires the engine together around one shared store
// handle and one event publisher.
type serviceManager struct {
	store     *store.Store
	publisher events.Publisher
	logger    *slog.Logger

	userService         UserService
	slotService         SlotService
	assignmentService   AssignmentService
	announcementService AnnouncementService
	resetService        ResetService
	statsService        StatsService
	reportService       ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(st *store.Store, publisher events.Publisher, logger *slog.Logger) ServiceManager {
	disp := newDispatcher(st, NewLogMailer(st), publisher, logger)

	assignments := NewAssignmentService(st, disp, logger)
	return &serviceManager{
		store:               st,
		publisher:           publisher,
		logger:              logger,
		userService:         NewUserService(st, disp, assignments, logger),
		slotService:         NewSlotService(st, disp, logger),
		assignmentService:   assignments,
		announcementService: NewAnnouncementService(st, disp, logger),
		resetService:        NewResetService(st, disp, logger),
		statsService:        NewStatsService(st, logger),
		reportService:       NewReportService(logger),
	}
}

func (m *serviceManager) Users() UserService                 { return m.userService }
func (m *serviceManager) Slots() SlotService                 { return m.slotService }
func (m *serviceManager) Assignments() AssignmentService     { return m.assignmentService }
func (m *serviceManager) Announcements() AnnouncementService { return m.announcementService }
func (m *serviceManager) Reset() ResetService                { return m.resetService }
func (m *serviceManager) Stats() StatsService                { return m.statsService }
func (m *serviceManager) Reports() ReportService             { return m.reportService }

// Initialize runs the startup pass: the weekly reset is evaluated once
// so a service that slept across a Monday boundary catches up.
func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	if _, err := m.resetService.Evaluate(ctx, time.Now()); err != nil {
		return fmt.Errorf("startup weekly reset: %w", err)
	}

	m.initialized = true
	m.logger.Info("services initialized", "users", len(m.store.Users()))
	return nil
}

func (m *serviceManager) HealthCheck(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if m.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return nil
}

func (m *serviceManager) Shutdown(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shutdown {
		return nil
	}
	m.shutdown = true
	m.logger.Info("services shut down")
	return nil
}
