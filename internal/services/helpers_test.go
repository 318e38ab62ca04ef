package services

import (
	"io"
	"log/slog"
	"time"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// Fixed identities used across service tests.
const (
	adminID  = "admin-1"
	tutorA   = "tutor-a"
	tutorB   = "tutor-b"
	student1 = "stu-1"
	student2 = "stu-2"
	student3 = "stu-3"
)

// wednesday is the reference "now": Wednesday 2025-03-12 09:00 UTC.
// Its week starts Monday 2025-03-10.
var (
	wednesday = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	monday    = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
)

type testEnv struct {
	store *store.Store
	pub   *events.MockEventPublisher
	mgr   ServiceManager
}

func newTestEnv() *testEnv {
	st := store.New()
	st.AddUser(models.User{ID: adminID, FullName: "Ann Admin", Username: "ann", Email: "ann@x.example", Role: models.RoleAdmin, Password: "pw"})
	st.AddUser(models.User{ID: tutorA, FullName: "Greta Olsen", Username: "greta", Email: "greta@x.example", Role: models.RoleTutor, Password: "pw"})
	st.AddUser(models.User{ID: tutorB, FullName: "Marco Ferri", Username: "marco", Email: "marco@x.example", Role: models.RoleTutor, Password: "pw"})
	st.AddUser(models.User{ID: student1, FullName: "Lena Hart", Username: "lena", Email: "lena@x.example", Role: models.RoleStudent, Password: "pw"})
	st.AddUser(models.User{ID: student2, FullName: "Tom Reyes", Username: "tom", Email: "tom@x.example", Role: models.RoleStudent, Password: "pw"})
	st.AddUser(models.User{ID: student3, FullName: "Ada Virtanen", Username: "ada", Email: "ada@x.example", Role: models.RoleStudent, Password: "pw"})
	st.SetAssignment(student1, tutorA)
	st.SetAssignment(student2, tutorA)
	st.SetAssignment(student3, tutorB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pub := events.NewMockEventPublisher(logger)
	return &testEnv{
		store: st,
		pub:   pub,
		mgr:   NewServiceManager(st, pub, logger),
	}
}

// addPublishedSlot seeds a published slot owned by tutorA.
func (e *testEnv) addPublishedSlot(id string, when time.Time) {
	e.store.AddSlot(models.Slot{ID: id, TutorID: tutorA, When: when, Published: true})
}
