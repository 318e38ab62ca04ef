package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/tutorhub/scheduling-service/internal/models"
)

// Seed populates an empty store with the initial account set the
// application ships with: one admin, two tutors and three students,
// each student assigned to a tutor. No-op when users already exist.
func (s *Store) Seed(now time.Time) {
	if !s.Empty() {
		return
	}

	admin := models.User{
		ID: uuid.NewString(), FullName: "Site Admin", Username: "admin",
		Email: "admin@tutorhub.example", Role: models.RoleAdmin,
		Password: "admin", CreatedAt: now,
	}
	tutorA := models.User{
		ID: uuid.NewString(), FullName: "Greta Olsen", Username: "greta",
		Email: "greta@tutorhub.example", Role: models.RoleTutor,
		Password: "greta", CreatedAt: now,
	}
	tutorB := models.User{
		ID: uuid.NewString(), FullName: "Marco Ferri", Username: "marco",
		Email: "marco@tutorhub.example", Role: models.RoleTutor,
		Password: "marco", CreatedAt: now,
	}
	students := []models.User{
		{ID: uuid.NewString(), FullName: "Lena Hart", Username: "lena",
			Email: "lena@tutorhub.example", Role: models.RoleStudent,
			Password: "lena", CreatedAt: now},
		{ID: uuid.NewString(), FullName: "Tom Reyes", Username: "tom",
			Email: "tom@tutorhub.example", Role: models.RoleStudent,
			Password: "tom", CreatedAt: now},
		{ID: uuid.NewString(), FullName: "Ada Virtanen", Username: "ada",
			Email: "ada@tutorhub.example", Role: models.RoleStudent,
			Password: "ada", CreatedAt: now},
	}

	s.AddUser(admin)
	s.AddUser(tutorA)
	s.AddUser(tutorB)
	for _, st := range students {
		s.AddUser(st)
	}
	s.SetAssignment(students[0].ID, tutorA.ID)
	s.SetAssignment(students[1].ID, tutorA.ID)
	s.SetAssignment(students[2].ID, tutorB.ID)
}
