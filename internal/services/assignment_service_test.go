package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tutorhub/scheduling-service/internal/models"
)

func TestAssign(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	assignments := env.mgr.Assignments()

	t.Run("overwrites existing mapping", func(t *testing.T) {
		if err := assignments.Assign(ctx, student1, tutorB); err != nil {
			t.Fatalf("assign: %v", err)
		}
		got, _ := env.store.AssignmentOf(student1)
		if got != tutorB {
			t.Errorf("expected %s, got %s", tutorB, got)
		}
		// Still exactly one entry for the student.
		all, _ := assignments.Assignments(ctx)
		if len(all) != 3 {
			t.Errorf("expected 3 assignments total, got %d", len(all))
		}
	})

	t.Run("admin is a valid assignee", func(t *testing.T) {
		if err := assignments.Assign(ctx, student1, adminID); err != nil {
			t.Errorf("assigning to an admin should work: %v", err)
		}
	})

	t.Run("unknown teacher", func(t *testing.T) {
		if err := assignments.Assign(ctx, student1, "ghost"); !errors.Is(err, ErrUnknownTeacher) {
			t.Errorf("expected ErrUnknownTeacher, got %v", err)
		}
		if err := assignments.Assign(ctx, student1, student2); !errors.Is(err, ErrUnknownTeacher) {
			t.Errorf("a student is not a teacher: got %v", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		if err := assignments.Assign(ctx, "ghost", tutorA); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAutoAssignBalancesLoad(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	assignments := env.mgr.Assignments()

	// Start: admin=0, tutorA=2, tutorB=1. New students must fill the
	// least-loaded candidates first.
	var newStudents []string
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("new-%d", i)
		env.store.AddUser(models.User{ID: id, FullName: id, Username: id, Email: id + "@x.example", Role: models.RoleStudent})
		newStudents = append(newStudents, id)
	}

	for _, id := range newStudents {
		if _, err := assignments.AutoAssign(ctx, id); err != nil {
			t.Fatalf("auto-assign %s: %v", id, err)
		}
	}

	counts := map[string]int{}
	all, _ := assignments.Assignments(ctx)
	for _, teacherID := range all {
		counts[teacherID]++
	}
	// 9 students over 3 candidates: an even 3/3/3 split.
	for _, teacherID := range []string{adminID, tutorA, tutorB} {
		if counts[teacherID] != 3 {
			t.Errorf("teacher %s: expected 3 assignees, got %d", teacherID, counts[teacherID])
		}
	}
}

func TestAutoAssignTieBreaksByIdentityOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.store.AddUser(models.User{ID: "fresh", FullName: "Fresh", Username: "fresh", Email: "fresh@x.example", Role: models.RoleStudent})
	// Loads: admin=0, tutorA=2, tutorB=1. The admin, first in identity
	// order among the least-loaded, wins.
	got, err := env.mgr.Assignments().AutoAssign(ctx, "fresh")
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	if got != adminID {
		t.Errorf("expected least-loaded candidate %s, got %s", adminID, got)
	}

	// Now admin and tutorB tie at one assignee each; the admin comes
	// first in insertion order and wins the tie.
	env.store.AddUser(models.User{ID: "fresh2", FullName: "Fresh Two", Username: "fresh2", Email: "fresh2@x.example", Role: models.RoleStudent})
	got, err = env.mgr.Assignments().AutoAssign(ctx, "fresh2")
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	if got != adminID {
		t.Errorf("tie at lowest load should go to %s (stable order), got %s", adminID, got)
	}
}
