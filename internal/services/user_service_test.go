package services

import (
	"context"
	"errors"
	"testing"
)

func TestFindByIdentifier(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	users := env.mgr.Users()

	t.Run("by username", func(t *testing.T) {
		u, err := users.FindByIdentifier(ctx, "greta")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if u.ID != tutorA {
			t.Errorf("expected %s, got %s", tutorA, u.ID)
		}
	})

	t.Run("by email is case-insensitive", func(t *testing.T) {
		u, err := users.FindByIdentifier(ctx, "GRETA@X.EXAMPLE")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if u.ID != tutorA {
			t.Errorf("expected %s, got %s", tutorA, u.ID)
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		if _, err := users.FindByIdentifier(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestVerifyCredential(t *testing.T) {
	env := newTestEnv()
	users := env.mgr.Users()

	u, err := users.FindByIdentifier(context.Background(), "lena")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !users.VerifyCredential(u, "pw") {
		t.Error("correct secret rejected")
	}
	if users.VerifyCredential(u, "wrong") {
		t.Error("wrong secret accepted")
	}
	if users.VerifyCredential(u, "") {
		t.Error("empty secret accepted")
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	users := env.mgr.Users()

	t.Run("only admins create users", func(t *testing.T) {
		req := &CreateUserRequest{FullName: "X", Username: "x1", Email: "x1@x.example", Password: "pw", Role: "student"}
		for _, actor := range []string{tutorA, student1} {
			if _, err := users.Create(ctx, req, actor); !IsPermissionError(err) {
				t.Errorf("actor %s: expected permission error, got %v", actor, err)
			}
		}
	})

	t.Run("new student is auto-assigned", func(t *testing.T) {
		req := &CreateUserRequest{FullName: "New Student", Username: "newbie", Email: "newbie@x.example", Password: "pw", Role: "student"}
		u, err := users.Create(ctx, req, adminID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		teacherID, ok := env.store.AssignmentOf(u.ID)
		if !ok {
			t.Fatal("new student must have a tutor immediately")
		}
		// The admin carries no assignees yet, so load balancing picks it.
		if teacherID != adminID {
			t.Errorf("expected least-loaded teacher %s, got %s", adminID, teacherID)
		}
	})

	t.Run("new tutor gets no assignment", func(t *testing.T) {
		req := &CreateUserRequest{FullName: "New Tutor", Username: "tut", Email: "tut@x.example", Password: "pw", Role: "tutor"}
		u, err := users.Create(ctx, req, adminID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, ok := env.store.AssignmentOf(u.ID); ok {
			t.Error("tutors are not assigned to anyone")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := &CreateUserRequest{FullName: "Dup", Username: "newbie", Email: "other@x.example", Password: "pw", Role: "student"}
		if _, err := users.Create(ctx, req, adminID); !errors.Is(err, ErrUsernameExists) {
			t.Errorf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := &CreateUserRequest{FullName: "Dup", Username: "other", Email: "newbie@x.example", Password: "pw", Role: "student"}
		if _, err := users.Create(ctx, req, adminID); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}
