package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/store"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	st.AddUser(models.User{ID: "admin-1", FullName: "Ann Admin", Username: "ann", Email: "ann@x.example", Role: models.RoleAdmin, Password: "pw"})
	st.AddUser(models.User{ID: "tutor-a", FullName: "Greta Olsen", Username: "greta", Email: "greta@x.example", Role: models.RoleTutor, Password: "pw"})
	st.AddUser(models.User{ID: "stu-1", FullName: "Lena Hart", Username: "lena", Email: "lena@x.example", Role: models.RoleStudent, Password: "pw"})
	st.SetAssignment("stu-1", "tutor-a")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := services.NewServiceManager(st, events.NewMockEventPublisher(logger), logger)
	if err := mgr.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize services: %v", err)
	}

	router := gin.New()
	NewHandlerManager(mgr, st, validator.New(), logger).SetupRoutes(router)
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, identifier, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"identifier": identifier,
		"password":   password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", identifier, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"identifier": "greta", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"identifier": "nobody", "password": "pw",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notifications", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bogus token, got %d", rec.Code)
	}
}

func TestSlotLifecycleOverHTTP(t *testing.T) {
	router, st := newTestRouter(t)

	tutorToken := login(t, router, "greta", "pw")
	studentToken := login(t, router, "lena", "pw")

	// Far enough ahead that the draft is in a future week no matter
	// when the test runs.
	when := time.Now().AddDate(0, 0, 8).Truncate(time.Hour)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/slots", tutorToken, gin.H{"when": when})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: status %d body %s", rec.Code, rec.Body.String())
	}
	var slot models.Slot
	if err := json.Unmarshal(rec.Body.Bytes(), &slot); err != nil {
		t.Fatalf("decode slot: %v", err)
	}

	t.Run("draft is hidden from the student", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/slots/visible", studentToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list visible: status %d", rec.Code)
		}
		var resp struct {
			Slots []models.Slot `json:"slots"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Slots) != 0 {
			t.Errorf("draft leaked to student: %+v", resp.Slots)
		}
	})

	rec = doJSON(t, router, http.MethodPost, "/api/v1/slots/publish", tutorToken, gin.H{"week_start": when})
	if rec.Code != http.StatusOK {
		t.Fatalf("publish week: status %d body %s", rec.Code, rec.Body.String())
	}

	t.Run("student sees and reserves the published slot", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/slots/visible", studentToken, nil)
		var resp struct {
			Slots []models.Slot `json:"slots"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Slots) != 1 {
			t.Fatalf("expected 1 visible slot, got %d", len(resp.Slots))
		}

		rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/slots/%s/reserve", slot.ID), studentToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("reserve: status %d body %s", rec.Code, rec.Body.String())
		}
		stored, _ := st.SlotByID(slot.ID)
		if !stored.ReservedByStudent("stu-1") {
			t.Errorf("slot not held by the student: %+v", stored)
		}
	})

	t.Run("double booking maps to 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/slots/%s/reserve", slot.ID), studentToken, nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("students cannot create slots", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/slots", studentToken, gin.H{"when": when})
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("unknown slot maps to 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/slots/ghost/reserve", studentToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAdminOnlyRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	tutorToken := login(t, router, "greta", "pw")
	adminToken := login(t, router, "ann", "pw")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/email-log", tutorToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("tutor reading the email log: expected 403, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/email-log", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("admin reading the email log: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats/export", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("stats export: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %s", ct)
	}
}

func TestResponsesNeverCarryCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"identifier": "greta", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte(`"password"`)) {
		t.Errorf("login response exposes the credential: %s", rec.Body.String())
	}

	adminToken := login(t, router, "ann", "pw")
	for _, path := range []string{"/api/v1/auth/me", "/api/v1/users", "/api/v1/users/tutor-a"} {
		rec := doJSON(t, router, http.MethodGet, path, adminToken, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rec.Code)
			continue
		}
		if bytes.Contains(rec.Body.Bytes(), []byte(`"password"`)) {
			t.Errorf("%s exposes the credential: %s", path, rec.Body.String())
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
