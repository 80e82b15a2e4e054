package room

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/classcheck/classcheck-api/internal/pkg/jwt"
)

func newTestRouter(t *testing.T) (http.Handler, *jwt.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSchedule{}, at(8, 0))
	jwtService := jwt.NewService("test-secret", 15*time.Minute)
	return Routes(NewHandler(svc), jwtService, nil, nil), jwtService, repo
}

func decodeData(t *testing.T, body string, v interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, body)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got: %s", body)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func bearer(t *testing.T, jwtService *jwt.Service, role string) string {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(uuid.New(), role)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func TestHandlerListEmpty(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var rooms []Response
	decodeData(t, rec.Body.String(), &rooms)
	if len(rooms) != 0 {
		t.Errorf("got %d rooms", len(rooms))
	}
}

func TestHandlerCreateRequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := `{"name":"Room 101","type":"Lecture Hall","capacity":100}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", rec.Code)
	}
}

func TestHandlerCreateRejectsNonAdmin(t *testing.T) {
	router, jwtService, _ := newTestRouter(t)

	body := `{"name":"Room 101","type":"Lecture Hall","capacity":100}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, jwtService, "user"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("user role: got %d, want 403", rec.Code)
	}
}

func TestHandlerCreateAsAdmin(t *testing.T) {
	router, jwtService, repo := newTestRouter(t)

	body := `{"name":"Room 101","type":"Lecture Hall","capacity":100,"equipment":["Projector"]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, jwtService, "admin"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", rec.Code, rec.Body.String())
	}
	var created Response
	decodeData(t, rec.Body.String(), &created)
	if created.Name != "Room 101" || created.Color != "green" {
		t.Errorf("created: %+v", created)
	}
	if len(repo.rooms) != 1 {
		t.Errorf("repo has %d rooms", len(repo.rooms))
	}
}

func TestHandlerCreateValidation(t *testing.T) {
	router, jwtService, _ := newTestRouter(t)

	// Unknown room type and zero capacity.
	body := `{"name":"Room 101","type":"Throne Room","capacity":0}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, jwtService, "admin"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("got %d, want 422. body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerGetUnknownRoom(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestHandlerGetBadID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}
