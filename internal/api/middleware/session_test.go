package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type stubSessionStore struct {
	data domain.SessionData
	err  error
}

func (s *stubSessionStore) Load(*http.Request) (domain.SessionData, error) {
	return s.data, s.err
}

func (s *stubSessionStore) Start(http.ResponseWriter, *http.Request, domain.SessionData) error {
	return nil
}

func (s *stubSessionStore) Clear(http.ResponseWriter, *http.Request) error {
	return nil
}

func runSessionAuth(t *testing.T, store *stubSessionStore) (*domain.Identity, bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var (
		got    *domain.Identity
		called bool
	)
	h := SessionAuth(store, zerolog.Nop())(func(c echo.Context) error {
		called = true
		got = IdentityFrom(c)
		return nil
	})
	err := h(c)
	return got, called, err
}

func TestSessionAuth_AttachesIdentity(t *testing.T) {
	store := &stubSessionStore{data: domain.NewAdminSession(domain.Identity{ID: 7, Email: "a@example.com"})}

	id, called, err := runSessionAuth(t, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if id == nil || id.ID != 7 || id.Email != "a@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestSessionAuth_NoSession(t *testing.T) {
	id, called, err := runSessionAuth(t, &stubSessionStore{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if id != nil {
		t.Fatalf("expected no identity, got %+v", id)
	}
}

func TestSessionAuth_MalformedSessionIsIgnored(t *testing.T) {
	store := &stubSessionStore{data: domain.SessionData{domain.SessionAdminKey: "not-an-object"}}

	id, called, err := runSessionAuth(t, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || id != nil {
		t.Fatalf("expected next without identity, called=%v id=%+v", called, id)
	}
}

func TestSessionAuth_StoreFailure(t *testing.T) {
	boom := errors.New("store down")

	_, called, err := runSessionAuth(t, &stubSessionStore{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if called {
		t.Fatalf("next must not run when the store fails")
	}
}
