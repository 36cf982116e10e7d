package memory

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type sessionEntry struct {
	data      domain.SessionData
	expiresAt time.Time
}

// SessionStore keeps sessions in a map keyed by a random id carried in a cookie.
type SessionStore struct {
	mu         sync.Mutex
	sessions   map[string]sessionEntry
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionStore(cookieName string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]sessionEntry),
		cookieName: cookieName,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *SessionStore) Load(r *http.Request) (domain.SessionData, error) {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[c.Value]
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.sessions, c.Value)
		return nil, nil
	}
	return copySession(e.data), nil
}

func (s *SessionStore) Start(w http.ResponseWriter, r *http.Request, data domain.SessionData) error {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	if c, err := r.Cookie(s.cookieName); err == nil {
		delete(s.sessions, c.Value)
	}
	s.sweepLocked(now)
	s.sessions[id] = sessionEntry{data: copySession(data), expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(s.cookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: s.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}

// sweepLocked drops expired sessions whose cookies never came back. s.mu must be held.
func (s *SessionStore) sweepLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func copySession(data domain.SessionData) domain.SessionData {
	if data == nil {
		return nil
	}
	out := make(domain.SessionData, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
