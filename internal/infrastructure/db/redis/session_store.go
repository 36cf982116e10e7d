package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps session payloads server-side as JSON under session:<id>; the client
// only holds the random id.
type SessionStore struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
}

func NewSessionStore(client *redis.Client, cookieName string, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, cookieName: cookieName, ttl: ttl}
}

func (s *SessionStore) Load(r *http.Request) (domain.SessionData, error) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	raw, err := s.client.Get(r.Context(), sessionKeyPrefix+c.Value).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		// Undecodable payloads are dropped, not reported: the caller sees no session.
		return nil, nil
	}
	return data, nil
}

func (s *SessionStore) Start(w http.ResponseWriter, r *http.Request, data domain.SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ctx := r.Context()
	if err := s.drop(ctx, r); err != nil {
		return err
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

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
	if err := s.drop(r.Context(), r); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: s.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}

func (s *SessionStore) drop(ctx context.Context, r *http.Request) error {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKeyPrefix+c.Value).Err(); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}
