// Package session provides a stateless session store: the whole payload travels in a
// cookie as an HS256-signed JWT, so tampered or expired cookies read as "no session".
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type claims struct {
	Data domain.SessionData `json:"data"`
	jwt.RegisteredClaims
}

// CookieStore implements ports.SessionStore on top of signed cookies.
type CookieStore struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewCookieStore(secret, cookieName string, ttl time.Duration) *CookieStore {
	return &CookieStore{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *CookieStore) Load(r *http.Request) (domain.SessionData, error) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	var cl claims
	tkn, err := jwt.ParseWithClaims(c.Value, &cl, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, nil
	}
	return cl.Data, nil
}

func (s *CookieStore) Start(w http.ResponseWriter, _ *http.Request, data domain.SessionData) error {
	if data == nil {
		return errors.New("start session: empty payload")
	}

	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, &http.Cookie{Name: s.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return nil
}
