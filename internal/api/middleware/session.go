package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the *domain.Identity of the caller.
const IdentityKey = "identity"

// SessionAuth loads the caller's session and, when it holds an admin entry, attaches the
// identity to the context. It never rejects a request itself; RequireAdmin does that.
// A malformed session entry is treated as no identity.
func SessionAuth(store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := store.Load(c.Request())
			if err != nil {
				return err
			}

			id, err := domain.IdentityFromSession(data)
			switch {
			case errors.Is(err, domain.ErrMalformedSession):
				log.Warn().
					Err(err).
					Str("path", c.Path()).
					Msg("ignoring malformed session")
			case err != nil:
				return err
			case id != nil:
				c.Set(IdentityKey, id)
			}

			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by SessionAuth, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}
