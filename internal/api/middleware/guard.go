package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// RequireAdmin rejects requests that carry no admin identity with domain.ErrUnauthorized.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c) == nil {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
