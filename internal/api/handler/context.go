package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/quiz-admin/internal/api/middleware"
	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// currentIdentity returns the identity attached by the session middleware. The absence
// check is the same one RequireAdmin makes, so a handler behind the guard never sees nil.
func currentIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}
