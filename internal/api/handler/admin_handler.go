package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/quiz-admin/internal/api/metrics"
	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// AdminHandler serves login, logout and the current-admin lookup.
type AdminHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
}

func NewAdminHandler(auth ports.AuthService, sessions ports.SessionStore) *AdminHandler {
	return &AdminHandler{auth: auth, sessions: sessions}
}

// Login checks the credentials and starts a fresh session for the admin.
//
// @Summary      Login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin.login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("forbidden").Inc()
		}
		return err
	}

	if err := h.sessions.Start(c.Response(), c.Request(), domain.NewAdminSession(*id)); err != nil {
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return ok(c, id)
}

// Current returns the admin bound to the caller's session.
//
// @Summary      Current admin
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /admin.current [get]
func (h *AdminHandler) Current(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return ok(c, id)
}

// Logout drops the caller's session.
//
// @Summary      Logout
// @Tags         admin
// @Produce      json
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Router       /admin.logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Response(), c.Request()); err != nil {
		return err
	}
	return ok(c, nil)
}
