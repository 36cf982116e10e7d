package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/api/handler"
	"github.com/99minutos/quiz-admin/internal/api/metrics"
	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// statusTokens are the envelope tokens for the codes the API produces. Other codes fall
// back to the snake-cased reason phrase.
var statusTokens = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusMethodNotAllowed:    "not_implemented",
	http.StatusConflict:            "conflict",
	http.StatusInternalServerError: "internal_server_error",
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps validation failures and known domain errors to their HTTP status codes.
//   - Logs unexpected errors and answers them with 500.
//   - Renders a consistent JSON envelope: {"status": "<token>", "message": "<message>", "data": ...}.
//
// When exposeInternal is false the message of a 500 is the bare reason phrase.
func NewHTTPErrorHandler(log zerolog.Logger, exposeInternal bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c, exposeInternal)
		metrics.ErrorResponsesTotal.WithLabelValues(resp.Status).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, exposeInternal bool) (int, errorResponse) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return envelope(http.StatusBadRequest, ve.Message, ve.Fields)
	}

	// Echo's own errors (router 404/405, bind failures outside handlers, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusInternalServerError {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		} else if he.Message != nil {
			msg = fmt.Sprintf("%v", he.Message)
		}
		return envelope(he.Code, msg, nil)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return reason(http.StatusForbidden)
	case errors.Is(err, domain.ErrUnauthorized):
		return reason(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrThemeNotFound):
		return reason(http.StatusNotFound)
	case errors.Is(err, domain.ErrThemeExists), errors.Is(err, domain.ErrQuestionExists):
		return reason(http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidQuestion):
		return reason(http.StatusBadRequest)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	if exposeInternal {
		return envelope(http.StatusInternalServerError, err.Error(), nil)
	}
	return reason(http.StatusInternalServerError)
}

func reason(code int) (int, errorResponse) {
	return envelope(code, http.StatusText(code), nil)
}

func envelope(code int, msg string, data any) (int, errorResponse) {
	resp := errorResponse{Status: statusToken(code), Message: msg}
	if data != nil {
		resp.Data = data
	}
	return code, resp
}

func statusToken(code int) string {
	if t, ok := statusTokens[code]; ok {
		return t
	}
	text := http.StatusText(code)
	if text == "" {
		return "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
