package handler

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// UpdateDispatcher is the interface the handler uses to hand updates to the bot workers.
type UpdateDispatcher interface {
	EnqueueBatch(updates []domain.BotUpdate) error
}

// BotHandler receives update batches pushed by the chat platform.
type BotHandler struct {
	dispatcher UpdateDispatcher
	secret     string
}

// NewBotHandler creates a BotHandler. An empty secret disables the secret check.
func NewBotHandler(dispatcher UpdateDispatcher, secret string) *BotHandler {
	return &BotHandler{dispatcher: dispatcher, secret: secret}
}

// Updates handles POST /bot.updates: validates the batch, enqueues it and returns 202.
// Replies are sent asynchronously by the dispatcher workers.
//
// @Summary      Receive chat updates
// @Tags         bot
// @Accept       json
// @Produce      json
// @Param        body  body      []botUpdateRequest  true  "Array of updates"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /bot.updates [post]
func (h *BotHandler) Updates(c echo.Context) error {
	var reqs []botUpdateRequest
	if err := c.Bind(&reqs); err != nil {
		return invalidPayload(err)
	}
	if len(reqs) == 0 {
		return &ValidationError{
			Message: "batch cannot be empty",
			Fields:  map[string][]string{"body": {"batch cannot be empty"}},
		}
	}

	updates := make([]domain.BotUpdate, 0, len(reqs))
	for i, req := range reqs {
		if !h.secretMatches(req.Secret) {
			return domain.ErrInvalidCredentials
		}
		if err := c.Validate(&req); err != nil {
			return prefixed(fmt.Sprintf("[%d]", i), err)
		}
		updates = append(updates, toBotUpdate(req))
	}

	if err := h.dispatcher.EnqueueBatch(updates); err != nil {
		c.Logger().Warnf("bot updates rejected: %v", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "bot queue unavailable").SetInternal(err)
	}
	return c.JSON(http.StatusAccepted, okResponse{
		Status: "ok",
		Data:   acceptedResponse{Count: len(updates)},
	})
}

func (h *BotHandler) secretMatches(got string) bool {
	if h.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// prefixed rewrites the field paths of a validation error with the batch index.
func prefixed(prefix string, err error) error {
	ve, isValidation := err.(*ValidationError)
	if !isValidation {
		return err
	}
	fields := make(map[string][]string, len(ve.Fields))
	for k, v := range ve.Fields {
		fields[prefix+"."+k] = v
	}
	return &ValidationError{Message: prefix + ": " + ve.Message, Fields: fields}
}
