// Package chat holds outbound chat-platform clients.
package chat

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// LogSender writes outgoing messages to the log instead of calling a chat platform.
// It is used until a platform client is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendMessage(_ context.Context, msg domain.OutgoingMessage) error {
	s.log.Info().Int("user_id", msg.UserID).Str("text", msg.Text).Msg("bot message sent")
	return nil
}
