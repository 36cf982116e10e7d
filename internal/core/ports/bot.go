package ports

import (
	"context"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

// MessageSender is the outbound chat-platform client.
type MessageSender interface {
	SendMessage(ctx context.Context, msg domain.OutgoingMessage) error
}

// UpdateHandler processes updates received from the chat platform.
type UpdateHandler interface {
	HandleUpdates(ctx context.Context, updates []domain.BotUpdate) error
}

// UpdateDedup remembers which updates were already answered.
type UpdateDedup interface {
	IsDuplicate(ctx context.Context, update domain.BotUpdate) (bool, error)
	Mark(ctx context.Context, update domain.BotUpdate) error
}
