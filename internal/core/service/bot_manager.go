package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

// DefaultReply is sent to every user who writes to the bot.
const DefaultReply = "Hello, world!"

// BotManager answers inbound chat messages with a fixed reply.
type BotManager struct {
	sender ports.MessageSender
	dedup  ports.UpdateDedup // optional
	reply  string
	log    zerolog.Logger
}

// NewBotManager returns a BotManager. dedup may be nil; an empty reply means DefaultReply.
func NewBotManager(sender ports.MessageSender, dedup ports.UpdateDedup, reply string, log zerolog.Logger) *BotManager {
	if reply == "" {
		reply = DefaultReply
	}
	return &BotManager{sender: sender, dedup: dedup, reply: reply, log: log}
}

// HandleUpdates replies to the author of every new message, in order. The first send
// failure stops the batch.
func (m *BotManager) HandleUpdates(ctx context.Context, updates []domain.BotUpdate) error {
	for _, u := range updates {
		if u.Type != domain.UpdateTypeMessageNew {
			m.log.Debug().Str("type", u.Type).Msg("update ignored")
			continue
		}

		if m.dedup != nil {
			dup, err := m.dedup.IsDuplicate(ctx, u)
			if err != nil {
				m.log.Warn().Err(err).Str("event_id", u.EventID).Msg("dedup check failed, replying anyway")
			} else if dup {
				m.log.Debug().Str("event_id", u.EventID).Msg("duplicate update skipped")
				continue
			}
		}

		msg := domain.OutgoingMessage{UserID: u.Message.FromID, Text: m.reply}
		if err := m.sender.SendMessage(ctx, msg); err != nil {
			return fmt.Errorf("reply to %d: %w", u.Message.FromID, err)
		}

		if m.dedup != nil {
			if err := m.dedup.Mark(ctx, u); err != nil {
				m.log.Warn().Err(err).Str("event_id", u.EventID).Msg("failed to set dedup key")
			}
		}
	}
	return nil
}
