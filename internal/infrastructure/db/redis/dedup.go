package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

const dedupTTL = time.Hour

// UpdateDedup remembers answered chat updates in Redis.
// Key format: bot:update:<event_id>, or bot:update:<from_id>:<message_id> when the
// platform sent no event id.
type UpdateDedup struct {
	client *redis.Client
}

func NewUpdateDedup(client *redis.Client) *UpdateDedup {
	return &UpdateDedup{client: client}
}

// IsDuplicate reports whether a reply to this update was already sent.
func (d *UpdateDedup) IsDuplicate(ctx context.Context, u domain.BotUpdate) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(u)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the update as answered (expires after dedupTTL).
func (d *UpdateDedup) Mark(ctx context.Context, u domain.BotUpdate) error {
	return d.client.Set(ctx, d.key(u), "1", dedupTTL).Err()
}

func (d *UpdateDedup) key(u domain.BotUpdate) string {
	if u.EventID != "" {
		return "bot:update:" + u.EventID
	}
	return fmt.Sprintf("bot:update:%d:%d", u.Message.FromID, u.Message.ID)
}
