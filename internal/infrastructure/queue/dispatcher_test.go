package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen map[int][]int // from_id -> message ids in processing order
	done chan struct{}
	want int
}

func newRecordingHandler(want int) *recordingHandler {
	return &recordingHandler{seen: make(map[int][]int), done: make(chan struct{}), want: want}
}

func (h *recordingHandler) HandleUpdates(_ context.Context, updates []domain.BotUpdate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, u := range updates {
		h.seen[u.Message.FromID] = append(h.seen[u.Message.FromID], u.Message.ID)
		h.want--
	}
	if h.want == 0 {
		close(h.done)
	}
	return nil
}

func TestDispatcher_PreservesPerSenderOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const senders, perSender = 5, 20
	h := newRecordingHandler(senders * perSender)
	d := NewDispatcher(3, h, zerolog.Nop())
	d.Start(ctx)

	var batch []domain.BotUpdate
	for i := 0; i < perSender; i++ {
		for s := 1; s <= senders; s++ {
			batch = append(batch, domain.BotUpdate{
				Type:    domain.UpdateTypeMessageNew,
				Message: domain.BotMessage{ID: i, FromID: s},
			})
		}
	}
	if err := d.EnqueueBatch(batch); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-h.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for updates")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := 1; s <= senders; s++ {
		ids := h.seen[s]
		if len(ids) != perSender {
			t.Fatalf("sender %d: expected %d updates, got %d", s, perSender, len(ids))
		}
		for i, id := range ids {
			if id != i {
				t.Fatalf("sender %d: out of order at %d: %v", s, i, ids)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingHandler(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, id := range []int{0, 1, 7, -3, 1 << 30} {
		idx := d.shardIndex(id)
		if idx < 0 || idx >= len(d.workers) || idx != d.shardIndex(id) {
			t.Fatalf("unstable or out of range shard %d for %d", idx, id)
		}
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewDispatcher(1, newRecordingHandler(0), zerolog.Nop())

	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(domain.BotUpdate{Message: domain.BotMessage{ID: i, FromID: 1}}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	err := d.EnqueueBatch([]domain.BotUpdate{{Message: domain.BotMessage{ID: -1, FromID: 1}}})
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcher_EnqueueAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(2, newRecordingHandler(1), zerolog.Nop())
	d.Start(ctx)
	cancel()

	if err := d.Enqueue(domain.BotUpdate{Message: domain.BotMessage{FromID: 1}}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}
