package queue

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/api/metrics"
	"github.com/99minutos/quiz-admin/internal/core/domain"
	"github.com/99minutos/quiz-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	// ErrQueueFull is returned when the worker for an update has no buffer space left.
	ErrQueueFull = errors.New("bot queue full")
	// ErrStopped is returned once the context given to Start is cancelled.
	ErrStopped = errors.New("bot dispatcher stopped")
)

// Dispatcher routes chat updates to a fixed set of workers by sender id, so each user's
// messages are answered in the order they arrived.
type Dispatcher struct {
	workers []chan domain.BotUpdate
	handler ports.UpdateHandler
	log     zerolog.Logger
	done    <-chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handler ports.UpdateHandler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.BotUpdate, numWorkers),
		handler: handler,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.BotUpdate, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.done = ctx.Done()
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an update to the worker responsible for its sender without blocking.
// It fails with ErrQueueFull when that worker's buffer is full and with ErrStopped after
// shutdown.
func (d *Dispatcher) Enqueue(u domain.BotUpdate) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}

	idx := d.shardIndex(u.Message.FromID)
	select {
	case d.workers[idx] <- u:
	default:
		metrics.BotUpdatesTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
	metrics.BotQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues updates in order and stops at the first rejected one, so a sender's
// later updates are never queued ahead of a dropped earlier one.
func (d *Dispatcher) EnqueueBatch(updates []domain.BotUpdate) error {
	for _, u := range updates {
		if err := d.Enqueue(u); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) shardIndex(fromID int) int {
	return int(uint(fromID) % uint(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.BotUpdate) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-ch:
			if !ok {
				return
			}
			metrics.BotQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.handler.HandleUpdates(ctx, []domain.BotUpdate{u}); err != nil {
				metrics.BotUpdatesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Int("from_id", u.Message.FromID).
					Int("worker_id", id).
					Msg("update processing failed")
				continue
			}
			metrics.BotUpdatesTotal.WithLabelValues("handled").Inc()
		}
	}
}
