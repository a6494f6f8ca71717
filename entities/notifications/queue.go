package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"transdom/schemas"
)

var ErrQueueFull = errors.New("notification queue full")

// Queue moves notifications off the request path. Run blocks until ctx is
// cancelled and every worker has returned.
type Queue interface {
	Enqueue(ctx context.Context, ev schemas.EmailEvent) error
	Run(ctx context.Context)
}

type Deliverer interface {
	Deliver(ctx context.Context, ev schemas.EmailEvent) bool
}

// MemoryQueue is a buffered channel drained by a fixed pool of workers.
// Enqueue never blocks; a full buffer drops the event.
type MemoryQueue struct {
	events    chan schemas.EmailEvent
	deliverer Deliverer
	workers   int
	logger    *slog.Logger
}

func NewMemoryQueue(deliverer Deliverer, workers, buffer int, logger *slog.Logger) *MemoryQueue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryQueue{
		events:    make(chan schemas.EmailEvent, buffer),
		deliverer: deliverer,
		workers:   workers,
		logger:    logger,
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, ev schemas.EmailEvent) error {
	select {
	case q.events <- ev:
		return nil
	default:
		q.logger.Warn("notification dropped, queue full", "event_id", ev.ID, "kind", ev.Kind)
		return ErrQueueFull
	}
}

// Run delivers events until ctx is cancelled, then sends whatever is still
// buffered before returning.
func (q *MemoryQueue) Run(ctx context.Context) {
	deliverCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-q.events:
					q.deliverer.Deliver(deliverCtx, ev)
				}
			}
		}()
	}
	wg.Wait()

	q.drain(deliverCtx)
}

func (q *MemoryQueue) drain(ctx context.Context) {
	pending := len(q.events)
	if pending == 0 {
		return
	}
	q.logger.Info("delivering buffered notifications before shutdown", "pending", pending)

	sent := 0
	for {
		select {
		case ev := <-q.events:
			if q.deliverer.Deliver(ctx, ev) {
				sent++
			}
		default:
			q.logger.Info("notification queue drained", "pending", pending, "sent", sent)
			return
		}
	}
}
