package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"transdom/schemas"
)

const (
	redisPopTimeout = 2 * time.Second
	redisErrorPause = time.Second
)

// RedisQueue keeps pending notifications in a Redis list so they survive a
// restart. Producers LPUSH, workers BRPOP.
type RedisQueue struct {
	client    *redis.Client
	key       string
	deliverer Deliverer
	workers   int
	logger    *slog.Logger
}

func NewRedisQueue(client *redis.Client, key string, deliverer Deliverer, workers int, logger *slog.Logger) *RedisQueue {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisQueue{client: client, key: key, deliverer: deliverer, workers: workers, logger: logger}
}

func (q *RedisQueue) Enqueue(ctx context.Context, ev schemas.EmailEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

// Pop waits up to timeout for the next event. It returns (nil, nil) when
// the list stayed empty.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (*schemas.EmailEvent, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ev := schemas.EmailEvent{}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	return &ev, nil
}

func (q *RedisQueue) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.work(ctx)
		}()
	}
	wg.Wait()
}

func (q *RedisQueue) work(ctx context.Context) {
	for ctx.Err() == nil {
		ev, err := q.Pop(ctx, redisPopTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			q.logger.Error("notification queue read failed", "key", q.key, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(redisErrorPause):
			}
			continue
		}
		if ev == nil {
			continue
		}
		q.deliverer.Deliver(context.WithoutCancel(ctx), *ev)
	}
}
