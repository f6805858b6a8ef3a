package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cleanupKey = "media:cleanup"

// Cleanup records deletion handles whose remote removal failed so a worker
// can retry them later.
type Cleanup interface {
	Enqueue(ctx context.Context, publicID string) error
}

// CleanupQueue is a Redis-backed list of deletion handles awaiting retry.
type CleanupQueue struct {
	client *redis.Client
}

// NewCleanupQueue connects to Redis and verifies the connection.
func NewCleanupQueue(redisURL, password string) (*CleanupQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CleanupQueue{client: rdb}, nil
}

// Enqueue pushes a deletion handle onto the retry list.
func (q *CleanupQueue) Enqueue(ctx context.Context, publicID string) error {
	return q.client.RPush(ctx, cleanupKey, publicID).Err()
}

// dequeue pops the oldest pending handle. Returns redis.Nil when empty.
func (q *CleanupQueue) dequeue(ctx context.Context) (string, error) {
	return q.client.LPop(ctx, cleanupKey).Result()
}

// requeue puts a handle back at the tail after a failed retry.
func (q *CleanupQueue) requeue(ctx context.Context, publicID string) error {
	return q.client.RPush(ctx, cleanupKey, publicID).Err()
}

// Close releases the Redis connection.
func (q *CleanupQueue) Close() error {
	return q.client.Close()
}

// CleanupWorker drains the retry queue in the background, re-attempting
// remote image deletions that failed during request handling.
type CleanupWorker struct {
	queue    *CleanupQueue
	uploader Uploader
	interval time.Duration
	logger   *slog.Logger
}

func NewCleanupWorker(queue *CleanupQueue, uploader Uploader, interval time.Duration, logger *slog.Logger) *CleanupWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CleanupWorker{
		queue:    queue,
		uploader: uploader,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, waking on every tick to drain the queue.
func (w *CleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("media cleanup worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain retries pending deletions until the queue is empty or a deletion
// fails again. On failure the handle goes back to the tail and the worker
// waits for the next tick instead of hammering the media host.
func (w *CleanupWorker) drain(ctx context.Context) {
	for {
		publicID, err := w.queue.dequeue(ctx)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				w.logger.Error("media cleanup dequeue failed", "error", err)
			}
			return
		}

		if err := w.uploader.Delete(ctx, publicID); err != nil {
			w.logger.Warn("media cleanup retry failed", "public_id", publicID, "error", err)
			if err := w.queue.requeue(ctx, publicID); err != nil {
				w.logger.Error("media cleanup requeue failed", "public_id", publicID, "error", err)
			}
			return
		}

		w.logger.Info("orphaned media deleted", "public_id", publicID)
	}
}
