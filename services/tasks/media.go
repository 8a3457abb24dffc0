package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeMediaCleanup = "media:cleanup"

// MediaCleanupPayload lists the public URLs of images to delete.
type MediaCleanupPayload struct {
	URLs []string `json:"urls"`
}

func NewMediaCleanupTask(urls []string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(MediaCleanupPayload{URLs: urls})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMediaCleanup, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}

// MediaCleaner schedules removal of images that are no longer referenced.
type MediaCleaner interface {
	EnqueueMediaCleanup(ctx context.Context, urls []string) error
}

// Enqueuer submits media cleanup tasks to the asynq queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueMediaCleanup(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	task, opts, err := NewMediaCleanupTask(urls)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue media cleanup: %w", err)
	}
	return nil
}

// NoopCleaner drops cleanup requests, used when no queue is configured.
type NoopCleaner struct{}

func (NoopCleaner) EnqueueMediaCleanup(context.Context, []string) error { return nil }
