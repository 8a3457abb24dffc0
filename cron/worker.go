package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"asokatrip/config"
	"asokatrip/services/storage"
	"asokatrip/services/tasks"
	"asokatrip/utils"
)

// QueueRedisOpt is the asynq connection for the media queue.
func QueueRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// InitMediaWorker starts the media cleanup worker in the background and returns the server so the
// caller can shut it down.
func InitMediaWorker(ctx context.Context, cfg *config.Config, store storage.StorageService) *asynq.Server {
	logger := utils.GetLogger()
	redisOpts := QueueRedisOpt(cfg)

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMediaCleanup, HandleMediaCleanup(store))

	go monitorRedisConnection(ctx, redisOpts)

	go func() {
		logger.Info("Starting media worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			logger.Error("Media worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Media worker gave up; image cleanup is disabled")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleMediaCleanup deletes every URL in the payload. URLs this storage did not issue are skipped;
// any other failure makes asynq retry the whole task, which is safe because deletes are idempotent.
func HandleMediaCleanup(store storage.StorageService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.MediaCleanupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid media cleanup payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		var failed error
		for _, u := range p.URLs {
			err := store.DeleteFile(ctx, u)
			switch {
			case err == nil:
				logger.Debug("Deleted media", zap.String("url", u))
			case errors.Is(err, storage.ErrForeignURL):
				logger.Warn("Skipping media not owned by this storage", zap.String("url", u))
			default:
				logger.Error("Failed to delete media", zap.String("url", u), zap.Error(err))
				failed = err
			}
		}
		return failed
	}
}

// monitorRedisConnection pings the queue's Redis periodically to surface failures at runtime.
func monitorRedisConnection(ctx context.Context, opts asynq.RedisClientOpt) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
