package cron

import (
	"context"
	"time"

	"roomservice/config"
	"roomservice/services/storage"
	"roomservice/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection for background jobs.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitAssetWorker runs the asset cleanup worker in the background. The
// returned server is shut down by the caller.
func InitAssetWorker(store storage.StorageService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAssetDestroy, handleAssetDestroy(store, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("[AssetWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[AssetWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[AssetWorker] giving up; asset removals will stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleAssetDestroy(store storage.StorageService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseAssetDestroyTask(task)
		if err != nil {
			logger.Error("[AssetWorker] invalid payload", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := store.DeleteFile(ctx, p.PublicID); err != nil {
			logger.Warn("[AssetWorker] failed to delete asset", zap.String("publicId", p.PublicID), zap.Error(err))
			return err
		}
		logger.Debug("[AssetWorker] asset deleted", zap.String("publicId", p.PublicID))
		return nil
	}
}
