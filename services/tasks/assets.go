package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roomservice/services/storage"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAssetDestroy = "asset:destroy"

// AssetDestroyPayload names one storage asset to delete.
type AssetDestroyPayload struct {
	PublicID string `json:"publicId"`
}

func NewAssetDestroyTask(publicID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(AssetDestroyPayload{PublicID: publicID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAssetDestroy, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// ParseAssetDestroyTask decodes the payload of an asset:destroy task.
func ParseAssetDestroyTask(task *asynq.Task) (AssetDestroyPayload, error) {
	var p AssetDestroyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeAssetDestroy, err)
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the remover needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AssetRemover deletes storage assets that are no longer referenced.
type AssetRemover interface {
	RemoveAssets(ctx context.Context, publicIDs ...string)
}

// QueuedAssetRemover queues deletions and falls back to deleting inline when
// there is no queue or enqueueing fails.
type QueuedAssetRemover struct {
	Queue   Enqueuer
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewQueuedAssetRemover(queue Enqueuer, store storage.StorageService, logger *zap.Logger) *QueuedAssetRemover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueuedAssetRemover{Queue: queue, Storage: store, Logger: logger}
}

// RemoveAssets never fails the caller; problems are logged.
func (r *QueuedAssetRemover) RemoveAssets(ctx context.Context, publicIDs ...string) {
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if r.Queue != nil {
			task, opts, err := NewAssetDestroyTask(id)
			if err == nil {
				if _, err = r.Queue.EnqueueContext(ctx, task, opts...); err == nil {
					continue
				}
			}
			r.Logger.Warn("failed to queue asset removal, deleting inline",
				zap.String("publicId", id), zap.Error(err))
		}
		if r.Storage == nil {
			continue
		}
		if err := r.Storage.DeleteFile(ctx, id); err != nil {
			r.Logger.Error("failed to delete asset", zap.String("publicId", id), zap.Error(err))
		}
	}
}
