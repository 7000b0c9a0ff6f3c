package tasks

import (
	"context"
	"errors"
	"io"
	"testing"

	"roomservice/services/storage"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) UploadImage(context.Context, io.Reader, string) (*storage.Asset, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStorage) UploadBytes(context.Context, []byte, string, string) (*storage.Asset, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func TestAssetDestroyTaskRoundTrip(t *testing.T) {
	task, opts, err := NewAssetDestroyTask("categories/abc")
	require.NoError(t, err)
	assert.Equal(t, TypeAssetDestroy, task.Type())
	assert.NotEmpty(t, opts)

	p, err := ParseAssetDestroyTask(task)
	require.NoError(t, err)
	assert.Equal(t, "categories/abc", p.PublicID)

	_, err = ParseAssetDestroyTask(asynq.NewTask(TypeAssetDestroy, []byte("{")))
	assert.Error(t, err)
}

func TestRemoveAssetsQueuesWhenPossible(t *testing.T) {
	queue := &fakeQueue{}
	store := &fakeStorage{}
	r := NewQueuedAssetRemover(queue, store, nil)

	r.RemoveAssets(context.Background(), "a", "", "b")

	require.Len(t, queue.tasks, 2)
	assert.Empty(t, store.deleted)
}

func TestRemoveAssetsFallsBackToInlineDelete(t *testing.T) {
	store := &fakeStorage{}

	NewQueuedAssetRemover(&fakeQueue{err: errors.New("redis down")}, store, nil).
		RemoveAssets(context.Background(), "a")
	NewQueuedAssetRemover(nil, store, nil).RemoveAssets(context.Background(), "b")

	assert.Equal(t, []string{"a", "b"}, store.deleted)
}
