package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitsync/internal/model"
)

func newTestRepo(t *testing.T) *TaskRepository {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := NewDB(":memory:", log)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{ID: "u1", Email: "u1@example.com"}).Error)
	return NewTaskRepository(db)
}

func insertTask(t *testing.T, repo *TaskRepository, id string, updatedMs int64, deleted bool) {
	t.Helper()
	task := model.Task{
		ID:        id,
		UserID:    "u1",
		Title:     id,
		Deleted:   deleted,
		UpdatedAt: time.UnixMilli(updatedMs).UTC(),
	}
	require.NoError(t, repo.Insert(context.Background(), &task))
}

func TestReplaceKeepsExplicitUpdatedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	insertTask(t, repo, "a", 100, false)

	task, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	task.Title = "renamed"
	task.UpdatedAt = time.UnixMilli(150).UTC()
	require.NoError(t, repo.Replace(ctx, task))

	stored, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Title)
	assert.Equal(t, int64(150), stored.UpdatedAt.UnixMilli(),
		"the merge clock must not be bumped behind the engine's back")
}

func TestListUpdatedAfterIsStrict(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	insertTask(t, repo, "old", 100, false)
	insertTask(t, repo, "same", 200, false)
	insertTask(t, repo, "new", 300, false)

	since := time.UnixMilli(200).UTC()
	tasks, err := repo.ListUpdatedAfter(ctx, "u1", &since)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "new", tasks[0].ID)

	all, err := repo.ListUpdatedAfter(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestVisibilitySplit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	insertTask(t, repo, "live", 100, false)
	insertTask(t, repo, "gone", 200, true)

	visible, err := repo.ListVisible(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "live", visible[0].ID)

	// The sync path sees everything, deletions included.
	all, err := repo.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
