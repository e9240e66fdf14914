package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habitsync/internal/config"
	"habitsync/internal/model"
	"habitsync/internal/repository"
)

func newTestService(t *testing.T, features config.Features) *TaskService {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := repository.NewDB(":memory:", log)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{ID: "u1", Email: "u1@example.com"}).Error)

	return NewTaskService(repository.NewTaskRepository(db), features)
}

func allFeatures() config.Features {
	return config.Features{SoftDelete: true, RecurrenceReset: true, TaskLogs: true}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, allFeatures())
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Task{ID: "a", UserID: "u1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, &model.Task{ID: "a", UserID: "u1", Title: "x", Daytime: 1440})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(ctx, &model.Task{ID: "a", UserID: "u1", Title: "x", Daytime: 1439})
	require.NoError(t, err)
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestRecurringCompletionResetsAfterNextOccurrence(t *testing.T) {
	svc := newTestService(t, allFeatures())
	ctx := context.Background()

	completed := time.Now().AddDate(0, 0, -3)
	_, err := svc.Create(ctx, &model.Task{
		ID:          "a",
		UserID:      "u1",
		Title:       "stretch",
		Recurring:   "1111111",
		CompletedAt: &completed,
	})
	require.NoError(t, err)

	task, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt, "a three-day-old completion of a daily task is stale")
}

func TestRecurringCompletionKeptUntilNextOccurrence(t *testing.T) {
	svc := newTestService(t, allFeatures())
	ctx := context.Background()

	completed := time.Now()
	_, err := svc.Create(ctx, &model.Task{
		ID:          "a",
		UserID:      "u1",
		Title:       "stretch",
		Recurring:   "1111111",
		CompletedAt: &completed,
	})
	require.NoError(t, err)

	task, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotNil(t, task.CompletedAt, "today's completion holds until tomorrow")
}

func TestRecurrenceResetDisabledByFlag(t *testing.T) {
	features := allFeatures()
	features.RecurrenceReset = false
	svc := newTestService(t, features)
	ctx := context.Background()

	completed := time.Now().AddDate(0, 0, -3)
	_, err := svc.Create(ctx, &model.Task{
		ID:          "a",
		UserID:      "u1",
		Title:       "stretch",
		Recurring:   "1111111",
		CompletedAt: &completed,
	})
	require.NoError(t, err)

	task, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotNil(t, task.CompletedAt)
}

func TestSoftDeleteHidesTask(t *testing.T) {
	svc := newTestService(t, allFeatures())
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Task{ID: "a", UserID: "u1", Title: "x"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	tasks, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// Second delete of an already-hidden task is a 404-level error.
	_, err = svc.Delete(ctx, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHardDeleteWhenSoftDeleteDisabled(t *testing.T) {
	features := allFeatures()
	features.SoftDelete = false
	svc := newTestService(t, features)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Task{ID: "a", UserID: "u1", Title: "x"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "a")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateAppliesOnlySentFields(t *testing.T) {
	svc := newTestService(t, allFeatures())
	ctx := context.Background()

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, &model.Task{ID: "a", UserID: "u1", Title: "before", Day: &day, Daytime: 60})
	require.NoError(t, err)

	title := "after"
	task, err := svc.Update(ctx, "a", TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "after", task.Title)
	require.NotNil(t, task.Day)
	assert.True(t, day.Equal(*task.Day), "unsent fields must survive")
	assert.Equal(t, 60, task.Daytime)

	task, err = svc.Update(ctx, "a", TaskUpdate{ClearDay: true})
	require.NoError(t, err)
	assert.Nil(t, task.Day)

	empty := ""
	_, err = svc.Update(ctx, "a", TaskUpdate{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}
