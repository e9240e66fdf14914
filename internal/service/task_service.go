package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habitsync/internal/config"
	"habitsync/internal/model"
	"habitsync/internal/repository"
)

// ErrValidation marks caller mistakes that should surface as 400s.
var ErrValidation = errors.New("validation")

// TaskUpdate carries the optional fields of a task update. Nil means the
// caller did not send the field.
type TaskUpdate struct {
	Title       *string
	Description *string
	Day         *time.Time
	ClearDay    bool
	Daytime     *int
	Notify      *bool
	Recurring   *string
	CompletedAt *time.Time
	ClearDone   bool
}

// TaskService wraps task CRUD plus the lazy recurrence completion reset:
// a recurring task stays "completed" only until its next scheduled
// occurrence has passed, at which point the completion is cleared on read.
type TaskService struct {
	taskRepo *repository.TaskRepository
	features config.Features
	now      func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository, features config.Features) *TaskService {
	return &TaskService{taskRepo: taskRepo, features: features, now: time.Now}
}

func (s *TaskService) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.ID == "" || task.UserID == "" || task.Title == "" {
		return nil, fmt.Errorf("%w: id, userId and title are required", ErrValidation)
	}
	if task.Daytime < 0 || task.Daytime > 1439 {
		return nil, fmt.Errorf("%w: daytime must be within 0..1439", ErrValidation)
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = s.now()
	}
	if err := s.taskRepo.Insert(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns non-deleted tasks, optionally for one owner, with recurring
// completions refreshed.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListVisible(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if err := s.refreshCompletion(ctx, &tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	if err := s.refreshCompletion(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskUpdate) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Deleted {
		return nil, gorm.ErrRecordNotFound
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.ClearDay {
		task.Day = nil
	} else if in.Day != nil {
		task.Day = in.Day
	}
	if in.Daytime != nil {
		if *in.Daytime < 0 || *in.Daytime > 1439 {
			return nil, fmt.Errorf("%w: daytime must be within 0..1439", ErrValidation)
		}
		task.Daytime = *in.Daytime
	}
	if in.Notify != nil {
		task.Notify = *in.Notify
	}
	if in.Recurring != nil {
		task.Recurring = *in.Recurring
	}
	if in.ClearDone {
		task.CompletedAt = nil
	} else if in.CompletedAt != nil {
		task.CompletedAt = in.CompletedAt
	}

	task.UpdatedAt = s.now()
	if err := s.taskRepo.Replace(ctx, task); err != nil {
		return nil, err
	}
	if err := s.refreshCompletion(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete soft-deletes when the feature is enabled, so the flag can reach
// syncing clients; otherwise the row is removed outright.
func (s *TaskService) Delete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	if s.features.SoftDelete {
		if err := s.taskRepo.SoftDelete(ctx, task, s.now()); err != nil {
			return nil, err
		}
		return task, nil
	}
	if err := s.taskRepo.HardDelete(ctx, id); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) refreshCompletion(ctx context.Context, task *model.Task) error {
	if !s.features.RecurrenceReset {
		return nil
	}
	if task.Recurring == "" || task.CompletedAt == nil {
		return nil
	}
	next := NextOccurrence(task.Recurring, *task.CompletedAt)
	if next == nil || s.now().Before(*next) {
		return nil
	}
	return s.taskRepo.ClearCompletion(ctx, task, s.now())
}
