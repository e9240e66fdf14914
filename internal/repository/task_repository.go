package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habitsync/internal/model"
)

// TaskRepository handles storage for tasks. Sync-facing reads include
// soft-deleted rows so deletions can propagate to clients; the Visible
// variants exclude them for the plain CRUD surface.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListVisible returns non-deleted tasks, optionally limited to one owner.
func (r *TaskRepository) ListVisible(ctx context.Context, ownerID string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("deleted = ?", false)
	if ownerID != "" {
		q = q.Where("user_id = ?", ownerID)
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListUpdatedAfter returns an owner's tasks modified strictly after since,
// oldest first. A nil since returns everything the owner has.
func (r *TaskRepository) ListUpdatedAfter(ctx context.Context, ownerID string, since *time.Time) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if since != nil {
		q = q.Where("updated_at > ?", *since)
	}
	var tasks []model.Task
	if err := q.Order("updated_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Replace overwrites every column of an existing row, keyed by id.
func (r *TaskRepository) Replace(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("replace task: %w", err)
	}
	return nil
}

// SoftDelete marks a task deleted so the flag reaches syncing clients.
func (r *TaskRepository) SoftDelete(ctx context.Context, task *model.Task, now time.Time) error {
	task.Deleted = true
	task.UpdatedAt = now
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) HardDelete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ClearCompletion resets a recurring task's completion once its next
// occurrence has passed. Bumps UpdatedAt so the reset syncs out.
func (r *TaskRepository) ClearCompletion(ctx context.Context, task *model.Task, now time.Time) error {
	updates := map[string]interface{}{
		"completed_at": nil,
		"updated_at":   now,
	}
	if err := r.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return fmt.Errorf("clear completion: %w", err)
	}
	task.CompletedAt = nil
	task.UpdatedAt = now
	return nil
}
