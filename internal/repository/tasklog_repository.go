package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habitsync/internal/model"
)

// TaskLogRepository handles CRUD for task completion logs.
type TaskLogRepository struct {
	db *gorm.DB
}

func NewTaskLogRepository(db *gorm.DB) *TaskLogRepository {
	return &TaskLogRepository{db: db}
}

func (r *TaskLogRepository) Create(ctx context.Context, log *model.TaskLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create task log: %w", err)
	}
	return nil
}

func (r *TaskLogRepository) FindByID(ctx context.Context, id string) (*model.TaskLog, error) {
	var log model.TaskLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns logs, optionally filtered by task and/or user.
func (r *TaskLogRepository) List(ctx context.Context, taskID, userID string) ([]model.TaskLog, error) {
	q := r.db.WithContext(ctx)
	if taskID != "" {
		q = q.Where("task_id = ?", taskID)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var logs []model.TaskLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *TaskLogRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.TaskLog, error) {
	res := r.db.WithContext(ctx).Model(&model.TaskLog{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update task log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *TaskLogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TaskLog{})
	if res.Error != nil {
		return fmt.Errorf("delete task log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
