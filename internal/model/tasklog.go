package model

import "time"

// TaskLog records a single completion of a task.
type TaskLog struct {
	ID          string    `gorm:"primaryKey"`
	TaskID      string    `gorm:"index;not null"`
	UserID      string    `gorm:"index;not null"`
	CompletedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
