package model

import "time"

// Task mirrors the mobile client's local record. The client generates the
// id; the server owns UpdatedAt, which is the clock used to resolve sync
// conflicts, so gorm's automatic bumping is disabled for it.
type Task struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:255"`
	Day         *time.Time
	Daytime     int    // minutes since midnight, 0..1439
	Notify      bool   `gorm:"default:false"`
	Recurring   string `gorm:"size:7"` // weekday flags '0'/'1', index 0 = Sunday
	CompletedAt *time.Time
	Deleted     bool `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}
