package model

import "time"

// User is an account owning tasks. The mobile client generates the id.
type User struct {
	ID    string `gorm:"primaryKey"`
	Email string `gorm:"size:255;uniqueIndex;not null"`
	// Password is stored verbatim; hardening is explicitly out of scope
	// for this service. Do not run it outside trusted deployments.
	Password         string `gorm:"size:32"`
	NotificationTime *int   // preferred reminder time, minutes since midnight
	TelegramChatID   *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Tasks            []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
