package models

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

// Notification is created only by the fan-out engine and mutated only
// to flip IsRead.
type Notification struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`
	TaskID string `gorm:"size:36;not null;index" json:"task_id"`

	Type    constants.NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message string                     `gorm:"size:255;not null" json:"message"`

	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
