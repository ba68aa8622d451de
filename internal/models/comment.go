package models

import "time"

// Comment is immutable once created.
type Comment struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TaskID string `gorm:"size:36;not null;index" json:"task_id"`

	UserID string `gorm:"size:36;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
