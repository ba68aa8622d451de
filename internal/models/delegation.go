package models

import "time"

// TaskDelegation is one row of append-only delegation history. Rows
// are never updated or deleted except by task cascade.
type TaskDelegation struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TaskID string `gorm:"size:36;not null;index" json:"task_id"`

	FromUserID *string `gorm:"size:36" json:"from_user_id,omitempty"`
	FromUser   *User   `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`

	ToUserID *string `gorm:"size:36" json:"to_user_id,omitempty"`
	ToUser   *User   `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`

	DelegatedAt time.Time `json:"delegated_at"`
}
