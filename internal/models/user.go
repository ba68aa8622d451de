package models

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         constants.Role `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`

	// ManagerID links an employee to the admin responsible for them.
	ManagerID *string `gorm:"size:36" json:"manager_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
