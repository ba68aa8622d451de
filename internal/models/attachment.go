package models

import "time"

type TaskAttachment struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TaskID string `gorm:"size:36;not null;index" json:"task_id"`

	// FileName is the original upload name; StoredPath is where the
	// file lives on disk. Deleting the attachment releases the file.
	FileName   string `gorm:"not null" json:"file_name"`
	StoredPath string `gorm:"not null" json:"-"`
	SizeBytes  int64  `gorm:"not null" json:"size_bytes"`

	UploadedByID *string `gorm:"size:36" json:"uploaded_by_id,omitempty"`
	UploadedBy   *User   `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`

	UploadedAt time.Time `json:"uploaded_at"`
}
