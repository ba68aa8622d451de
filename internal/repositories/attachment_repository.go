package repository

import (
	"context"

	"gorm.io/gorm"

	model "task-track-system.com/task-track-system/internal/models"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) WithTx(tx *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: tx}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.TaskAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*model.TaskAttachment, error) {
	var attachment model.TaskAttachment
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		First(&attachment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskAttachment, error) {
	var attachments []model.TaskAttachment
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("task_id = ?", taskID).
		Order("uploaded_at desc").
		Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.TaskAttachment{}, "id = ?", id).Error
}
