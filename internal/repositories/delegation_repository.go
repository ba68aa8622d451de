package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "task-track-system.com/task-track-system/internal/models"
)

type DelegationRepository struct {
	db *gorm.DB
}

func NewDelegationRepository(db *gorm.DB) *DelegationRepository {
	return &DelegationRepository{db: db}
}

func (r *DelegationRepository) WithTx(tx *gorm.DB) *DelegationRepository {
	return &DelegationRepository{db: tx}
}

// Append records one delegation event. History rows are never mutated.
func (r *DelegationRepository) Append(ctx context.Context, taskID, fromUserID, toUserID string) (*model.TaskDelegation, error) {
	delegation := &model.TaskDelegation{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		FromUserID:  &fromUserID,
		ToUserID:    &toUserID,
		DelegatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(delegation).Error; err != nil {
		return nil, err
	}

	return delegation, nil
}

func (r *DelegationRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskDelegation, error) {
	var delegations []model.TaskDelegation
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Where("task_id = ?", taskID).
		Order("delegated_at desc").
		Find(&delegations).Error
	return delegations, err
}

// Latest returns the most recent delegation for the task, or nil when
// the task was never delegated.
func (r *DelegationRepository) Latest(ctx context.Context, taskID string) (*model.TaskDelegation, error) {
	var delegation model.TaskDelegation
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Where("task_id = ?", taskID).
		Order("delegated_at desc").
		First(&delegation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &delegation, nil
}

func (r *DelegationRepository) CountByTask(ctx context.Context, taskID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskDelegation{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}
