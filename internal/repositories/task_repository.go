package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	model "task-track-system.com/task-track-system/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("DelegatedTo").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByIDWithChildren(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("DelegatedTo").
		Preload("Comments.User").
		Preload("Attachments.UploadedBy").
		Preload("Delegations.FromUser").
		Preload("Delegations.ToUser").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForUser scopes the task list by role: privileged users see every
// task they created, hold or touched through a delegation; employees
// see only tasks assigned or delegated to them.
func (r *TaskRepository) ListForUser(ctx context.Context, user *model.User) ([]model.Task, error) {
	q := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("DelegatedTo").
		Order("created_at desc")

	if user.Role.Privileged() {
		q = q.Where(
			"created_by_id = ? OR assigned_to_id = ? OR delegated_to_id = ? OR id IN (?)",
			user.ID, user.ID, user.ID,
			r.db.Model(&model.TaskDelegation{}).
				Select("task_id").
				Where("from_user_id = ? OR to_user_id = ?", user.ID, user.ID),
		)
	} else {
		q = q.Where("assigned_to_id = ? OR delegated_to_id = ?", user.ID, user.ID)
	}

	var tasks []model.Task
	err := q.Find(&tasks).Error
	return tasks, err
}

// Update persists the mutable task fields. Reminder flags are written
// too so a due-date edit can reset them in the same statement.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":                  task.Title,
			"description":            task.Description,
			"status":                 task.Status,
			"priority":               task.Priority,
			"start_date":             task.StartDate,
			"due_date":               task.DueDate,
			"delegated_to_id":        task.DelegatedToID,
			"reminder_due_soon_sent": task.ReminderDueSoonSent,
			"reminder_expired_sent":  task.ReminderExpiredSent,
		}).Error
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, status constants.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("status", status).Error
}

func (r *TaskRepository) MarkExpiredReminderSent(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("reminder_expired_sent", true).Error
}

func (r *TaskRepository) MarkDueSoonReminderSent(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("reminder_due_soon_sent", true).Error
}

// ListOverdue returns open tasks whose due date falls strictly before
// the given day start and whose expiry reminder has not fired yet.
func (r *TaskRepository) ListOverdue(ctx context.Context, dayStart time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("DelegatedTo").
		Where("status IN ?", []constants.TaskStatus{constants.StatusPending, constants.StatusInProgress}).
		Where("due_date < ?", dayStart).
		Where("reminder_expired_sent = ?", false).
		Find(&tasks).Error
	return tasks, err
}

// ListDueOn returns open tasks due within [dayStart, nextDayStart)
// whose due-today reminder has not fired yet.
func (r *TaskRepository) ListDueOn(ctx context.Context, dayStart, nextDayStart time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("DelegatedTo").
		Where("status IN ?", []constants.TaskStatus{constants.StatusPending, constants.StatusInProgress}).
		Where("due_date >= ? AND due_date < ?", dayStart, nextDayStart).
		Where("reminder_due_soon_sent = ?", false).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", taskID).Error
}
