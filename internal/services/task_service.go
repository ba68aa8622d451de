package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
	"task-track-system.com/task-track-system/internal/storage"
)

type TaskService struct {
	db          *gorm.DB
	tasks       *repository.TaskRepository
	delegations *repository.DelegationRepository
	comments    *repository.CommentRepository
	attachments *repository.AttachmentRepository
	users       *repository.UserRepository
	notifier    *Notifier
	files       *storage.FileStore
}

func NewTaskService(
	db *gorm.DB,
	notifier *Notifier,
	files *storage.FileStore,
) *TaskService {
	return &TaskService{
		db:          db,
		tasks:       repository.NewTaskRepository(db),
		delegations: repository.NewDelegationRepository(db),
		comments:    repository.NewCommentRepository(db),
		attachments: repository.NewAttachmentRepository(db),
		users:       repository.NewUserRepository(db),
		notifier:    notifier,
		files:       files,
	}
}

type CreateTaskRequest struct {
	Title        string
	Description  string
	Status       constants.TaskStatus
	Priority     constants.TaskPriority
	StartDate    time.Time
	DueDate      time.Time
	AssignedToID *string
}

// UpdateTaskRequest enumerates the mutable fields explicitly. Nil
// means "leave unchanged"; there is no attribute-map assignment path.
type UpdateTaskRequest struct {
	Title         *string
	Description   *string
	Status        *constants.TaskStatus
	Priority      *constants.TaskPriority
	StartDate     *time.Time
	DueDate       *time.Time
	DelegatedToID *string
}

// taskSnapshot captures the diffable fields before an update is
// applied, so the edit fan-out reports pre-mutation values.
type taskSnapshot struct {
	Title       string
	Description string
	Status      constants.TaskStatus
	Priority    constants.TaskPriority
	DueDate     time.Time
}

func snapshotOf(task *model.Task) taskSnapshot {
	return taskSnapshot{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, creatorID string, req CreateTaskRequest) (*model.Task, error) {
	creator, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if req.Status == "" {
		req.Status = constants.StatusPending
	}
	if !req.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if req.Priority == "" {
		req.Priority = constants.PriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	// Without an explicit assignee the creator assigns to themselves.
	assignee := creator
	if req.AssignedToID != nil && *req.AssignedToID != "" {
		assignee, err = s.users.FindByID(ctx, *req.AssignedToID)
		if err != nil {
			return nil, mapUserErr(err)
		}
	}

	task := &model.Task{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		CreatedByID:  creator.ID,
		CreatedBy:    creator,
		AssignedToID: &assignee.ID,
		AssignedTo:   assignee,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	var emails []Email
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}

		emails, err = s.notifier.WithTx(tx).TaskCreated(ctx, task, creator)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Deliver(ctx, emails)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, actorID string, req UpdateTaskRequest) (*model.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	old := snapshotOf(task)

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, apperrors.ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
	}
	if req.DueDate != nil && !req.DueDate.Equal(old.DueDate) {
		task.DueDate = *req.DueDate
		// A new due date re-arms the sweep for this task.
		task.ReminderDueSoonSent = false
		task.ReminderExpiredSent = false
	}

	// A delegation sub-update is independent of and additive to the
	// field diff. Re-delegating to the current delegate is a no-op.
	var delegate *model.User
	if req.DelegatedToID != nil {
		if *req.DelegatedToID == "" {
			return nil, apperrors.ErrDelegateRequired
		}
		if task.DelegatedToID == nil || *task.DelegatedToID != *req.DelegatedToID {
			delegate, err = s.users.FindByID(ctx, *req.DelegatedToID)
			if err != nil {
				return nil, mapUserErr(err)
			}
		}
	}

	var emails []Email
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txNotifier := s.notifier.WithTx(tx)

		if delegate != nil {
			if _, err := s.delegations.WithTx(tx).Append(ctx, task.ID, actor.ID, delegate.ID); err != nil {
				return err
			}
			task.DelegatedToID = &delegate.ID
			task.DelegatedTo = delegate

			delegationEmails, err := txNotifier.TaskDelegated(ctx, task, actor, delegate)
			if err != nil {
				return err
			}
			emails = append(emails, delegationEmails...)
		}

		if err := s.tasks.WithTx(tx).Update(ctx, task); err != nil {
			return err
		}

		if old.Status != task.Status {
			if err := txNotifier.StatusChanged(ctx, task, old.Status); err != nil {
				return err
			}
		}

		if changes := diffChanges(old, task); len(changes) > 0 {
			emails = append(emails, txNotifier.FieldsEdited(ctx, task, actor, changes)...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Deliver(ctx, emails)
	return task, nil
}

// diffChanges renders a human-readable diff over the notifiable
// fields: title, description, status, priority and due date.
func diffChanges(old taskSnapshot, task *model.Task) []string {
	var changes []string

	if old.Title != task.Title {
		changes = append(changes, fmt.Sprintf("Title: %s -> %s", old.Title, task.Title))
	}
	if old.Description != task.Description {
		changes = append(changes, fmt.Sprintf("Description: %s -> %s", old.Description, task.Description))
	}
	if old.Status != task.Status {
		changes = append(changes, fmt.Sprintf("Status: %s -> %s", old.Status, task.Status))
	}
	if old.Priority != task.Priority {
		changes = append(changes, fmt.Sprintf("Priority: %s -> %s", old.Priority, task.Priority))
	}
	if !old.DueDate.Equal(task.DueDate) {
		changes = append(changes, fmt.Sprintf(
			"Due date: %s -> %s",
			old.DueDate.Format("2006-01-02"), task.DueDate.Format("2006-01-02"),
		))
	}

	return changes
}

// DelegateTask is the administrative delegation entry point. It is
// restricted to privileged actors and applies the same rule as a
// delegation sub-update: append history, set the delegate, fan out.
func (s *TaskService) DelegateTask(ctx context.Context, taskID, actorID, delegateID string) (*model.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if !actor.Role.Privileged() {
		return nil, apperrors.ErrForbidden
	}
	if delegateID == "" {
		return nil, apperrors.ErrDelegateRequired
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	// Same-user re-delegation: no history row, no notification.
	if task.DelegatedToID != nil && *task.DelegatedToID == delegateID {
		return task, nil
	}

	delegate, err := s.users.FindByID(ctx, delegateID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	var emails []Email
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.delegations.WithTx(tx).Append(ctx, task.ID, actor.ID, delegate.ID); err != nil {
			return err
		}

		task.DelegatedToID = &delegate.ID
		task.DelegatedTo = delegate
		if err := s.tasks.WithTx(tx).Update(ctx, task); err != nil {
			return err
		}

		emails, err = s.notifier.WithTx(tx).TaskDelegated(ctx, task, actor, delegate)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Deliver(ctx, emails)
	return task, nil
}

func (s *TaskService) AddComment(ctx context.Context, taskID, authorID, message string) (*model.Comment, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, mapUserErr(err)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	var comment *model.Comment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		comment, err = s.comments.WithTx(tx).Create(ctx, task.ID, authorID, message)
		if err != nil {
			return err
		}

		return s.notifier.WithTx(tx).CommentAdded(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *TaskService) AddAttachment(
	ctx context.Context,
	taskID, uploaderID, fileName string,
	size int64,
	content io.Reader,
) (*model.TaskAttachment, error) {
	if err := storage.ValidateFile(fileName, size); err != nil {
		return nil, err
	}

	uploader, err := s.users.FindByID(ctx, uploaderID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	storedPath, err := s.files.Save(fileName, content)
	if err != nil {
		return nil, err
	}

	attachment := &model.TaskAttachment{
		ID:           uuid.NewString(),
		TaskID:       task.ID,
		FileName:     fileName,
		StoredPath:   storedPath,
		SizeBytes:    size,
		UploadedByID: &uploader.ID,
		UploadedBy:   uploader,
		UploadedAt:   time.Now().UTC(),
	}

	var emails []Email
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attachments.WithTx(tx).Create(ctx, attachment); err != nil {
			return err
		}

		emails, err = s.notifier.WithTx(tx).AttachmentAdded(ctx, task, uploader, attachment)
		return err
	})
	if err != nil {
		// The row never landed; release the orphaned file.
		_ = s.files.Delete(storedPath)
		return nil, err
	}

	s.notifier.Deliver(ctx, emails)
	return attachment, nil
}

// DeleteAttachment removes the record and releases the stored file.
func (s *TaskService) DeleteAttachment(ctx context.Context, attachmentID string) error {
	attachment, err := s.attachments.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAttachmentNotFound
		}
		return err
	}

	if err := s.attachments.Delete(ctx, attachment.ID); err != nil {
		return err
	}

	return s.files.Delete(attachment.StoredPath)
}

// DeleteTask removes the task and its child records. Only the creator
// or a privileged user may delete; attachment files are released after
// the rows are gone.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, actorID string) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return mapUserErr(err)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return mapTaskErr(err)
	}
	if !actor.Role.Privileged() && actor.ID != task.CreatedByID {
		return apperrors.ErrForbidden
	}

	attachments, err := s.attachments.ListByTask(ctx, task.ID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&model.TaskDelegation{},
			&model.Comment{},
			&model.TaskAttachment{},
			&model.Notification{},
		} {
			if err := tx.WithContext(ctx).Where("task_id = ?", task.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return s.tasks.WithTx(tx).Delete(ctx, task.ID)
	})
	if err != nil {
		return err
	}

	for _, attachment := range attachments {
		_ = s.files.Delete(attachment.StoredPath)
	}
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.tasks.FindByIDWithChildren(ctx, id)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return s.tasks.ListForUser(ctx, user)
}

func (s *TaskService) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

func (s *TaskService) ListDelegations(ctx context.Context, taskID string) ([]model.TaskDelegation, error) {
	return s.delegations.ListByTask(ctx, taskID)
}

func mapTaskErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return err
}

func mapUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}
