package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	"task-track-system.com/task-track-system/internal/mailer"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

// Email is a pending outbound message produced by a fan-out. Emails
// are delivered after the triggering mutation commits, so a transport
// failure can never roll it back.
type Email struct {
	Subject   string
	Body      string
	Recipient *model.User
	Task      *model.Task

	// ErrorRecipient gets the in-app "error" notification if the send
	// fails. Defaults to the recipient when nil.
	ErrorRecipient *model.User
}

// Notifier is the fan-out engine: it expands one task event into
// per-recipient notification rows plus pending emails.
type Notifier struct {
	notifications *repository.NotificationRepository
	mailer        mailer.Mailer
}

func NewNotifier(db *gorm.DB, m mailer.Mailer) *Notifier {
	return &Notifier{
		notifications: repository.NewNotificationRepository(db),
		mailer:        m,
	}
}

// WithTx returns a Notifier whose notification rows join the given
// transaction.
func (n *Notifier) WithTx(tx *gorm.DB) *Notifier {
	return &Notifier{
		notifications: n.notifications.WithTx(tx),
		mailer:        n.mailer,
	}
}

// TaskCreated notifies the assignee of a new task and records a
// "created" notification for the creator. The creator never emails
// themselves: the assignee branch only fires for a distinct user.
func (n *Notifier) TaskCreated(ctx context.Context, task *model.Task, creator *model.User) ([]Email, error) {
	var emails []Email

	if task.AssignedTo != nil && task.AssignedTo.ID != creator.ID {
		msg := fmt.Sprintf("New task assigned: %s", task.Title)
		if _, err := n.notifications.Create(ctx, task.AssignedTo.ID, task.ID, constants.NotificationNew, msg); err != nil {
			return nil, err
		}

		if task.AssignedTo.Email != "" {
			emails = append(emails, Email{
				Subject: "New task assigned",
				Body: fmt.Sprintf(
					"Hello %s,\n\nYou were assigned a new task: %s\n\nCreated by: %s\nLog in to the system for details.",
					task.AssignedTo.Username, task.Title, creator.Username,
				),
				Recipient:      task.AssignedTo,
				Task:           task,
				ErrorRecipient: creator,
			})
		}
	}

	msg := fmt.Sprintf("You created the task: %s", task.Title)
	if _, err := n.notifications.Create(ctx, creator.ID, task.ID, constants.NotificationCreated, msg); err != nil {
		return nil, err
	}

	return emails, nil
}

// TaskDelegated notifies the new delegate and the delegating actor.
func (n *Notifier) TaskDelegated(ctx context.Context, task *model.Task, actor, delegate *model.User) ([]Email, error) {
	msg := fmt.Sprintf("The task '%s' was delegated by %s", task.Title, actor.Username)
	if _, err := n.notifications.Create(ctx, delegate.ID, task.ID, constants.NotificationDelegation, msg); err != nil {
		return nil, err
	}

	if actor.ID != delegate.ID {
		msg := fmt.Sprintf("You delegated the task '%s' to %s", task.Title, delegate.Username)
		if _, err := n.notifications.Create(ctx, actor.ID, task.ID, constants.NotificationDelegation, msg); err != nil {
			return nil, err
		}
	}

	var emails []Email
	if delegate.Email != "" {
		emails = append(emails, Email{
			Subject: "Task delegated",
			Body: fmt.Sprintf(
				"Hello %s,\n\nThe task '%s' was delegated to you.\n\nDelegated by: %s\n\nLog in to the system to see it.",
				delegate.Username, task.Title, actor.Username,
			),
			Recipient:      delegate,
			Task:           task,
			ErrorRecipient: actor,
		})
	}

	return emails, nil
}

// StatusChanged notifies every participant, the acting user included.
// Status changes are in-app only.
func (n *Notifier) StatusChanged(ctx context.Context, task *model.Task, oldStatus constants.TaskStatus) error {
	msg := fmt.Sprintf("The task '%s' changed status: %s -> %s", task.Title, oldStatus, task.Status)

	for _, user := range task.Participants() {
		if _, err := n.notifications.Create(ctx, user.ID, task.ID, constants.NotificationStatus, msg); err != nil {
			return err
		}
	}

	return nil
}

// FieldsEdited emails every participant with an address a diff of the
// changed fields. Field edits carry no in-app rows of their own.
func (n *Notifier) FieldsEdited(ctx context.Context, task *model.Task, actor *model.User, changes []string) []Email {
	var emails []Email

	body := ""
	for i, change := range changes {
		if i > 0 {
			body += "\n"
		}
		body += change
	}

	for _, user := range task.Participants() {
		if user.Email == "" {
			continue
		}
		emails = append(emails, Email{
			Subject: fmt.Sprintf("Task updated: %s", task.Title),
			Body: fmt.Sprintf(
				"Hello %s,\n\nThe task '%s' has been updated:\n\n%s\n\nLog in to the system for details.",
				user.Username, task.Title, body,
			),
			Recipient:      user,
			Task:           task,
			ErrorRecipient: actor,
		})
	}

	return emails
}

// CommentAdded notifies the assignee only, in-app only.
func (n *Notifier) CommentAdded(ctx context.Context, task *model.Task) error {
	if task.AssignedTo == nil {
		return nil
	}

	msg := fmt.Sprintf("New comment on: %s", task.Title)
	_, err := n.notifications.Create(ctx, task.AssignedTo.ID, task.ID, constants.NotificationComment, msg)
	return err
}

// AttachmentAdded notifies every participant and emails those with an
// address.
func (n *Notifier) AttachmentAdded(ctx context.Context, task *model.Task, uploader *model.User, attachment *model.TaskAttachment) ([]Email, error) {
	msg := fmt.Sprintf("%s added a file '%s' to the task: %s", uploader.Username, attachment.FileName, task.Title)

	var emails []Email
	for _, user := range task.Participants() {
		if _, err := n.notifications.Create(ctx, user.ID, task.ID, constants.NotificationFile, msg); err != nil {
			return nil, err
		}

		if user.Email == "" {
			continue
		}
		emails = append(emails, Email{
			Subject: fmt.Sprintf("New attachment: %s", task.Title),
			Body: fmt.Sprintf(
				"Hello %s,\n\n%s added a new file to the task:\nTitle: %s\nFile: %s\n\nLog in to the system to see it.",
				user.Username, uploader.Username, task.Title, attachment.FileName,
			),
			Recipient:      user,
			Task:           task,
			ErrorRecipient: uploader,
		})
	}

	return emails, nil
}

// TaskOverdue fans out the overdue condition to every participant
// with role-aware phrasing.
func (n *Notifier) TaskOverdue(ctx context.Context, task *model.Task) ([]Email, error) {
	return n.dueFanOut(ctx, task, true)
}

// TaskDueToday fans out the due-today condition to every participant.
func (n *Notifier) TaskDueToday(ctx context.Context, task *model.Task) ([]Email, error) {
	return n.dueFanOut(ctx, task, false)
}

func (n *Notifier) dueFanOut(ctx context.Context, task *model.Task, overdue bool) ([]Email, error) {
	subject := fmt.Sprintf("Task due today: %s", task.Title)
	if overdue {
		subject = fmt.Sprintf("Task overdue: %s", task.Title)
	}

	var emails []Email
	for _, user := range task.Participants() {
		msg := dueMessage(task, user, overdue)

		if _, err := n.notifications.Create(ctx, user.ID, task.ID, constants.NotificationDue, msg); err != nil {
			return nil, err
		}

		if user.Email == "" {
			continue
		}
		emails = append(emails, Email{
			Subject: subject,
			Body: fmt.Sprintf(
				"Hello %s,\n\n%s\nLog in to the system for details.",
				user.Username, msg,
			),
			Recipient: user,
			Task:      task,
			// Sweep failures are reported to the affected user.
			ErrorRecipient: user,
		})
	}

	return emails, nil
}

func dueMessage(task *model.Task, user *model.User, overdue bool) string {
	suffix := "is due today."
	if overdue {
		suffix = "has expired."
	}

	switch {
	case user.ID == task.CreatedByID:
		assignee := "N/A"
		if task.AssignedTo != nil {
			assignee = task.AssignedTo.Username
		}
		return fmt.Sprintf("The task '%s' you created for %s %s", task.Title, assignee, suffix)
	case task.AssignedToID != nil && user.ID == *task.AssignedToID:
		return fmt.Sprintf("You have the task '%s' which %s", task.Title, suffix)
	case task.DelegatedToID != nil && user.ID == *task.DelegatedToID:
		return fmt.Sprintf("The task '%s' delegated to you %s", task.Title, suffix)
	}
	return fmt.Sprintf("The task '%s' %s", task.Title, suffix)
}

// Deliver attempts every pending email. A failed send is logged and
// recorded as an "error" notification; it never surfaces to the
// caller.
func (n *Notifier) Deliver(ctx context.Context, emails []Email) {
	for _, email := range emails {
		if email.Recipient == nil || email.Recipient.Email == "" {
			continue
		}

		if err := n.mailer.Send(email.Subject, email.Body, email.Recipient.Email); err != nil {
			log.Printf("could not send email to %s: %v", email.Recipient.Email, err)

			errorRecipient := email.ErrorRecipient
			if errorRecipient == nil {
				errorRecipient = email.Recipient
			}

			msg := fmt.Sprintf("Could not send email to %s", email.Recipient.Username)
			if _, err := n.notifications.Create(ctx, errorRecipient.ID, email.Task.ID, constants.NotificationError, msg); err != nil {
				log.Printf("failed to record email error notification: %v", err)
			}
		}
	}
}
