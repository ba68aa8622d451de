package models

import (
	"time"

	"task-track-system.com/task-track-system/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `gorm:"not null" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	DueDate   time.Time `gorm:"not null;index" json:"due_date"`

	CreatedByID string `gorm:"size:36;not null;index" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	// AssignedTo is the admin responsible for the task.
	AssignedToID *string `gorm:"size:36;index" json:"assigned_to_id,omitempty"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	// DelegatedTo is the executing employee, set only when delegated.
	DelegatedToID *string `gorm:"size:36;index" json:"delegated_to_id,omitempty"`
	DelegatedTo   *User   `gorm:"foreignKey:DelegatedToID" json:"delegated_to,omitempty"`

	// Idempotency flags for the due-date sweep. Each branch of the
	// sweep fires at most once per task while its flag is false.
	ReminderDueSoonSent bool `gorm:"not null;default:false" json:"reminder_due_soon_sent"`
	ReminderExpiredSent bool `gorm:"not null;default:false" json:"reminder_expired_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Delegations   []TaskDelegation `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"delegations,omitempty"`
	Comments      []Comment        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Attachments   []TaskAttachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	Notifications []Notification   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// Participants returns the deduplicated set of users involved with the
// task: creator, assignee and delegate. Nil entries are skipped.
func (t *Task) Participants() []*User {
	seen := make(map[string]struct{}, 3)
	var users []*User
	for _, u := range []*User{t.CreatedBy, t.AssignedTo, t.DelegatedTo} {
		if u == nil {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		users = append(users, u)
	}
	return users
}
