package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationNew        NotificationType = "new"
	NotificationCreated    NotificationType = "created"
	NotificationDelegation NotificationType = "delegation"
	NotificationStatus     NotificationType = "status"
	NotificationComment    NotificationType = "comment"
	NotificationFile       NotificationType = "file"
	NotificationDue        NotificationType = "due"
	NotificationError      NotificationType = "error"
)

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// Privileged reports whether the role may perform administrative
// actions such as delegating tasks or managing users.
func (r Role) Privileged() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}
