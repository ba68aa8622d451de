package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-track-system.com/task-track-system/internal/constants"
	apperrors "task-track-system.com/task-track-system/internal/errors"
	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
	"task-track-system.com/task-track-system/internal/storage"
)

// mockMailer records outbound emails instead of talking SMTP. Setting
// fail makes every send error, to exercise the error fan-out.
type mockMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

type sentEmail struct {
	subject   string
	body      string
	recipient string
}

func (m *mockMailer) Send(subject, body, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentEmail{subject: subject, body: body, recipient: recipient})
	return nil
}

func (m *mockMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, e := range m.sent {
		out = append(out, e.recipient)
	}
	return out
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.TaskDelegation{},
		&model.Comment{},
		&model.TaskAttachment{},
		&model.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func setupTaskService(t *testing.T) (*gorm.DB, *TaskService, *mockMailer) {
	db := setupTestDB(t)
	m := &mockMailer{}

	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	return db, NewTaskService(db, NewNotifier(db, m), files), m
}

func createUser(t *testing.T, db *gorm.DB, username string, role constants.Role) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func countNotifications(t *testing.T, db *gorm.DB, userID string, notifType constants.NotificationType) int64 {
	t.Helper()

	var count int64
	err := db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, notifType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}

func TestCreateTask_DefaultsAssigneeToCreator(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-alice", constants.RoleAdmin)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:     "Quarterly report",
		StartDate: time.Now().UTC(),
		DueDate:   time.Now().UTC().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.AssignedToID == nil || *task.AssignedToID != creator.ID {
		t.Error("expected task to be assigned to its creator")
	}
	if task.Status != constants.StatusPending {
		t.Errorf("expected status %s, got %s", constants.StatusPending, task.Status)
	}
	if task.Priority != constants.PriorityMedium {
		t.Errorf("expected priority %s, got %s", constants.PriorityMedium, task.Priority)
	}

	// Self-assigned creation produces exactly one "created" row and no
	// "new task" row, and never emails the creator.
	if got := countNotifications(t, db, creator.ID, constants.NotificationCreated); got != 1 {
		t.Errorf("expected 1 created notification, got %d", got)
	}
	if got := countNotifications(t, db, creator.ID, constants.NotificationNew); got != 0 {
		t.Errorf("expected 0 new-task notifications, got %d", got)
	}
	if m.count() != 0 {
		t.Errorf("expected no emails, got %d", m.count())
	}
}

func TestCreateTask_NotifiesDistinctAssignee(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-bob", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-carol", constants.RoleAdmin)

	ctx := context.Background()
	_, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Prepare audit",
		StartDate:    time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 3),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if got := countNotifications(t, db, assignee.ID, constants.NotificationNew); got != 1 {
		t.Errorf("expected 1 new-task notification for assignee, got %d", got)
	}
	if got := countNotifications(t, db, creator.ID, constants.NotificationCreated); got != 1 {
		t.Errorf("expected 1 created notification for creator, got %d", got)
	}

	recipients := m.recipients()
	if len(recipients) != 1 || recipients[0] != assignee.Email {
		t.Errorf("expected one email to %s, got %v", assignee.Email, recipients)
	}
}

func TestCreateTask_RejectsInvalidStatus(t *testing.T) {
	db, service, _ := setupTaskService(t)
	creator := createUser(t, db, "admin-dave", constants.RoleAdmin)

	_, err := service.CreateTask(context.Background(), creator.ID, CreateTaskRequest{
		Title:   "Bad status",
		Status:  "archived",
		DueDate: time.Now().UTC(),
	})
	if !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateTask_StatusChangeFansOutToParticipants(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-erin", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-frank", constants.RoleAdmin)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Migrate database",
		StartDate:    time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 5),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	newStatus := constants.StatusInProgress
	_, err = service.UpdateTask(ctx, task.ID, assignee.ID, UpdateTaskRequest{Status: &newStatus})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	for _, user := range []*model.User{creator, assignee} {
		if got := countNotifications(t, db, user.ID, constants.NotificationStatus); got != 1 {
			t.Errorf("expected 1 status notification for %s, got %d", user.Username, got)
		}
	}

	// The edit diff also goes out by email to every participant.
	recipients := m.recipients()
	if len(recipients) < 2 {
		t.Fatalf("expected edit emails to both participants, got %v", recipients)
	}
}

func TestUpdateTask_DueDateChangeResetsReminderFlags(t *testing.T) {
	db, service, _ := setupTaskService(t)
	creator := createUser(t, db, "admin-grace", constants.RoleAdmin)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:     "Renew certificate",
		StartDate: time.Now().UTC(),
		DueDate:   time.Now().UTC().AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	err = db.Model(&model.Task{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"reminder_due_soon_sent": true,
			"reminder_expired_sent":  true,
		}).Error
	if err != nil {
		t.Fatalf("failed to set reminder flags: %v", err)
	}

	newDue := time.Now().UTC().AddDate(0, 0, 14)
	_, err = service.UpdateTask(ctx, task.ID, creator.ID, UpdateTaskRequest{DueDate: &newDue})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	var reloaded model.Task
	if err := db.First(&reloaded, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if reloaded.ReminderDueSoonSent || reloaded.ReminderExpiredSent {
		t.Error("expected reminder flags to be reset after due date change")
	}
}

func TestDelegateTask_AppendsHistoryAndNotifies(t *testing.T) {
	db, service, m := setupTaskService(t)
	admin := createUser(t, db, "admin-henry", constants.RoleAdmin)
	employee := createUser(t, db, "employee-iris", constants.RoleEmployee)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, admin.ID, CreateTaskRequest{
		Title:     "Install access points",
		StartDate: time.Now().UTC(),
		DueDate:   time.Now().UTC().AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	delegated, err := service.DelegateTask(ctx, task.ID, admin.ID, employee.ID)
	if err != nil {
		t.Fatalf("failed to delegate task: %v", err)
	}
	if delegated.DelegatedToID == nil || *delegated.DelegatedToID != employee.ID {
		t.Error("expected delegated_to to point at the employee")
	}

	delegations := repository.NewDelegationRepository(db)
	count, err := delegations.CountByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to count delegations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 delegation row, got %d", count)
	}

	if got := countNotifications(t, db, employee.ID, constants.NotificationDelegation); got != 1 {
		t.Errorf("expected 1 delegation notification for delegate, got %d", got)
	}
	if got := countNotifications(t, db, admin.ID, constants.NotificationDelegation); got != 1 {
		t.Errorf("expected 1 delegation notification for actor, got %d", got)
	}

	recipients := m.recipients()
	if len(recipients) != 1 || recipients[0] != employee.Email {
		t.Errorf("expected one email to %s, got %v", employee.Email, recipients)
	}

	// Re-delegating to the current delegate is a no-op: no new history
	// row, no new notifications.
	if _, err := service.DelegateTask(ctx, task.ID, admin.ID, employee.ID); err != nil {
		t.Fatalf("re-delegation failed: %v", err)
	}
	count, _ = delegations.CountByTask(ctx, task.ID)
	if count != 1 {
		t.Errorf("expected delegation history to stay at 1, got %d", count)
	}
	if got := countNotifications(t, db, employee.ID, constants.NotificationDelegation); got != 1 {
		t.Errorf("expected no new delegation notification, got %d", got)
	}
}

func TestDelegateTask_RequiresPrivilegedActor(t *testing.T) {
	db, service, _ := setupTaskService(t)
	admin := createUser(t, db, "admin-jack", constants.RoleAdmin)
	employee := createUser(t, db, "employee-kate", constants.RoleEmployee)
	other := createUser(t, db, "employee-liam", constants.RoleEmployee)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, admin.ID, CreateTaskRequest{
		Title:     "Replace printer toner",
		StartDate: time.Now().UTC(),
		DueDate:   time.Now().UTC().AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	_, err = service.DelegateTask(ctx, task.ID, employee.ID, other.ID)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	_, err = service.DelegateTask(ctx, task.ID, admin.ID, "")
	if !errors.Is(err, apperrors.ErrDelegateRequired) {
		t.Errorf("expected ErrDelegateRequired, got %v", err)
	}
}

func TestAddComment_NotifiesAssignee(t *testing.T) {
	db, service, _ := setupTaskService(t)
	creator := createUser(t, db, "admin-mona", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-ned", constants.RoleAdmin)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Review contract",
		StartDate:    time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 4),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	comment, err := service.AddComment(ctx, task.ID, creator.ID, "first draft attached")
	if err != nil {
		t.Fatalf("failed to add comment: %v", err)
	}
	if comment.ID == "" {
		t.Error("expected comment ID to be set")
	}

	if got := countNotifications(t, db, assignee.ID, constants.NotificationComment); got != 1 {
		t.Errorf("expected 1 comment notification for assignee, got %d", got)
	}
}

func TestAddAttachment_ValidatesAndFansOut(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-olga", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-pete", constants.RoleAdmin)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Collect invoices",
		StartDate:    time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 6),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	_, err = service.AddAttachment(ctx, task.ID, creator.ID, "setup.exe", 100, strings.NewReader("MZ"))
	if !errors.Is(err, apperrors.ErrFileTypeNotAllowed) {
		t.Errorf("expected ErrFileTypeNotAllowed, got %v", err)
	}

	_, err = service.AddAttachment(ctx, task.ID, creator.ID, "big.pdf", storage.MaxFileSize+1, strings.NewReader(""))
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}

	attachment, err := service.AddAttachment(ctx, task.ID, creator.ID, "invoices.pdf", 4, strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("failed to add attachment: %v", err)
	}
	if attachment.StoredPath == "" {
		t.Error("expected stored path to be set")
	}

	for _, user := range []*model.User{creator, assignee} {
		if got := countNotifications(t, db, user.ID, constants.NotificationFile); got != 1 {
			t.Errorf("expected 1 file notification for %s, got %d", user.Username, got)
		}
	}
	if m.count() != 2 {
		t.Errorf("expected 2 attachment emails, got %d", m.count())
	}
}

func TestDeliver_RecordsErrorNotification(t *testing.T) {
	db, service, m := setupTaskService(t)
	m.fail = true

	creator := createUser(t, db, "admin-quinn", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-rosa", constants.RoleAdmin)

	ctx := context.Background()
	_, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Ship release",
		StartDate:    time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 1),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("create must survive a mailer outage: %v", err)
	}

	// The assignee email failed; the creator is the error recipient.
	if got := countNotifications(t, db, creator.ID, constants.NotificationError); got != 1 {
		t.Errorf("expected 1 error notification for creator, got %d", got)
	}
}

func TestSweep_FiresOncePerTask(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-sara", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-tina", constants.RoleAdmin)

	ctx := context.Background()
	now := time.Now().UTC()

	overdueTask, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Expired filing",
		StartDate:    now.AddDate(0, 0, -5),
		DueDate:      now.AddDate(0, 0, -2),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create overdue task: %v", err)
	}

	dueTask, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:     "Same-day filing",
		StartDate: now,
		DueDate:   now,
	})
	if err != nil {
		t.Fatalf("failed to create due-today task: %v", err)
	}

	sweeper := NewSweeper(repository.NewTaskRepository(db), NewNotifier(db, m), time.UTC)

	processed, err := sweeper.RunDueDateSweep(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if processed != 2 {
		t.Errorf("expected 2 tasks processed, got %d", processed)
	}

	// Overdue fan-out reaches creator and assignee; the due-today task
	// is self-assigned so its creator gets one row.
	if got := countNotifications(t, db, assignee.ID, constants.NotificationDue); got != 1 {
		t.Errorf("expected 1 due notification for assignee, got %d", got)
	}
	if got := countNotifications(t, db, creator.ID, constants.NotificationDue); got != 2 {
		t.Errorf("expected 2 due notifications for creator, got %d", got)
	}

	var reloaded model.Task
	if err := db.First(&reloaded, "id = ?", overdueTask.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if !reloaded.ReminderExpiredSent {
		t.Error("expected expired reminder flag to be set")
	}
	reloaded = model.Task{}
	if err := db.First(&reloaded, "id = ?", dueTask.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if !reloaded.ReminderDueSoonSent {
		t.Error("expected due-soon reminder flag to be set")
	}

	// Second run is a no-op.
	processed, err = sweeper.RunDueDateSweep(ctx)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if processed != 0 {
		t.Errorf("expected 0 tasks on second sweep, got %d", processed)
	}
	if got := countNotifications(t, db, creator.ID, constants.NotificationDue); got != 2 {
		t.Errorf("expected no new due notifications on second sweep, got %d", got)
	}
}

func TestSweep_PhrasesByRole(t *testing.T) {
	db, service, m := setupTaskService(t)
	creator := createUser(t, db, "admin-uma", constants.RoleAdmin)
	assignee := createUser(t, db, "admin-vera", constants.RoleAdmin)

	ctx := context.Background()
	now := time.Now().UTC()

	_, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:        "Late delivery",
		StartDate:    now.AddDate(0, 0, -10),
		DueDate:      now.AddDate(0, 0, -3),
		AssignedToID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	sweeper := NewSweeper(repository.NewTaskRepository(db), NewNotifier(db, m), time.UTC)
	if _, err := sweeper.RunDueDateSweep(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	var rows []model.Notification
	err = db.Where("type = ?", constants.NotificationDue).Find(&rows).Error
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}

	byUser := make(map[string]string, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row.Message
	}

	if msg := byUser[assignee.ID]; !strings.HasPrefix(msg, "You have the task") {
		t.Errorf("unexpected assignee phrasing: %q", msg)
	}
	if msg := byUser[creator.ID]; !strings.Contains(msg, "you created for "+assignee.Username) {
		t.Errorf("unexpected creator phrasing: %q", msg)
	}
}

func TestUserService_FirstUserBecomesSuperAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))

	ctx := context.Background()
	first, err := service.CreateUser(ctx, CreateUserRequest{
		Username: "founder",
		Email:    "founder@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("failed to create first user: %v", err)
	}
	if first.Role != constants.RoleSuperAdmin {
		t.Errorf("expected first user to be %s, got %s", constants.RoleSuperAdmin, first.Role)
	}

	second, err := service.CreateUser(ctx, CreateUserRequest{
		Username: "newhire",
		Email:    "newhire@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("failed to create second user: %v", err)
	}
	if second.Role != constants.RoleEmployee {
		t.Errorf("expected second user to be %s, got %s", constants.RoleEmployee, second.Role)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))

	ctx := context.Background()
	user, err := service.CreateUser(ctx, CreateUserRequest{
		Username: "login-user",
		Email:    "Login-User@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Email lookup is case-insensitive through normalization.
	got, err := service.Authenticate(ctx, "login-user@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("expected successful login: %v", err)
	}
	if got.ID != user.ID {
		t.Error("authenticated the wrong user")
	}

	if _, err := service.Authenticate(ctx, "login-user@example.com", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := service.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	err = db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error
	if err != nil {
		t.Fatalf("failed to disable user: %v", err)
	}
	if _, err := service.Authenticate(ctx, "login-user@example.com", "correct-horse"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	db := setupTestDB(t)
	notifications := repository.NewNotificationRepository(db)
	service := NewNotificationService(notifications)

	owner := createUser(t, db, "owner-walt", constants.RoleEmployee)
	stranger := createUser(t, db, "stranger-xena", constants.RoleEmployee)

	ctx := context.Background()
	row, err := notifications.Create(ctx, owner.ID, uuid.NewString(), constants.NotificationNew, "New task assigned: demo")
	if err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	// Marking someone else's notification reads as not found.
	if err := service.MarkRead(ctx, row.ID, stranger.ID); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound, got %v", err)
	}

	if err := service.MarkRead(ctx, row.ID, owner.ID); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	count, err := service.UnreadCount(ctx, owner.ID)
	if err != nil {
		t.Fatalf("failed to count unread: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	notifications := repository.NewNotificationRepository(db)
	service := NewNotificationService(notifications)

	owner := createUser(t, db, "owner-yuri", constants.RoleEmployee)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := notifications.Create(ctx, owner.ID, uuid.NewString(), constants.NotificationStatus, "status change")
		if err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
	}

	touched, err := service.MarkAllRead(ctx, owner.ID)
	if err != nil {
		t.Fatalf("failed to mark all read: %v", err)
	}
	if touched != 3 {
		t.Errorf("expected 3 rows touched, got %d", touched)
	}

	count, _ := service.UnreadCount(ctx, owner.ID)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}

func TestDeleteTask_RemovesChildren(t *testing.T) {
	db, service, _ := setupTaskService(t)
	creator := createUser(t, db, "admin-finn", constants.RoleAdmin)
	employee := createUser(t, db, "employee-gina", constants.RoleEmployee)

	ctx := context.Background()
	task, err := service.CreateTask(ctx, creator.ID, CreateTaskRequest{
		Title:     "Temporary task",
		StartDate: time.Now().UTC(),
		DueDate:   time.Now().UTC().AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := service.AddComment(ctx, task.ID, creator.ID, "to be removed"); err != nil {
		t.Fatalf("failed to add comment: %v", err)
	}

	if err := service.DeleteTask(ctx, task.ID, employee.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-creator employee, got %v", err)
	}

	if err := service.DeleteTask(ctx, task.ID, creator.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	if _, err := service.GetTask(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}

	var comments int64
	if err := db.Model(&model.Comment{}).Where("task_id = ?", task.ID).Count(&comments).Error; err != nil {
		t.Fatalf("failed to count comments: %v", err)
	}
	if comments != 0 {
		t.Errorf("expected comments to be removed with the task, got %d", comments)
	}

	var notifications int64
	if err := db.Model(&model.Notification{}).Where("task_id = ?", task.ID).Count(&notifications).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	if notifications != 0 {
		t.Errorf("expected notifications to be removed with the task, got %d", notifications)
	}
}

func TestListTasks_ScopesByRole(t *testing.T) {
	db, service, _ := setupTaskService(t)
	admin := createUser(t, db, "admin-zoe", constants.RoleAdmin)
	employee := createUser(t, db, "employee-abel", constants.RoleEmployee)

	ctx := context.Background()
	now := time.Now().UTC()

	mine, err := service.CreateTask(ctx, admin.ID, CreateTaskRequest{
		Title:     "Admin-only task",
		StartDate: now,
		DueDate:   now.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	delegatedTask, err := service.CreateTask(ctx, admin.ID, CreateTaskRequest{
		Title:     "Handed off task",
		StartDate: now,
		DueDate:   now.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := service.DelegateTask(ctx, delegatedTask.ID, admin.ID, employee.ID); err != nil {
		t.Fatalf("failed to delegate: %v", err)
	}

	adminTasks, err := service.ListTasks(ctx, admin.ID)
	if err != nil {
		t.Fatalf("failed to list admin tasks: %v", err)
	}
	if len(adminTasks) != 2 {
		t.Errorf("expected admin to see 2 tasks, got %d", len(adminTasks))
	}

	employeeTasks, err := service.ListTasks(ctx, employee.ID)
	if err != nil {
		t.Fatalf("failed to list employee tasks: %v", err)
	}
	if len(employeeTasks) != 1 {
		t.Fatalf("expected employee to see 1 task, got %d", len(employeeTasks))
	}
	if employeeTasks[0].ID == mine.ID {
		t.Error("employee must not see the admin-only task")
	}
}
