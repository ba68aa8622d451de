package services

import (
	"context"
	"time"

	repository "task-track-system.com/task-track-system/internal/repositories"
)

// Sweeper scans for overdue and due-today tasks. The reminder flags
// make each branch fire at most once per task, so repeated runs are
// idempotent.
type Sweeper struct {
	tasks    *repository.TaskRepository
	notifier *Notifier
	location *time.Location
}

func NewSweeper(tasks *repository.TaskRepository, notifier *Notifier, location *time.Location) *Sweeper {
	if location == nil {
		location = time.Local
	}
	return &Sweeper{
		tasks:    tasks,
		notifier: notifier,
		location: location,
	}
}

// RunDueDateSweep executes one sweep and returns the number of tasks
// processed, for observability only. The caller schedules it.
func (s *Sweeper) RunDueDateSweep(ctx context.Context) (int, error) {
	// "Today" is the configured local calendar date, never UTC.
	now := time.Now().In(s.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	nextDayStart := dayStart.AddDate(0, 0, 1)

	total := 0

	overdue, err := s.tasks.ListOverdue(ctx, dayStart)
	if err != nil {
		return total, err
	}
	for i := range overdue {
		task := &overdue[i]

		emails, err := s.notifier.TaskOverdue(ctx, task)
		if err != nil {
			return total, err
		}
		if err := s.tasks.MarkExpiredReminderSent(ctx, task.ID); err != nil {
			return total, err
		}

		s.notifier.Deliver(ctx, emails)
		total++
	}

	dueToday, err := s.tasks.ListDueOn(ctx, dayStart, nextDayStart)
	if err != nil {
		return total, err
	}
	for i := range dueToday {
		task := &dueToday[i]

		emails, err := s.notifier.TaskDueToday(ctx, task)
		if err != nil {
			return total, err
		}
		if err := s.tasks.MarkDueSoonReminderSent(ctx, task.ID); err != nil {
			return total, err
		}

		s.notifier.Deliver(ctx, emails)
		total++
	}

	return total, nil
}
