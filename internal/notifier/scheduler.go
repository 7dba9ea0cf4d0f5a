package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/curaious/taskhive/internal/services/task"
)

const reminderSubject = "Task Reminder: Upcoming Deadline"

// taskSource yields the tasks due inside a window, with owner contact details.
type taskSource interface {
	DueWithin(ctx context.Context, from, to time.Time) ([]task.DueTask, error)
}

// Scheduler runs the due-soon reminder sweep on a cron schedule. Each sweep
// covers the next 24 hours from the moment it fires.
type Scheduler struct {
	cron   *cron.Cron
	tasks  taskSource
	mailer Mailer
}

func NewScheduler(spec string, tasks taskSource, mailer Mailer) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		tasks:  tasks,
		mailer: mailer,
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			slog.Error("Reminder sweep failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Reminder scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce performs a single sweep: every task due in [now, now+24h) gets one
// reminder email. A failed delivery is logged and does not stop the sweep.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := time.Now()
	due, err := s.tasks.DueWithin(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to load due tasks: %w", err)
	}

	slog.Info("Reminder sweep", slog.Int("due_tasks", len(due)))

	for _, t := range due {
		body := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder that your task \"%s\" is due on %s. Please make sure to complete it on time.\n\nBest regards,\nTaskHive",
			t.OwnerName, t.Description, t.DueDate.Format("2006-01-02"),
		)
		if err := s.mailer.Send(t.OwnerEmail, reminderSubject, body); err != nil {
			slog.Error("Failed to send reminder",
				slog.String("task_id", t.ID.String()),
				slog.String("to", t.OwnerEmail),
				slog.Any("error", err))
			continue
		}
	}

	return nil
}
