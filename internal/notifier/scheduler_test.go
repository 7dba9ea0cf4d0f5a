package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curaious/taskhive/internal/services/task"
)

type fakeTaskSource struct {
	tasks []task.DueTask
	from  time.Time
	to    time.Time
	err   error
}

func (f *fakeTaskSource) DueWithin(_ context.Context, from, to time.Time) ([]task.DueTask, error) {
	f.from = from
	f.to = to
	if f.err != nil {
		return nil, f.err
	}

	out := []task.DueTask{}
	for _, t := range f.tasks {
		if !t.DueDate.Before(from) && t.DueDate.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent   []sentMail
	failTo string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if to == f.failTo {
		return errors.New("relay refused")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func dueTask(title, ownerName, ownerEmail string, due time.Time) task.DueTask {
	return task.DueTask{
		Task: task.Task{
			ID:          uuid.New(),
			Title:       title,
			Description: "description of " + title,
			DueDate:     task.Date{Time: due},
		},
		OwnerName:  ownerName,
		OwnerEmail: ownerEmail,
	}
}

func TestRunOnceSweepsNext24Hours(t *testing.T) {
	now := time.Now()
	source := &fakeTaskSource{tasks: []task.DueTask{
		dueTask("soon", "alice", "alice@example.com", now.Add(2*time.Hour)),
		dueTask("later", "bob", "bob@example.com", now.Add(30*time.Hour)),
	}}
	mailer := &fakeMailer{}

	s, err := NewScheduler("0 11 * * *", source, mailer)
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))

	assert.WithinDuration(t, now.Add(24*time.Hour), source.to, time.Minute)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
	assert.Equal(t, reminderSubject, mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Hello alice")
	assert.Contains(t, mailer.sent[0].body, `"description of soon"`)
}

// One bounced address must not stop the rest of the sweep.
func TestRunOnceIsolatesDeliveryFailures(t *testing.T) {
	now := time.Now()
	source := &fakeTaskSource{tasks: []task.DueTask{
		dueTask("first", "alice", "alice@example.com", now.Add(time.Hour)),
		dueTask("second", "broken", "broken@example.com", now.Add(2*time.Hour)),
		dueTask("third", "carol", "carol@example.com", now.Add(3*time.Hour)),
	}}
	mailer := &fakeMailer{failTo: "broken@example.com"}

	s, err := NewScheduler("0 11 * * *", source, mailer)
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
	assert.Equal(t, "carol@example.com", mailer.sent[1].to)
}

func TestRunOnceReturnsSourceError(t *testing.T) {
	source := &fakeTaskSource{err: errors.New("db down")}
	s, err := NewScheduler("0 11 * * *", source, &fakeMailer{})
	require.NoError(t, err)

	assert.Error(t, s.RunOnce(context.Background()))
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler("not a cron spec", &fakeTaskSource{}, &fakeMailer{})
	assert.Error(t, err)
}
