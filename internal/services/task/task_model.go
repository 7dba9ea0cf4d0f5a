package task

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/curaious/taskhive/internal/services/user"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time component. It serializes as
// "YYYY-MM-DD" on the wire and maps to a DATE column.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Task is the persisted task row. The owning user is referenced by id only;
// responses that need owner details use TaskResponse instead.
type Task struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"task_title" json:"taskTitle"`
	Description string    `db:"task_description" json:"taskDescription"`
	Category    string    `db:"category" json:"category"`
	DueDate     Date      `db:"due_date" json:"dueDate"`
	Progress    int       `db:"progress" json:"progress"`
	IsCompleted bool      `db:"is_completed" json:"isCompleted"`
	IsImportant bool      `db:"is_important" json:"isImportant"`
	UserID      uuid.UUID `db:"user_id" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// TaskPayload is the client-supplied shape for create and full replace.
type TaskPayload struct {
	Title       string `json:"taskTitle"`
	Description string `json:"taskDescription"`
	Category    string `json:"category"`
	DueDate     Date   `json:"dueDate"`
	Progress    int    `json:"progress"`
	IsCompleted bool   `json:"isCompleted"`
	IsImportant bool   `json:"isImportant"`
}

// StatusPatch carries the two toggleable flags; a nil field means the flag is
// left untouched.
type StatusPatch struct {
	IsCompleted *bool `json:"isCompleted"`
	IsImportant *bool `json:"isImportant"`
}

// TaskResponse is a task together with its owner's public projection.
type TaskResponse struct {
	Task
	Owner user.PublicUser `json:"user"`
}

// DueTask pairs a task with enough owner detail to address a reminder email.
type DueTask struct {
	Task
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
}
