package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, task_title, task_description, category, due_date, progress, is_completed, is_important, user_id, created_at, updated_at`

// TaskRepo persists tasks. Every read and write that targets a single task is
// scoped by (id, user_id), so a task belonging to another user is
// indistinguishable from one that does not exist.
type TaskRepo struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, owner uuid.UUID, p TaskPayload) (*Task, error) {
	var t Task
	err := r.db.GetContext(ctx, &t, `
		INSERT INTO tasks (task_title, task_description, category, due_date, progress, is_completed, is_important, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		p.Title, p.Description, p.Category, p.DueDate, p.Progress, p.IsCompleted, p.IsImportant, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) FindByOwner(ctx context.Context, owner uuid.UUID) ([]Task, error) {
	tasks := []Task{}
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.GetContext(ctx, &t, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, owner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &t, nil
}

// Update replaces every mutable column of the task with the payload values.
func (r *TaskRepo) Update(ctx context.Context, id, owner uuid.UUID, p TaskPayload) (*Task, error) {
	var t Task
	err := r.db.GetContext(ctx, &t, `
		UPDATE tasks
		SET task_title = $1, task_description = $2, category = $3, due_date = $4,
		    progress = $5, is_completed = $6, is_important = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING `+taskColumns,
		p.Title, p.Description, p.Category, p.DueDate, p.Progress, p.IsCompleted, p.IsImportant, id, owner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id, owner uuid.UUID, isCompleted, isImportant bool) (*Task, error) {
	var t Task
	err := r.db.GetContext(ctx, &t, `
		UPDATE tasks
		SET is_completed = $1, is_important = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING `+taskColumns,
		isCompleted, isImportant, id, owner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id, owner uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepo) FindByOwnerAndCompletion(ctx context.Context, owner uuid.UUID, completed bool) ([]Task, error) {
	tasks := []Task{}
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND is_completed = $2 ORDER BY created_at DESC`,
		owner, completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter tasks by completion: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) FindByOwnerAndImportance(ctx context.Context, owner uuid.UUID, important bool) ([]Task, error) {
	tasks := []Task{}
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND is_important = $2 ORDER BY created_at DESC`,
		owner, important,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter tasks by importance: %w", err)
	}

	return tasks, nil
}

// SearchByTitle matches an infix of the title, case-sensitively, within the
// owner's tasks only.
func (r *TaskRepo) SearchByTitle(ctx context.Context, owner uuid.UUID, title string) ([]Task, error) {
	tasks := []Task{}
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND task_title LIKE '%' || $2 || '%' ORDER BY created_at DESC`,
		owner, title,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	return tasks, nil
}

// DueBetween returns tasks whose due date falls in [from, to), joined with
// the owner's name and email for reminder delivery.
func (r *TaskRepo) DueBetween(ctx context.Context, from, to time.Time) ([]DueTask, error) {
	due := []DueTask{}
	err := r.db.SelectContext(ctx, &due, `
		SELECT t.id, t.task_title, t.task_description, t.category, t.due_date, t.progress,
		       t.is_completed, t.is_important, t.user_id, t.created_at, t.updated_at,
		       u.name AS owner_name, u.email AS owner_email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.due_date >= $1 AND t.due_date < $2`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}

	return due, nil
}
