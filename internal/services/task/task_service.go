package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/curaious/taskhive/internal/services/user"
)

// taskStore is the persistence contract the task service depends on.
// *TaskRepo satisfies it.
type taskStore interface {
	Create(ctx context.Context, owner uuid.UUID, p TaskPayload) (*Task, error)
	FindByOwner(ctx context.Context, owner uuid.UUID) ([]Task, error)
	FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*Task, error)
	Update(ctx context.Context, id, owner uuid.UUID, p TaskPayload) (*Task, error)
	UpdateStatus(ctx context.Context, id, owner uuid.UUID, isCompleted, isImportant bool) (*Task, error)
	Delete(ctx context.Context, id, owner uuid.UUID) error
	FindByOwnerAndCompletion(ctx context.Context, owner uuid.UUID, completed bool) ([]Task, error)
	FindByOwnerAndImportance(ctx context.Context, owner uuid.UUID, important bool) ([]Task, error)
	SearchByTitle(ctx context.Context, owner uuid.UUID, title string) ([]Task, error)
	DueBetween(ctx context.Context, from, to time.Time) ([]DueTask, error)
}

// userDirectory resolves an authenticated principal to its user record.
type userDirectory interface {
	LoadByLoginIdentifier(ctx context.Context, email string) (*user.User, error)
}

// TaskService implements the ownership-scoped task operations. Every call
// takes the caller's principal (the token subject) and resolves it to the
// owning user before touching the store, so callers can never reach tasks
// they do not own.
type TaskService struct {
	store taskStore
	users userDirectory
}

func NewTaskService(store taskStore, users userDirectory) *TaskService {
	return &TaskService{store: store, users: users}
}

func (s *TaskService) owner(ctx context.Context, principal string) (*user.User, error) {
	u, err := s.users.LoadByLoginIdentifier(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}

	return u, nil
}

func (s *TaskService) Create(ctx context.Context, principal string, p TaskPayload) (*TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Create(ctx, u.ID, p)
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Task: *t, Owner: u.Public()}, nil
}

func (s *TaskService) List(ctx context.Context, principal string) ([]TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FindByOwner(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return withOwner(tasks, u), nil
}

func (s *TaskService) Get(ctx context.Context, principal string, id uuid.UUID) (*TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	t, err := s.store.FindByIDAndOwner(ctx, id, u.ID)
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Task: *t, Owner: u.Public()}, nil
}

// Replace overwrites every mutable field of the task with the payload,
// including fields the client omitted, which land as their zero values.
func (s *TaskService) Replace(ctx context.Context, principal string, id uuid.UUID, p TaskPayload) (*TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Update(ctx, id, u.ID, p)
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Task: *t, Owner: u.Public()}, nil
}

// PatchStatus merges the patch over the task's current flags: a nil field
// keeps the stored value.
func (s *TaskService) PatchStatus(ctx context.Context, principal string, id uuid.UUID, patch StatusPatch) (*TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	current, err := s.store.FindByIDAndOwner(ctx, id, u.ID)
	if err != nil {
		return nil, err
	}

	completed := current.IsCompleted
	if patch.IsCompleted != nil {
		completed = *patch.IsCompleted
	}
	important := current.IsImportant
	if patch.IsImportant != nil {
		important = *patch.IsImportant
	}

	t, err := s.store.UpdateStatus(ctx, id, u.ID, completed, important)
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Task: *t, Owner: u.Public()}, nil
}

func (s *TaskService) Delete(ctx context.Context, principal string, id uuid.UUID) error {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, id, u.ID)
}

func (s *TaskService) FilterByCompletion(ctx context.Context, principal string, completed bool) ([]TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FindByOwnerAndCompletion(ctx, u.ID, completed)
	if err != nil {
		return nil, err
	}

	return withOwner(tasks, u), nil
}

func (s *TaskService) FilterByImportance(ctx context.Context, principal string, important bool) ([]TaskResponse, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FindByOwnerAndImportance(ctx, u.ID, important)
	if err != nil {
		return nil, err
	}

	return withOwner(tasks, u), nil
}

// Search returns bare tasks rather than TaskResponse; the search endpoint
// serves the rows as-is.
func (s *TaskService) Search(ctx context.Context, principal string, title string) ([]Task, error) {
	u, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	return s.store.SearchByTitle(ctx, u.ID, title)
}

// DueWithin returns every task, across all users, due in [from, to). Used by
// the reminder job.
func (s *TaskService) DueWithin(ctx context.Context, from, to time.Time) ([]DueTask, error) {
	return s.store.DueBetween(ctx, from, to)
}

func withOwner(tasks []Task, u *user.User) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskResponse{Task: t, Owner: u.Public()})
	}

	return out
}
