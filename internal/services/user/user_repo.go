package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `u.id, u.name, u.email, u.password_hash, r.name AS role, u.created_at, u.updated_at`

// UserRepo handles database operations for users and their role rows.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureRoles makes sure the fixed USER/ADMIN role rows exist. It is
// idempotent and runs at process start.
func (r *UserRepo) EnsureRoles(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO roles (name) VALUES ('USER'), ('ADMIN')
        ON CONFLICT (name) DO NOTHING
    `)
	if err != nil {
		return fmt.Errorf("failed to ensure role rows: %w", err)
	}

	return nil
}

// Create persists a new user with the given role name and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error) {
	query := `
        INSERT INTO users (name, email, password_hash, role_id)
        VALUES ($1, $2, $3, (SELECT id FROM roles WHERE name = $4))
        RETURNING id, name, email, password_hash, created_at, updated_at
    `

	var user User
	err := r.db.GetContext(ctx, &user, query, name, email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Role = role

	return &user, nil
}

// GetByEmail retrieves a user by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM users u
        JOIN roles r ON r.id = u.role_id
        WHERE u.email = $1
    `, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByEmailInsensitive retrieves a user by case-insensitive email match.
// Only the token-authorization path uses this lookup.
func (r *UserRepo) GetByEmailInsensitive(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM users u
        JOIN roles r ON r.id = u.role_id
        WHERE LOWER(u.email) = LOWER($1)
    `, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ExistsByEmail reports whether a user with exactly this email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// List retrieves all users ordered by creation date.
func (r *UserRepo) List(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM users u
        JOIN roles r ON r.id = u.role_id
        ORDER BY u.created_at DESC
    `, userColumns)

	var users []*User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
