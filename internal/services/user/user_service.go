package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmailInUse = errors.New("email already in use")

// userStore is the persistence contract the directory service depends on.
// *UserRepo satisfies it.
type userStore interface {
	EnsureRoles(ctx context.Context) error
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailInsensitive(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*User, error)
}

// UserService contains the user directory logic: registration, admin
// provisioning, lookups and listing.
type UserService struct {
	store userStore
}

// NewUserService constructs a new UserService
func NewUserService(store userStore) *UserService {
	return &UserService{store: store}
}

// EnsureRoles makes the fixed role set present; called once at startup.
func (s *UserService) EnsureRoles(ctx context.Context) error {
	return s.store.EnsureRoles(ctx)
}

// Register creates a new USER-role account. The public boundary has already
// rejected ADMIN self-registration before this is called.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*User, error) {
	return s.register(ctx, username, email, password, RoleUser)
}

// RegisterAdmin creates a new ADMIN-role account. The caller must already hold
// the ADMIN role; that check lives at the HTTP boundary, not here.
func (s *UserService) RegisterAdmin(ctx context.Context, username, email, password string) (*User, error) {
	return s.register(ctx, username, email, password, RoleAdmin)
}

func (s *UserService) register(ctx context.Context, username, email, password string, role Role) (*User, error) {
	// Existence check is an exact email match, unlike the authorization-path
	// lookup below which is case-insensitive.
	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrEmailInUse, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.Create(ctx, username, email, string(hash), role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByEmail loads a user by exact email. The login handler performs the
// password comparison itself against the returned credential projection.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmail(ctx, email)
}

// LoadByLoginIdentifier resolves a token subject to a user, case-insensitively.
func (s *UserService) LoadByLoginIdentifier(ctx context.Context, email string) (*User, error) {
	return s.store.GetByEmailInsensitive(ctx, email)
}

// List returns every user projected to the public-safe shape.
func (s *UserService) List(ctx context.Context) ([]PublicUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}

	return out, nil
}
