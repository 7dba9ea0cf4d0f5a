package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore keeps users in a slice, matching the repo's exact-vs-folded
// lookup split.
type fakeUserStore struct {
	users       []*User
	rolesCalled bool
}

func (f *fakeUserStore) EnsureRoles(_ context.Context) error {
	f.rolesCalled = true
	return nil
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash string, role Role) (*User, error) {
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) GetByEmailInsensitive(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]*User, error) {
	return f.users, nil
}

func TestRegisterHashesPasswordAndAssignsUserRole(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
}

func TestRegisterAdminAssignsAdminRole(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	u, err := svc.RegisterAdmin(context.Background(), "root", "root@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "other", "alice@example.com", "different")
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Len(t, store.users, 1)
}

// Registration existence is an exact match; only the post-auth identity
// lookup folds case. A differently-cased duplicate therefore registers fine.
func TestEmailCaseSensitivitySplit(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	_, err := svc.Register(context.Background(), "alice", "Alice@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.GetByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := svc.LoadByLoginIdentifier(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice@example.com", u.Email)
}

func TestListReturnsPublicProjection(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	created, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, created.ID, users[0].ID)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, RoleUser, users[0].Role)
}

func TestListEmpty(t *testing.T) {
	svc := NewUserService(&fakeUserStore{})

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestEnsureRolesDelegates(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	require.NoError(t, svc.EnsureRoles(context.Background()))
	assert.True(t, store.rolesCalled)
}
