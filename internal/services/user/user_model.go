package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the persisted identity record. Role is materialized from the joined
// roles table on every read.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Credential is the narrow projection of a user that the login path consumes:
// exactly what a credential check needs and nothing else, so the persistence
// record never doubles as an authentication object.
type Credential struct {
	Email        string
	PasswordHash string
	Role         Role
	Enabled      bool
}

func (u *User) Credential() Credential {
	return Credential{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Enabled:      true,
	}
}

// PublicUser is the safe shape returned by listing endpoints.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Name,
		Role:     u.Role,
	}
}

// RegisterUserRequest captures the registration payload.
type RegisterUserRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}
