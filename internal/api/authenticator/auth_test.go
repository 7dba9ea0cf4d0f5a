package authenticator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curaious/taskhive/internal/config"
)

func newTestAuthenticator(ttlHours int) *Authenticator {
	return New(&config.Config{
		JWT_SECRET:    "test-secret",
		JWT_TTL_HOURS: ttlHours,
	})
}

func TestGenerateAndExtractSubject(t *testing.T) {
	auth := newTestAuthenticator(24)

	token, err := auth.GenerateToken("alice", "alice@example.com", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := auth.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sub)

	name, err := auth.ExtractClaim(token, "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	role, err := auth.ExtractClaim(token, "role")
	require.NoError(t, err)
	assert.Equal(t, "USER", role)
}

func TestExtractSubjectRejectsTamperedToken(t *testing.T) {
	auth := newTestAuthenticator(24)

	token, err := auth.GenerateToken("alice", "alice@example.com", "USER")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ExtractSubject(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractSubjectRejectsMalformedToken(t *testing.T) {
	auth := newTestAuthenticator(24)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := auth.ExtractSubject(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestExtractSubjectRejectsWrongSecret(t *testing.T) {
	other := New(&config.Config{JWT_SECRET: "other-secret", JWT_TTL_HOURS: 24})
	token, err := other.GenerateToken("alice", "alice@example.com", "USER")
	require.NoError(t, err)

	auth := newTestAuthenticator(24)
	_, err = auth.ExtractSubject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractClaimAbsentReturnsEmpty(t *testing.T) {
	auth := newTestAuthenticator(24)

	token, err := auth.GenerateToken("alice", "alice@example.com", "USER")
	require.NoError(t, err)

	val, err := auth.ExtractClaim(token, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestValidateToken(t *testing.T) {
	auth := newTestAuthenticator(24)

	token, err := auth.GenerateToken("alice", "alice@example.com", "USER")
	require.NoError(t, err)

	assert.True(t, auth.ValidateToken(token, "alice@example.com"))
	assert.False(t, auth.ValidateToken(token, "bob@example.com"))
	assert.False(t, auth.ValidateToken("garbage", "alice@example.com"))
}

// An expired token still resolves its subject, because the resolver only
// verifies the signature. Full validation is where expiry is enforced.
func TestExpiredTokenExtractableButNotValid(t *testing.T) {
	auth := newTestAuthenticator(24)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "alice@example.com",
		"name": "alice",
		"role": "USER",
		"iat":  now.Add(-2 * time.Hour).Unix(),
		"exp":  now.Add(-1 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	sub, err := auth.ExtractSubject(expired)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sub)

	assert.False(t, auth.ValidateToken(expired, "alice@example.com"))
}

func TestValidateTokenRequiresExpiryClaim(t *testing.T) {
	auth := newTestAuthenticator(24)

	claims := jwt.MapClaims{"sub": "alice@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.False(t, auth.ValidateToken(token, "alice@example.com"))
}
