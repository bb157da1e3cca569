package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	email, err := valueobject.NewEmail("alice@example.com")
	require.NoError(t, err)
	return RegisterUser(email, "digest", []string{"user"})
}

func TestRegisterUser(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, StatusPending, u.Status)
	assert.Nil(t, u.EmailVerifiedAt)
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, []string{"user"}, u.Roles)
}

func TestRegisterUserDedupsRoles(t *testing.T) {
	email, err := valueobject.NewEmail("bob@example.com")
	require.NoError(t, err)
	u := RegisterUser(email, "digest", []string{"user", "admin", "user"})
	assert.Equal(t, []string{"user", "admin"}, u.Roles)
}

func TestVerifyEmail(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.VerifyEmail())
	assert.Equal(t, StatusActive, u.Status)
	require.NotNil(t, u.EmailVerifiedAt)

	// a second verification is a no-op, not an error
	first := *u.EmailVerifiedAt
	require.NoError(t, u.VerifyEmail())
	assert.Equal(t, StatusActive, u.Status)
	assert.False(t, u.EmailVerifiedAt.Before(first))
}

func TestVerifyEmailDisabled(t *testing.T) {
	u := newTestUser(t)
	u.Disable()
	err := u.VerifyEmail()
	require.Error(t, err)
	assert.True(t, domain.Is(err, domain.ErrCodeIllegalTransition))
	assert.Equal(t, StatusDisabled, u.Status)
	assert.Nil(t, u.EmailVerifiedAt)
}

func TestDisableFromAnyState(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.VerifyEmail())
	u.Disable()
	assert.Equal(t, StatusDisabled, u.Status)
	assert.False(t, u.IsActive())
}

func TestChangePassword(t *testing.T) {
	u := newTestUser(t)
	u.ChangePassword("new-digest")
	assert.Equal(t, "new-digest", u.PasswordHash)
}

func TestAssignRoleIdempotent(t *testing.T) {
	u := newTestUser(t)
	u.AssignRole("admin")
	assert.Equal(t, []string{"user", "admin"}, u.Roles)

	stamp := u.UpdatedAt
	u.AssignRole("admin")
	assert.Equal(t, []string{"user", "admin"}, u.Roles)
	assert.Equal(t, stamp, u.UpdatedAt)
}

func TestRemoveRole(t *testing.T) {
	u := newTestUser(t)
	u.AssignRole("admin")
	u.RemoveRole("user")
	assert.Equal(t, []string{"admin"}, u.Roles)
	assert.False(t, u.HasRole("user"))

	// removing an absent role still succeeds
	u.RemoveRole("missing")
	assert.Equal(t, []string{"admin"}, u.Roles)
}
