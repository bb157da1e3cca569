package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

func TestNewTokenDefaultLifetime(t *testing.T) {
	owner := valueobject.NewIdentifier()
	tok := NewToken(owner, "digest", PurposeEmailVerification, 0)

	assert.False(t, tok.ID.IsZero())
	assert.True(t, tok.IsActive())
	want := tok.CreatedAt.Add(DefaultTokenLifetime)
	assert.Equal(t, want, tok.ExpiresAt)
}

func TestNewTokenCustomLifetime(t *testing.T) {
	owner := valueobject.NewIdentifier()
	tok := NewToken(owner, "digest", PurposePasswordReset, 30*time.Minute)
	assert.Equal(t, tok.CreatedAt.Add(30*time.Minute), tok.ExpiresAt)
}

func TestTokenExpiry(t *testing.T) {
	owner := valueobject.NewIdentifier()
	tok := NewToken(owner, "digest", PurposeEmailVerification, time.Hour)
	assert.False(t, tok.IsExpired())

	tok.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, tok.IsExpired())
	assert.False(t, tok.IsActive())
}

func TestMarkUsedOneShot(t *testing.T) {
	owner := valueobject.NewIdentifier()
	tok := NewToken(owner, "digest", PurposeEmailVerification, time.Hour)

	tok.MarkUsed()
	require.NotNil(t, tok.UsedAt)
	assert.False(t, tok.IsActive())

	stamp := *tok.UsedAt
	tok.MarkUsed()
	assert.Equal(t, stamp, *tok.UsedAt)
}
