package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

func TestSessionLifecycle(t *testing.T) {
	userID := valueobject.NewIdentifier()
	s := NewSession(userID, "hash-1", "cli", "127.0.0.1", time.Now().Add(time.Hour))
	assert.True(t, s.IsActive())

	s.Revoke()
	assert.False(t, s.IsActive())

	// rotation reinstates the session with a fresh hash
	s.Rotate("hash-2", time.Now().Add(time.Hour))
	assert.True(t, s.IsActive())
	assert.Equal(t, "hash-2", s.TokenHash)
}

func TestSessionExpiry(t *testing.T) {
	userID := valueobject.NewIdentifier()
	s := NewSession(userID, "hash", "", "", time.Now().Add(-time.Minute))
	assert.False(t, s.IsActive())
}

func TestSessionJSONRoundTrip(t *testing.T) {
	userID := valueobject.NewIdentifier()
	s := NewSession(userID, "hash", "browser", "10.0.0.1", time.Now().Add(time.Hour))

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var out Session
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, out.ID.Equals(s.ID))
	assert.True(t, out.UserID.Equals(s.UserID))
	assert.Equal(t, "hash", out.TokenHash)
}
