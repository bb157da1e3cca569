package valueobject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/domain"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "simple", raw: "alice@example.com", want: "alice@example.com"},
		{name: "normalizes case", raw: "Alice@Example.COM", want: "alice@example.com"},
		{name: "trims whitespace", raw: "  bob@example.com  ", want: "bob@example.com"},
		{name: "missing at", raw: "alice.example.com", wantErr: true},
		{name: "missing domain dot", raw: "alice@example", wantErr: true},
		{name: "embedded space", raw: "al ice@example.com", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmail(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidEmail))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Value())
		})
	}
}

func TestEmailEquals(t *testing.T) {
	a, err := NewEmail("Alice@Example.com")
	require.NoError(t, err)
	b, err := NewEmail("alice@example.COM")
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
}

func TestNewCredential(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "strong", raw: "Str0ng!pass"},
		{name: "too short", raw: "S1!a", wantErr: true},
		{name: "no upper", raw: "weak1!pass", wantErr: true},
		{name: "no lower", raw: "WEAK1!PASS", wantErr: true},
		{name: "no digit", raw: "Weak!pass", wantErr: true},
		{name: "no symbol", raw: "Weak1pass", wantErr: true},
		{name: "spaces only pad length", raw: "A1!b    ", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCredential(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrWeakCredential))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, c.Value())
		})
	}
}

func TestCredentialStringMasks(t *testing.T) {
	c, err := NewCredential("Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "********", c.String())
}

func TestIdentifier(t *testing.T) {
	id := NewIdentifier()
	assert.False(t, id.IsZero())

	parsed, err := ParseIdentifier(id.Value())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))

	_, err = ParseIdentifier("not-a-uuid")
	assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier))

	// v1 UUID is rejected: only random identifiers are accepted
	_, err = ParseIdentifier("2c5ea4c0-4067-11e9-8bad-9b1deb4d3b7d")
	assert.True(t, errors.Is(err, domain.ErrInvalidIdentifier))
}

func TestIdentifierTextRoundTrip(t *testing.T) {
	id := NewIdentifier()
	b, err := id.MarshalText()
	require.NoError(t, err)

	var out Identifier
	require.NoError(t, out.UnmarshalText(b))
	assert.True(t, id.Equals(out))
}
