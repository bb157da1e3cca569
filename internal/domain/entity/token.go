package entity

import (
	"time"

	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// TokenPurpose names what a single-use token grants.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "EMAIL_VERIFICATION"
	PurposePasswordReset     TokenPurpose = "PASSWORD_RESET"
)

// DefaultTokenLifetime applies when issuance does not override it.
const DefaultTokenLifetime = 60 * time.Minute

// Token is a single-use, time-bound secret granting one verification or
// reset action. SecretHash is the SHA-256 digest of the value mailed to the
// user; the plain secret is never stored. UsedAt is nil until consumption
// and once set is never cleared.
type Token struct {
	ID         valueobject.Identifier
	UserID     valueobject.Identifier
	SecretHash string
	Purpose    TokenPurpose
	CreatedAt  time.Time
	ExpiresAt  time.Time
	UsedAt     *time.Time
}

// NewToken builds a fresh token for userID expiring after lifetime.
// A non-positive lifetime falls back to DefaultTokenLifetime, so a freshly
// issued token is always active.
func NewToken(userID valueobject.Identifier, secretHash string, purpose TokenPurpose, lifetime time.Duration) *Token {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	now := time.Now().UTC()
	return &Token{
		ID:         valueobject.NewIdentifier(),
		UserID:     userID,
		SecretHash: secretHash,
		Purpose:    purpose,
		CreatedAt:  now,
		ExpiresAt:  now.Add(lifetime),
	}
}

func (t *Token) IsExpired() bool {
	return !t.ExpiresAt.After(time.Now())
}

// IsActive reports whether the token can still be redeemed: never used and
// not yet expired.
func (t *Token) IsActive() bool {
	return t.UsedAt == nil && !t.IsExpired()
}

// MarkUsed burns the token. One-shot: a second call keeps the original stamp.
func (t *Token) MarkUsed() {
	if t.UsedAt != nil {
		return
	}
	now := time.Now().UTC()
	t.UsedAt = &now
}
