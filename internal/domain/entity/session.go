package entity

import (
	"time"

	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// Session represents an authenticated device session held by the HTTP/JWT
// layer. Core use-cases never depend on it.
type Session struct {
	ID         valueobject.Identifier `json:"id"`
	UserID     valueobject.Identifier `json:"user_id"`
	TokenHash  string                 `json:"token_hash"`
	DeviceInfo string                 `json:"device_info,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ExpiresAt  time.Time              `json:"expires_at"`
	RevokedAt  *time.Time             `json:"revoked_at,omitempty"`
}

// NewSession opens a session for userID bound to a refresh-token hash.
func NewSession(userID valueobject.Identifier, tokenHash, deviceInfo, ipAddress string, expiresAt time.Time) *Session {
	return &Session{
		ID:         valueobject.NewIdentifier(),
		UserID:     userID,
		TokenHash:  tokenHash,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
	}
}

func (s *Session) IsActive() bool {
	return s != nil && s.RevokedAt == nil && s.ExpiresAt.After(time.Now())
}

func (s *Session) Revoke() {
	if s.RevokedAt != nil {
		return
	}
	now := time.Now().UTC()
	s.RevokedAt = &now
}

// Rotate swaps in a fresh token hash and expiry, clearing any revocation.
func (s *Session) Rotate(tokenHash string, expiresAt time.Time) {
	s.TokenHash = tokenHash
	s.ExpiresAt = expiresAt
	s.RevokedAt = nil
}
