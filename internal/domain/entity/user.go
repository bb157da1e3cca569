package entity

import (
	"time"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// UserStatus is the lifecycle state of an account.
// Allowed transitions: Pending -> Active (email verification) and any -> Disabled.
type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusActive   UserStatus = "ACTIVE"
	StatusDisabled UserStatus = "DISABLED"
)

// User is the aggregate root of the identity domain.
//
// PasswordHash holds the bcrypt digest produced by the PasswordHasher service;
// the plaintext credential never reaches this struct. Roles keep insertion
// order and never contain duplicates. EmailVerifiedAt is nil until the first
// successful verification.
type User struct {
	ID              valueobject.Identifier
	Email           valueobject.Email
	PasswordHash    string
	Status          UserStatus
	Roles           []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	EmailVerifiedAt *time.Time
}

// RegisterUser is the factory for new accounts. Status starts Pending.
func RegisterUser(email valueobject.Email, passwordHash string, roles []string) *User {
	now := time.Now().UTC()
	u := &User{
		ID:           valueobject.NewIdentifier(),
		Email:        email,
		PasswordHash: passwordHash,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, r := range roles {
		if !u.HasRole(r) {
			u.Roles = append(u.Roles, r)
		}
	}
	return u
}

// VerifyEmail moves a Pending user to Active and stamps EmailVerifiedAt.
// Verifying an already Active user is a harmless no-op so a retried
// confirmation does not fail. A Disabled user cannot be verified.
func (u *User) VerifyEmail() error {
	if u.Status == StatusDisabled {
		return domain.ErrUserDisabled
	}
	now := time.Now().UTC()
	u.Status = StatusActive
	u.EmailVerifiedAt = &now
	u.UpdatedAt = now
	return nil
}

// ChangePassword swaps in a new password digest.
func (u *User) ChangePassword(passwordHash string) {
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
}

// Disable deactivates the account. Valid from any state.
func (u *User) Disable() {
	u.Status = StatusDisabled
	u.UpdatedAt = time.Now().UTC()
}

// AssignRole adds a role if not present. Idempotent: a duplicate assignment
// does not touch UpdatedAt.
func (u *User) AssignRole(role string) {
	if u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
	u.UpdatedAt = time.Now().UTC()
}

// RemoveRole drops a role. UpdatedAt advances even when the role was absent;
// observable behavior kept from the first release.
func (u *User) RemoveRole(role string) {
	kept := u.Roles[:0]
	for _, r := range u.Roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	u.Roles = kept
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}
