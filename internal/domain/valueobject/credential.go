package valueobject

import (
	"unicode"

	"github.com/oksasatya/identity-service/internal/domain"
)

// Credential is a validated plaintext secret held only transiently between
// input validation and hashing. It is never persisted, logged, or rendered:
// String() masks the value and persistence goes through PasswordHasher.
type Credential struct {
	value string
}

// NewCredential enforces the strength policy: at least 8 characters with one
// upper-case letter, one lower-case letter, one digit, and one symbol.
func NewCredential(raw string) (Credential, error) {
	if !strongEnough(raw) {
		return Credential{}, domain.ErrWeakCredential
	}
	return Credential{value: raw}, nil
}

func strongEnough(raw string) bool {
	if len(raw) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r):
			// whitespace counts toward length only
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Value returns the raw secret. Callers must only pass it to a PasswordHasher.
func (c Credential) Value() string { return c.value }

func (c Credential) IsZero() bool { return c.value == "" }

func (c Credential) Equals(other Credential) bool { return c.value == other.value }

// String masks the secret so accidental logging never leaks it.
func (c Credential) String() string { return "********" }
