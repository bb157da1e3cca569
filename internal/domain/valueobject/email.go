package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/identity-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated, normalized (trimmed, lower-cased) address.
// Immutable; equality by normalized value.
type Email struct {
	value string
}

// NewEmail validates raw and returns the normalized form.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(normalized) {
		return Email{}, domain.ErrInvalidEmail
	}
	return Email{value: normalized}, nil
}

func (e Email) Value() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) String() string { return e.value }
