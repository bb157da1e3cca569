package valueobject

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/oksasatya/identity-service/internal/domain"
)

// identifierPattern matches the textual UUID v4 form: 8-4-4-4-12 hex groups
// with the version nibble fixed to 4 and the RFC 4122 variant bits set.
var identifierPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Identifier is an opaque unique identity value. Immutable; equality by value.
type Identifier struct {
	value string
}

// NewIdentifier generates a fresh random identifier.
func NewIdentifier() Identifier {
	return Identifier{value: uuid.NewString()}
}

// ParseIdentifier validates the textual form and wraps it.
func ParseIdentifier(raw string) (Identifier, error) {
	if !identifierPattern.MatchString(raw) {
		return Identifier{}, domain.ErrInvalidIdentifier
	}
	return Identifier{value: raw}, nil
}

func (i Identifier) Value() string { return i.value }

func (i Identifier) IsZero() bool { return i.value == "" }

func (i Identifier) Equals(other Identifier) bool { return i.value == other.value }

func (i Identifier) String() string { return i.value }

// MarshalText lets Identifier round-trip through JSON-encoded records.
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.value), nil
}

func (i *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
