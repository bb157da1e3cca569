package event

import "time"

// Kind is the closed enumeration of domain event variants.
type Kind string

const (
	UserRegistered  Kind = "UserRegistered"
	EmailVerified   Kind = "EmailVerified"
	UserDisabled    Kind = "UserDisabled"
	PasswordChanged Kind = "PasswordChanged"
)

// Event is a fact about the user aggregate. Payload fields are plain values;
// handlers must not mutate aggregates through them.
type Event struct {
	Kind       Kind
	UserID     string
	Email      string
	OccurredAt time.Time
}

// New stamps an event with the current time.
func New(kind Kind, userID, email string) Event {
	return Event{Kind: kind, UserID: userID, Email: email, OccurredAt: time.Now().UTC()}
}
