package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRoutesByKind(t *testing.T) {
	d := NewDispatcher()

	var registered, verified []Event
	d.Subscribe(UserRegistered, func(ctx context.Context, e Event) {
		registered = append(registered, e)
	})
	d.Subscribe(EmailVerified, func(ctx context.Context, e Event) {
		verified = append(verified, e)
	})

	ctx := context.Background()
	d.Dispatch(ctx, New(UserRegistered, "id-1", "a@example.com"))
	d.Dispatch(ctx, New(UserDisabled, "id-2", "b@example.com"))

	assert.Len(t, registered, 1)
	assert.Equal(t, "id-1", registered[0].UserID)
	assert.Empty(t, verified)
}

func TestDispatcherHandlerOrder(t *testing.T) {
	d := NewDispatcher()

	var order []int
	d.Subscribe(PasswordChanged, func(ctx context.Context, e Event) { order = append(order, 1) })
	d.Subscribe(PasswordChanged, func(ctx context.Context, e Event) { order = append(order, 2) })

	d.Dispatch(context.Background(), New(PasswordChanged, "id", "a@example.com"))
	assert.Equal(t, []int{1, 2}, order)
}

func TestDispatchWithoutSubscribers(t *testing.T) {
	d := NewDispatcher()
	// no handlers registered; must not panic
	d.Dispatch(context.Background(), New(EmailVerified, "id", "a@example.com"))
}
