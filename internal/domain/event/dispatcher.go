package event

import (
	"context"
	"sync"
)

// HandlerFunc reacts to a dispatched event. Handlers run synchronously in
// registration order; a slow handler should hand off to its own goroutine.
type HandlerFunc func(ctx context.Context, e Event)

// Dispatcher is a typed publish/subscribe registry keyed by event Kind.
// It is built once by the composition root with its handlers injected;
// there is no package-level instance.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind][]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind][]HandlerFunc)}
}

// Subscribe registers h for events of the given kind.
func (d *Dispatcher) Subscribe(kind Kind, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Dispatch delivers e to every handler subscribed to its kind.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	d.mu.RLock()
	hs := d.handlers[e.Kind]
	d.mu.RUnlock()
	for _, h := range hs {
		h(ctx, e)
	}
}
