// Package eventbus defines the in-process event contract used to announce
// wallet activity after it has been durably persisted.
package eventbus

import "context"

// Event is anything that can be published on the bus.
type Event interface {
	Type() string
}

// HandlerFunc consumes one event.
type HandlerFunc func(ctx context.Context, e Event) error

// EventBus registers handlers and dispatches events to them.
type EventBus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, e Event) error
}
