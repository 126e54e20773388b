// Package eventbus provides the in-memory implementation of the event
// bus contract.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/greenpoints/pkg/eventbus"
)

// MemoryEventBus is a simple in-memory implementation of the EventBus
// interface. Handlers run synchronously on the emitting goroutine.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []eventbus.Event // retained for tests
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]eventbus.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors are logged, not propagated; the wallet mutation has
// already been persisted by the time anything is emitted.
func (b *MemoryEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	eventType := event.Type()
	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "type", eventType, "error", err)
		}
	}
	return nil
}

// Published returns a snapshot of the published events. This is useful
// for testing.
func (b *MemoryEventBus) Published() []eventbus.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]eventbus.Event, len(b.published))
	copy(out, b.published)
	return out
}

// ClearPublished clears the list of published events. This is useful for testing.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]eventbus.Event, 0)
}

var _ eventbus.EventBus = (*MemoryEventBus)(nil)

// RegisterLogging subscribes a handler that records every wallet event on
// the given logger.
func RegisterLogging(bus eventbus.EventBus, logger *slog.Logger) {
	log := func(ctx context.Context, event eventbus.Event) error {
		switch e := event.(type) {
		case eventbus.PointsCredited:
			logger.Info("points credited", "user_id", e.UserID, "points", e.Points, "source", e.Source, "balance", e.NewBalance, "tier", e.Tier)
		case eventbus.PointsRedeemed:
			logger.Info("points redeemed", "user_id", e.UserID, "points", e.Points, "effective_value", e.EffectiveValue, "used_2x", e.Used2XValue, "balance", e.NewBalance)
		case eventbus.BadgeEarned:
			logger.Info("badge earned", "user_id", e.UserID, "badge", e.Badge)
		default:
			logger.Info("event", "type", event.Type())
		}
		return nil
	}
	bus.Register(eventbus.PointsCredited{}.Type(), log)
	bus.Register(eventbus.PointsRedeemed{}.Type(), log)
	bus.Register(eventbus.BadgeEarned{}.Type(), log)
}
