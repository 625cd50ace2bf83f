package transaction

import (
	"sync"
	"time"

	"github.com/gravitas-games/stockpile/pkg/inventory"
)

// EventType represents the outcome of a transaction.
type EventType int

const (
	// EventCommitted is emitted when every step of a transaction succeeded.
	EventCommitted EventType = iota
	// EventRejected is emitted when a precondition failed before any mutation.
	EventRejected
	// EventRolledBack is emitted when a step failed and the containers were
	// restored from their snapshots.
	EventRolledBack
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventCommitted:
		return "Committed"
	case EventRejected:
		return "Rejected"
	case EventRolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// Op names a manager operation.
type Op string

const (
	OpSwap     Op = "swap"
	OpRemove   Op = "remove"
	OpAdd      Op = "add"
	OpExchange Op = "exchange"
)

// Event describes one finished manager call.
type Event struct {
	Type       EventType           `json:"type"`
	Op         Op                  `json:"op"`
	Containers []string            `json:"containers"`
	Owners     []inventory.OwnerID `json:"owners,omitempty"`
	Err        error               `json:"-"`
	Timestamp  time.Time           `json:"timestamp"`
}

// EventBus manages event subscriptions and delivery.
type EventBus interface {
	// Subscribe registers a handler for events touching containers of owner.
	Subscribe(owner inventory.OwnerID, handler func(Event))

	// Unsubscribe removes the handler for an owner.
	Unsubscribe(owner inventory.OwnerID)

	// Publish sends an event to subscribed handlers.
	Publish(event Event)
}

// SimpleEventBus is an in-memory event bus. Handlers run synchronously on
// the publishing goroutine, once per distinct owner in the event, so a
// handler observes container state exactly as the transaction left it.
type SimpleEventBus struct {
	mu       sync.RWMutex
	handlers map[inventory.OwnerID]func(Event)
}

// NewSimpleEventBus creates an empty event bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		handlers: make(map[inventory.OwnerID]func(Event)),
	}
}

// Subscribe registers a handler for an owner, replacing any previous one.
func (bus *SimpleEventBus) Subscribe(owner inventory.OwnerID, handler func(Event)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[owner] = handler
}

// Unsubscribe removes the handler for an owner.
func (bus *SimpleEventBus) Unsubscribe(owner inventory.OwnerID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.handlers, owner)
}

// Publish delivers event to the handler of every owner it names.
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	targets := make([]func(Event), 0, len(event.Owners))
	for _, owner := range event.Owners {
		if handler, ok := bus.handlers[owner]; ok {
			targets = append(targets, handler)
		}
	}
	bus.mu.RUnlock()

	for _, handler := range targets {
		handler(event)
	}
}

// NullEventBus is an event bus that does nothing.
type NullEventBus struct{}

// NewNullEventBus creates a new null event bus.
func NewNullEventBus() *NullEventBus {
	return &NullEventBus{}
}

// Subscribe does nothing.
func (bus *NullEventBus) Subscribe(owner inventory.OwnerID, handler func(Event)) {}

// Unsubscribe does nothing.
func (bus *NullEventBus) Unsubscribe(owner inventory.OwnerID) {}

// Publish does nothing.
func (bus *NullEventBus) Publish(event Event) {}
