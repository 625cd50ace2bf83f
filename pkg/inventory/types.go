// Package inventory implements fixed-capacity, slot-addressed containers and
// the removal and addition primitives that mutate them. Multi-step atomic
// operations live in package transaction.
package inventory

import (
	"github.com/google/uuid"

	"github.com/gravitas-games/stockpile/pkg/item"
)

// OwnerID represents an application-defined owner identifier.
// Can be a player, a chest position, a shop, etc.
type OwnerID string

// Container is a fixed-length ordered sequence of optional stacks. Capacity
// is set at construction and never changes; only slot contents are rewritten.
// A nil *Container stands for an absent container.
type Container struct {
	ID    string  `json:"id" yaml:"id"`
	Owner OwnerID `json:"owner,omitempty" yaml:"owner,omitempty"`

	slots []*item.Stack
}

// Option configures container construction.
type Option func(*Container)

// WithID sets the container identifier. Without it a random UUID is used.
func WithID(id string) Option {
	return func(c *Container) {
		c.ID = id
	}
}

// WithOwner sets the owner of the container.
func WithOwner(owner OwnerID) Option {
	return func(c *Container) {
		c.Owner = owner
	}
}

// WithContents places stacks into the first slots in order. Stacks beyond
// capacity are dropped. The stacks are stored as given, not copied.
func WithContents(stacks ...*item.Stack) Option {
	return func(c *Container) {
		copy(c.slots, stacks)
	}
}

// New creates a container with capacity slots, all empty. A negative
// capacity is treated as zero, which yields an unusable container.
func New(capacity int, opts ...Option) *Container {
	if capacity < 0 {
		capacity = 0
	}
	c := &Container{
		slots: make([]*item.Stack, capacity),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c
}

// Capacity returns the slot count, or 0 for a nil container.
func (c *Container) Capacity() int {
	if c == nil {
		return 0
	}
	return len(c.slots)
}

// Slot returns the stack at index i, or nil when the slot is empty or i is
// out of range. The returned stack is live; mutating it mutates the container.
func (c *Container) Slot(i int) *item.Stack {
	if c == nil || i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

// SetSlot stores s at index i. It returns false when i is out of range.
func (c *Container) SetSlot(i int, s *item.Stack) bool {
	if c == nil || i < 0 || i >= len(c.slots) {
		return false
	}
	c.slots[i] = s
	return true
}

// Contents returns a copy of the slot slice. The stacks themselves are shared
// with the container.
func (c *Container) Contents() []*item.Stack {
	if c == nil {
		return nil
	}
	out := make([]*item.Stack, len(c.slots))
	copy(out, c.slots)
	return out
}

// Clear empties every slot.
func (c *Container) Clear() {
	if c == nil {
		return
	}
	for i := range c.slots {
		c.slots[i] = nil
	}
}

// SetContents clears the container and places stacks into the first slots in
// order. Stacks beyond capacity are dropped.
func (c *Container) SetContents(stacks []*item.Stack) {
	if c == nil {
		return
	}
	c.Clear()
	copy(c.slots, stacks)
}

// Count returns the total number of units of kind/variant held, regardless
// of metadata. Malformed slots are included as stored.
func (c *Container) Count(kind item.Kind, variant item.Variant) int {
	if c == nil {
		return 0
	}
	total := 0
	for _, s := range c.slots {
		if s != nil && s.Kind == kind && s.Variant == variant && s.Count > 0 {
			total += s.Count
		}
	}
	return total
}
