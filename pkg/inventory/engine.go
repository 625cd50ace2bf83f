package inventory

import "github.com/gravitas-games/stockpile/pkg/item"

// Engine applies removal and addition to single containers. It holds no
// container state and takes no locks: callers serialize mutations of a
// container themselves.
type Engine struct {
	rules *item.Rules
}

// NewEngine returns an engine judging stacks with rules.
func NewEngine(rules *item.Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the item rules the engine uses.
func (e *Engine) Rules() *item.Rules {
	return e.rules
}

// IsValidContainer reports whether c is present and has at least one slot.
func (e *Engine) IsValidContainer(c *Container) bool {
	return c != nil && c.Capacity() > 0
}

// Snapshot returns an independent copy of c with the same ID, owner and
// capacity. Valid stacks are deep-copied; empty and invalid slots are
// recorded as empty, so restoring a snapshot also sanitises the container.
// Snapshot of nil is nil.
func (e *Engine) Snapshot(c *Container) *Container {
	if c == nil {
		return nil
	}
	snap := &Container{
		ID:    c.ID,
		Owner: c.Owner,
		slots: make([]*item.Stack, len(c.slots)),
	}
	for i, s := range c.slots {
		if e.rules.IsValid(s) {
			snap.slots[i] = s.Clone()
		}
	}
	return snap
}

// Restore overwrites every slot of c with a copy of the matching slot of
// snap. The snapshot stays independent and can be restored again.
func Restore(c, snap *Container) {
	if c == nil || snap == nil {
		return
	}
	for i := range c.slots {
		if i < len(snap.slots) {
			c.slots[i] = snap.slots[i].Clone()
		} else {
			c.slots[i] = nil
		}
	}
}
