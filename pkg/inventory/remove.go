package inventory

import (
	"fmt"

	"github.com/gravitas-games/stockpile/pkg/item"
)

// HasRequired reports whether c holds at least amount units of the kind of s.
// The count on s is ignored; only its kind and variant matter. It returns
// false for an invalid container, an unresolvable stack or amount < 1.
func (e *Engine) HasRequired(c *Container, s *item.Stack, amount int) bool {
	if !e.IsValidContainer(c) || !e.rules.IsResolvable(s) || amount < 1 {
		return false
	}
	probe := s.WithCount(amount)
	count := 0
	for _, cur := range c.slots {
		if e.rules.SameKind(cur, probe) {
			count += cur.Count
			if count >= amount {
				return true
			}
		}
	}
	return false
}

// Remove takes exactly s.Count units of the kind of s out of c, draining
// matching slots from the lowest index up. Nothing is mutated when c does
// not hold enough. Remove does not undo a scan that ends short: it returns
// ErrRemovalIncomplete and leaves restoring to the caller.
func (e *Engine) Remove(c *Container, s *item.Stack) error {
	if !e.IsValidContainer(c) {
		return ErrNullContainer
	}
	if !e.rules.IsValid(s) {
		return ErrInvalidItem
	}
	if !e.HasRequired(c, s, s.Count) {
		return fmt.Errorf("%w: %s:%d x%d", ErrInsufficientQuantity, s.Kind, s.Variant, s.Count)
	}

	remaining := s.Count
	for i, cur := range c.slots {
		if !e.rules.SameKind(cur, s) {
			continue
		}
		if cur.Count > remaining {
			cur.Count -= remaining
			remaining = 0
			break
		}
		c.slots[i] = nil
		remaining -= cur.Count
		if remaining == 0 {
			break
		}
	}

	if remaining != 0 {
		return fmt.Errorf("%w: %d units of %s:%d still owed", ErrRemovalIncomplete, remaining, s.Kind, s.Variant)
	}
	return nil
}
