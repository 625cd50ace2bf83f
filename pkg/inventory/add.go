package inventory

import (
	"fmt"

	"github.com/gravitas-games/stockpile/pkg/item"
)

// Space returns how many units of the kind of s fit into c: the headroom of
// every slot holding a stack similar to s plus a full stack for every empty
// slot. Slots holding malformed stacks count as empty.
func (e *Engine) Space(c *Container, s *item.Stack) int {
	if !e.IsValidContainer(c) || !e.rules.IsResolvable(s) {
		return 0
	}
	limit := e.rules.MaxStack(s)
	probe := s.WithCount(1)
	free := 0
	for _, cur := range c.slots {
		switch {
		case !e.rules.IsValid(cur):
			free += limit
		case e.rules.Similar(cur, probe) && cur.Count < limit:
			free += limit - cur.Count
		}
	}
	return free
}

// Add places all s.Count units of s into c. Slots already holding a similar
// stack are topped up first, lowest index first; the rest goes into empty
// slots, lowest index first, at most one full stack per slot. When the units
// do not all fit, c is left untouched and ErrInsufficientSpace is returned.
// Stored stacks are copies; s itself is never placed into c.
func (e *Engine) Add(c *Container, s *item.Stack) error {
	if !e.IsValidContainer(c) {
		return ErrNullContainer
	}
	if !e.rules.IsValid(s) {
		return ErrInvalidItem
	}
	if free := e.Space(c, s); free < s.Count {
		return fmt.Errorf("%w: %s:%d x%d, room for %d", ErrInsufficientSpace, s.Kind, s.Variant, s.Count, free)
	}

	limit := e.rules.MaxStack(s)
	remaining := s.Count

	for _, cur := range c.slots {
		if remaining == 0 {
			break
		}
		if !e.rules.Similar(cur, s) || cur.Count >= limit {
			continue
		}
		take := min(limit-cur.Count, remaining)
		cur.Count += take
		remaining -= take
	}

	for i, cur := range c.slots {
		if remaining == 0 {
			break
		}
		if e.rules.IsValid(cur) {
			continue
		}
		take := min(limit, remaining)
		c.slots[i] = s.WithCount(take)
		remaining -= take
	}

	if remaining != 0 {
		// unreachable while Space and the fill passes agree
		return fmt.Errorf("%w: %d units of %s:%d left over", ErrInsufficientSpace, remaining, s.Kind, s.Variant)
	}
	return nil
}
