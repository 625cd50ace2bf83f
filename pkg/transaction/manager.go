package transaction

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/stockpile/pkg/inventory"
	"github.com/gravitas-games/stockpile/pkg/item"
)

// Manager composes the engine's removal and addition primitives into atomic
// operations over one or two containers. Every call either applies all of
// its steps or leaves the containers as they were when the call began.
//
// Manager does no locking. All calls touching a container must come from the
// single goroutine that owns it (the game tick loop).
type Manager struct {
	engine *inventory.Engine
	events EventBus
	log    logrus.FieldLogger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithEventBus publishes an Event after every call.
func WithEventBus(bus EventBus) Option {
	return func(m *Manager) {
		m.events = bus
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a manager driving engine.
func NewManager(engine *inventory.Engine, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	m := &Manager{
		engine: engine,
		events: NewNullEventBus(),
		log:    discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Engine returns the underlying engine.
func (m *Manager) Engine() *inventory.Engine {
	return m.engine
}

// Swap exchanges the entire contents of c1 and c2. Only valid stacks move;
// they are packed into the first slots of their new container. The fit
// check compares stack counts against slot counts and does not look at
// per-slot stack limits.
func (m *Manager) Swap(c1, c2 *inventory.Container) error {
	cs := []*inventory.Container{c1, c2}
	if err := m.requireContainers(c1, c2); err != nil {
		return m.finish(OpSwap, cs, false, err)
	}

	contents1 := m.validContents(c1)
	contents2 := m.validContents(c2)
	if len(contents1) > c2.Capacity() {
		err := fmt.Errorf("%w: %s cannot hold %d stacks from %s", inventory.ErrInsufficientSpace, c2.ID, len(contents1), c1.ID)
		return m.finish(OpSwap, cs, false, err)
	}
	if len(contents2) > c1.Capacity() {
		err := fmt.Errorf("%w: %s cannot hold %d stacks from %s", inventory.ErrInsufficientSpace, c1.ID, len(contents2), c2.ID)
		return m.finish(OpSwap, cs, false, err)
	}

	c1.SetContents(contents2)
	c2.SetContents(contents1)
	return m.finish(OpSwap, cs, false, nil)
}

// RemoveOne removes s.Count units of the kind of s from c. On failure c is
// restored to its state before the call. s itself is never modified.
func (m *Manager) RemoveOne(c *inventory.Container, s *item.Stack) error {
	cs := []*inventory.Container{c}
	if err := m.requireContainers(c); err != nil {
		return m.finish(OpRemove, cs, false, err)
	}
	if !m.engine.Rules().IsValid(s) {
		return m.finish(OpRemove, cs, false, inventory.ErrInvalidItem)
	}
	s = s.Clone()

	snap := m.engine.Snapshot(c)
	if err := m.engine.Remove(c, s); err != nil {
		inventory.Restore(c, snap)
		return m.finish(OpRemove, cs, true, err)
	}
	return m.finish(OpRemove, cs, false, nil)
}

// AddOne adds all of s to c. On failure c is restored to its state before
// the call.
func (m *Manager) AddOne(c *inventory.Container, s *item.Stack) error {
	cs := []*inventory.Container{c}
	if err := m.requireContainers(c); err != nil {
		return m.finish(OpAdd, cs, false, err)
	}
	if !m.engine.Rules().IsValid(s) {
		return m.finish(OpAdd, cs, false, inventory.ErrInvalidItem)
	}
	s = s.Clone()

	snap := m.engine.Snapshot(c)
	if err := m.engine.Add(c, s); err != nil {
		inventory.Restore(c, snap)
		return m.finish(OpAdd, cs, true, err)
	}
	return m.finish(OpAdd, cs, false, nil)
}

// Exchange moves items1 from c1 to c2 and items2 from c2 to c1 as one unit.
// All removals run before any addition so incoming items see the space freed
// by outgoing ones. If any step fails both containers are restored.
func (m *Manager) Exchange(c1 *inventory.Container, items1 []*item.Stack, c2 *inventory.Container, items2 []*item.Stack) error {
	cs := []*inventory.Container{c1, c2}
	if err := m.requireContainers(c1, c2); err != nil {
		return m.finish(OpExchange, cs, false, err)
	}
	rules := m.engine.Rules()
	if !rules.IsValidSet(items1) {
		err := fmt.Errorf("%w: items leaving %s", inventory.ErrInvalidItemSet, c1.ID)
		return m.finish(OpExchange, cs, false, err)
	}
	if !rules.IsValidSet(items2) {
		err := fmt.Errorf("%w: items leaving %s", inventory.ErrInvalidItemSet, c2.ID)
		return m.finish(OpExchange, cs, false, err)
	}
	// items may be live slots of c1 or c2; removal would shrink them in place
	items1, items2 = cloneAll(items1), cloneAll(items2)

	snap1 := m.engine.Snapshot(c1)
	snap2 := m.engine.Snapshot(c2)

	steps := []struct {
		apply func(*inventory.Container, *item.Stack) error
		c     *inventory.Container
		items []*item.Stack
	}{
		{m.engine.Remove, c1, items1},
		{m.engine.Remove, c2, items2},
		{m.engine.Add, c1, items2},
		{m.engine.Add, c2, items1},
	}
	for _, step := range steps {
		for _, s := range step.items {
			if err := step.apply(step.c, s); err != nil {
				inventory.Restore(c1, snap1)
				inventory.Restore(c2, snap2)
				return m.finish(OpExchange, cs, true, fmt.Errorf("%s: %w", step.c.ID, err))
			}
		}
	}
	return m.finish(OpExchange, cs, false, nil)
}

func cloneAll(stacks []*item.Stack) []*item.Stack {
	out := make([]*item.Stack, len(stacks))
	for i, s := range stacks {
		out[i] = s.Clone()
	}
	return out
}

func (m *Manager) requireContainers(cs ...*inventory.Container) error {
	for i, c := range cs {
		if !m.engine.IsValidContainer(c) {
			return fmt.Errorf("%w: container%d", inventory.ErrNullContainer, i+1)
		}
	}
	return nil
}

func (m *Manager) validContents(c *inventory.Container) []*item.Stack {
	rules := m.engine.Rules()
	out := make([]*item.Stack, 0, c.Capacity())
	for _, s := range c.Contents() {
		if rules.IsValid(s) {
			out = append(out, s)
		}
	}
	return out
}

// finish logs the outcome, publishes the event and returns err wrapped with
// the operation name.
func (m *Manager) finish(op Op, cs []*inventory.Container, rolledBack bool, err error) error {
	ev := Event{
		Op:        op,
		Timestamp: m.now(),
		Err:       err,
	}
	seen := make(map[inventory.OwnerID]bool, len(cs))
	for _, c := range cs {
		if c == nil {
			ev.Containers = append(ev.Containers, "")
			continue
		}
		ev.Containers = append(ev.Containers, c.ID)
		if c.Owner != "" && !seen[c.Owner] {
			seen[c.Owner] = true
			ev.Owners = append(ev.Owners, c.Owner)
		}
	}

	l := m.log.WithFields(logrus.Fields{
		"op":         string(op),
		"containers": ev.Containers,
	})
	switch {
	case err == nil:
		ev.Type = EventCommitted
		l.Debug("transaction committed")
	case rolledBack:
		ev.Type = EventRolledBack
		l = l.WithError(err).WithField("failure", inventory.Kind(err))
		if inventory.Severe(err) {
			l.Error("transaction rolled back after inconsistent removal")
		} else {
			l.Warn("transaction rolled back")
		}
	default:
		ev.Type = EventRejected
		l.WithError(err).WithField("failure", inventory.Kind(err)).Info("transaction rejected")
	}
	m.events.Publish(ev)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
