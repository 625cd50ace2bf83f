package inventory

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/stockpile/pkg/item"
	"github.com/gravitas-games/stockpile/pkg/registry"
)

func newTestEngine() *Engine {
	return NewEngine(item.NewRules(registry.SampleCatalog()))
}

func stone(n int) *item.Stack { return item.New("stone", 0, n) }
func pearl(n int) *item.Stack { return item.New("ender_pearl", 0, n) }

// counts flattens a container into per-slot counts, 0 for empty slots.
func counts(c *Container) []int {
	out := make([]int, c.Capacity())
	for i := range out {
		if s := c.Slot(i); s != nil {
			out[i] = s.Count
		}
	}
	return out
}

func TestNewContainer(t *testing.T) {
	c := New(3)
	assert.Equal(t, 3, c.Capacity())
	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err, "default id is a uuid")

	named := New(2, WithID("chest-1"), WithOwner("steve"), WithContents(stone(1), stone(2), stone(3)))
	assert.Equal(t, "chest-1", named.ID)
	assert.Equal(t, OwnerID("steve"), named.Owner)
	assert.Equal(t, []int{1, 2}, counts(named), "contents beyond capacity are dropped")

	assert.Equal(t, 0, New(-4).Capacity())

	var absent *Container
	assert.Equal(t, 0, absent.Capacity())
	assert.Nil(t, absent.Slot(0))
	assert.False(t, absent.SetSlot(0, stone(1)))
}

func TestSlotAccess(t *testing.T) {
	c := New(2)
	assert.True(t, c.SetSlot(1, stone(5)))
	assert.False(t, c.SetSlot(2, stone(5)))
	assert.Nil(t, c.Slot(-1))
	assert.Equal(t, 5, c.Slot(1).Count)
	assert.Equal(t, 5, c.Count("stone", 0))

	c.SetContents([]*item.Stack{stone(9)})
	assert.Equal(t, []int{9, 0}, counts(c))

	c.Clear()
	assert.Equal(t, []int{0, 0}, counts(c))
}

func TestIsValidContainer(t *testing.T) {
	e := newTestEngine()
	assert.False(t, e.IsValidContainer(nil))
	assert.False(t, e.IsValidContainer(New(0)))
	assert.True(t, e.IsValidContainer(New(1)))
}

func TestSnapshotSanitisesAndIsIndependent(t *testing.T) {
	e := newTestEngine()
	named := stone(3)
	named.Meta = &item.Meta{DisplayName: "Keystone"}
	c := New(4, WithID("c"), WithContents(named, item.New("unknown", 0, 5), stone(0), nil))

	snap := e.Snapshot(c)
	require.NotNil(t, snap)
	assert.Equal(t, c.ID, snap.ID)
	assert.Equal(t, 4, snap.Capacity())
	assert.Equal(t, []int{3, 0, 0, 0}, counts(snap))

	// mutating the live container does not reach the snapshot
	c.Slot(0).Count = 60
	c.Slot(0).Meta.DisplayName = "changed"
	assert.Equal(t, 3, snap.Slot(0).Count)
	assert.Equal(t, "Keystone", snap.Slot(0).Meta.DisplayName)

	Restore(c, snap)
	assert.Equal(t, []int{3, 0, 0, 0}, counts(c))
	assert.Equal(t, "Keystone", c.Slot(0).Meta.DisplayName)

	// restoring twice works because Restore copies out of the snapshot
	c.Slot(0).Count = 1
	Restore(c, snap)
	assert.Equal(t, 3, c.Slot(0).Count)

	assert.Nil(t, e.Snapshot(nil))
}

func TestHasRequired(t *testing.T) {
	e := newTestEngine()
	c := New(4, WithContents(stone(10), pearl(4), stone(20), nil))

	assert.True(t, e.HasRequired(c, stone(1), 30))
	assert.False(t, e.HasRequired(c, stone(1), 31))
	assert.True(t, e.HasRequired(c, stone(999), 5), "count on the probe is ignored")
	assert.True(t, e.HasRequired(c, stone(0), 5), "zero-count probe is still resolvable")
	assert.False(t, e.HasRequired(c, item.New("wool", 0, 1), 1))

	for _, n := range []int{0, -1, -64} {
		assert.False(t, e.HasRequired(c, stone(1), n), "amount %d", n)
	}
	assert.False(t, e.HasRequired(nil, stone(1), 1))
	assert.False(t, e.HasRequired(New(0), stone(1), 1))
	assert.False(t, e.HasRequired(c, nil, 1))
}

func TestRemove(t *testing.T) {
	e := newTestEngine()

	t.Run("exact single stack empties slot", func(t *testing.T) {
		c := New(1, WithContents(stone(64)))
		require.NoError(t, e.Remove(c, stone(64)))
		assert.Nil(t, c.Slot(0))
	})

	t.Run("more than held fails without mutation", func(t *testing.T) {
		c := New(1, WithContents(stone(64)))
		err := e.Remove(c, stone(65))
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
		assert.Equal(t, []int{64}, counts(c))
	})

	t.Run("drains lowest slots first", func(t *testing.T) {
		c := New(4, WithContents(stone(10), pearl(4), stone(20), stone(5)))
		require.NoError(t, e.Remove(c, stone(25)))
		assert.Equal(t, []int{0, 4, 5, 5}, counts(c))
	})

	t.Run("partial decrement stops", func(t *testing.T) {
		c := New(2, WithContents(stone(10), stone(10)))
		require.NoError(t, e.Remove(c, stone(3)))
		assert.Equal(t, []int{7, 10}, counts(c))
	})

	t.Run("metadata does not affect matching", func(t *testing.T) {
		named := stone(5)
		named.Meta = &item.Meta{DisplayName: "Keystone"}
		c := New(2, WithContents(named, stone(5)))
		require.NoError(t, e.Remove(c, stone(7)))
		assert.Equal(t, []int{0, 3}, counts(c))
	})

	t.Run("preconditions", func(t *testing.T) {
		assert.ErrorIs(t, e.Remove(nil, stone(1)), ErrNullContainer)
		assert.ErrorIs(t, e.Remove(New(0), stone(1)), ErrNullContainer)
		assert.ErrorIs(t, e.Remove(New(1), stone(0)), ErrInvalidItem)
		assert.ErrorIs(t, e.Remove(New(1), nil), ErrInvalidItem)
	})
}

func TestAdd(t *testing.T) {
	e := newTestEngine()

	t.Run("tops up partial before empty slots", func(t *testing.T) {
		c := New(2, WithContents(stone(32)))
		require.NoError(t, e.Add(c, stone(40)))
		assert.Equal(t, []int{64, 8}, counts(c))
	})

	t.Run("partial stack later in the container is used first", func(t *testing.T) {
		c := New(3, WithContents(nil, pearl(4), stone(60)))
		require.NoError(t, e.Add(c, stone(10)))
		assert.Equal(t, []int{6, 4, 64}, counts(c))
	})

	t.Run("splits across empty slots by max stack", func(t *testing.T) {
		c := New(3)
		require.NoError(t, e.Add(c, pearl(40)))
		assert.Equal(t, []int{16, 16, 8}, counts(c))
	})

	t.Run("differing metadata does not merge", func(t *testing.T) {
		named := stone(10)
		named.Meta = &item.Meta{DisplayName: "Keystone"}
		c := New(2, WithContents(named))
		require.NoError(t, e.Add(c, stone(5)))
		assert.Equal(t, []int{10, 5}, counts(c))
		assert.False(t, c.Slot(1).HasMeta())
	})

	t.Run("stored stacks are copies", func(t *testing.T) {
		src := stone(5)
		c := New(1)
		require.NoError(t, e.Add(c, src))
		src.Count = 50
		assert.Equal(t, 5, c.Slot(0).Count)
	})

	t.Run("malformed slots count as empty", func(t *testing.T) {
		c := New(1, WithContents(item.New("unknown", 0, 3)))
		require.NoError(t, e.Add(c, stone(2)))
		assert.Equal(t, item.Kind("stone"), c.Slot(0).Kind)
	})

	t.Run("does not fit leaves container unchanged", func(t *testing.T) {
		c := New(2, WithContents(stone(60), pearl(16)))
		err := e.Add(c, stone(5))
		assert.ErrorIs(t, err, ErrInsufficientSpace)
		assert.Equal(t, []int{60, 16}, counts(c))
	})

	t.Run("preconditions", func(t *testing.T) {
		assert.ErrorIs(t, e.Add(nil, stone(1)), ErrNullContainer)
		assert.ErrorIs(t, e.Add(New(1), item.New("unknown", 0, 1)), ErrInvalidItem)
	})
}

func TestSpace(t *testing.T) {
	e := newTestEngine()
	c := New(3, WithContents(stone(60), pearl(10)))
	assert.Equal(t, 4+64, e.Space(c, stone(1)))
	assert.Equal(t, 6+16, e.Space(c, pearl(1)))
	assert.Equal(t, 0, e.Space(nil, stone(1)))
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "InsufficientSpace", Kind(wrap(ErrInsufficientSpace)))
	assert.Equal(t, "RemovalIncomplete", Kind(ErrRemovalIncomplete))
	assert.True(t, Severe(wrap(ErrRemovalIncomplete)))
	assert.False(t, Severe(ErrInsufficientQuantity))
}

func wrap(err error) error { return fmt.Errorf("moving stone: %w", err) }
