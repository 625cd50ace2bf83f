package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gravitas-games/stockpile/pkg/item"
)

// Key identifies a registered definition.
type Key struct {
	Kind    item.Kind
	Variant item.Variant
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.Variant)
}

// Registry is an append-only catalogue of item definitions keyed by
// kind/variant, with numeric handles for compact references. It is populated
// at startup and read by the inventory engine through item.Resolver.
type Registry struct {
	mu     sync.RWMutex
	items  map[Key]item.Definition
	byID   map[int64]Key
	nextID int64
}

var (
	// ErrDuplicate is returned when a kind/variant pair is registered twice.
	ErrDuplicate = errors.New("registry: definition already registered")
	// ErrMissingKind is returned for definitions without a kind.
	ErrMissingKind = errors.New("registry: definition missing kind")
)

// New constructs an empty registry and seeds it with defs. Seeding stops at
// the first definition that cannot be registered.
func New(defs ...item.Definition) (*Registry, error) {
	r := &Registry{
		items: make(map[Key]item.Definition, len(defs)),
		byID:  make(map[int64]Key, len(defs)),
	}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is New that panics on error. Intended for static catalogues.
func MustNew(defs ...item.Definition) *Registry {
	r, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register appends a definition. Existing entries are never replaced. A zero
// NumericID is assigned the next free handle.
func (r *Registry) Register(def item.Definition) error {
	if def.Kind == "" {
		return ErrMissingKind
	}
	if def.Variant < 0 {
		return fmt.Errorf("registry: negative variant for %s: %d", def.Kind, def.Variant)
	}
	if def.MaxStack < 0 {
		return fmt.Errorf("registry: negative max stack for %s: %d", def.Kind, def.MaxStack)
	}
	key := Key{Kind: def.Kind, Variant: def.Variant}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[Key]item.Definition)
	}
	if r.byID == nil {
		r.byID = make(map[int64]Key)
	}

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, key)
	}

	if def.NumericID == 0 {
		r.nextID++
		def.NumericID = r.nextID
	} else {
		if def.NumericID < 0 {
			return fmt.Errorf("registry: numeric id must be positive: %s", key)
		}
		if owner, collision := r.byID[def.NumericID]; collision {
			return fmt.Errorf("registry: numeric id %d already assigned to %s", def.NumericID, owner)
		}
		if def.NumericID > r.nextID {
			r.nextID = def.NumericID
		}
	}

	r.items[key] = def
	r.byID[def.NumericID] = key
	return nil
}

// Lookup returns the definition for kind/variant, if present.
func (r *Registry) Lookup(kind item.Kind, variant item.Variant) (item.Definition, bool) {
	if r == nil {
		return item.Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.items[Key{Kind: kind, Variant: variant}]
	return def, ok
}

// Resolve implements item.Resolver.
func (r *Registry) Resolve(kind item.Kind, variant item.Variant) (item.Definition, bool) {
	return r.Lookup(kind, variant)
}

// LookupByNumericID returns a definition by its numeric handle.
func (r *Registry) LookupByNumericID(id int64) (item.Definition, bool) {
	if r == nil {
		return item.Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byID[id]
	if !ok {
		return item.Definition{}, false
	}
	def, exists := r.items[key]
	return def, exists
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Export copies registry contents into a slice sorted by numeric handle.
func (r *Registry) Export() []item.Definition {
	if r == nil {
		return []item.Definition{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]item.Definition, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NumericID < out[j].NumericID
	})
	return out
}
