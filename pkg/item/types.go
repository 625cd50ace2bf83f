// Package item describes item stacks and the predicates the inventory engine
// uses to decide whether a stack is well-formed and whether two stacks are
// interchangeable. It does not know any concrete item catalogue; kinds are
// resolved through a Resolver supplied by the host.
package item

// Kind identifies an item type. The engine only compares kinds for equality.
type Kind string

// Variant is the secondary discriminator attached to a Kind (damage value,
// colour code, sub-type). Negative variants are never valid.
type Variant int16

// DefaultMaxStack is used when a definition does not declare a stack limit.
const DefaultMaxStack = 64

// Stack is a quantity of one kind/variant held in one place.
type Stack struct {
	Kind    Kind    `json:"kind" yaml:"kind"`
	Variant Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
	Count   int     `json:"count" yaml:"count"`
	// Meta is optional attached data. A nil Meta means the stack carries no
	// metadata at all, which is distinct from an empty Meta.
	Meta *Meta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Definition is what a Resolver knows about a kind/variant pair.
type Definition struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	Variant   Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
	NumericID int64   `json:"numericId,omitempty" yaml:"numeric_id,omitempty"`
	Name      string  `json:"name,omitempty" yaml:"name,omitempty"`
	Category  string  `json:"category,omitempty" yaml:"category,omitempty"`
	MaxStack  int     `json:"maxStack,omitempty" yaml:"max_stack,omitempty"`
}

// StackLimit returns MaxStack, falling back to DefaultMaxStack.
func (d Definition) StackLimit() int {
	if d.MaxStack <= 0 {
		return DefaultMaxStack
	}
	return d.MaxStack
}

// Resolver looks up the definition of a kind/variant pair.
type Resolver interface {
	Resolve(kind Kind, variant Variant) (Definition, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(kind Kind, variant Variant) (Definition, bool)

// Resolve calls f(kind, variant).
func (f ResolverFunc) Resolve(kind Kind, variant Variant) (Definition, bool) {
	return f(kind, variant)
}

// New returns a stack of count units of kind/variant without metadata.
func New(kind Kind, variant Variant, count int) *Stack {
	return &Stack{Kind: kind, Variant: variant, Count: count}
}

// Clone returns a deep copy of s. Clone of nil is nil.
func (s *Stack) Clone() *Stack {
	if s == nil {
		return nil
	}
	out := *s
	out.Meta = s.Meta.Clone()
	return &out
}

// WithCount returns a deep copy of s holding count units.
func (s *Stack) WithCount(count int) *Stack {
	out := s.Clone()
	if out != nil {
		out.Count = count
	}
	return out
}

// HasMeta reports whether the stack carries metadata.
func (s *Stack) HasMeta() bool {
	return s != nil && s.Meta != nil
}
