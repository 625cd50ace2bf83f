package item

// Rules answers validity and equality questions about stacks using a
// Resolver for kind lookups. The zero value resolves nothing, so every stack
// is invalid under it.
type Rules struct {
	resolver Resolver
}

// NewRules returns Rules backed by resolver.
func NewRules(resolver Resolver) *Rules {
	return &Rules{resolver: resolver}
}

func (r *Rules) lookup(kind Kind, variant Variant) (Definition, bool) {
	if r == nil || r.resolver == nil || kind == "" || variant < 0 {
		return Definition{}, false
	}
	return r.resolver.Resolve(kind, variant)
}

// IsResolvable reports whether s is present and its kind/variant pair is
// known. The count is ignored.
func (r *Rules) IsResolvable(s *Stack) bool {
	if s == nil {
		return false
	}
	_, ok := r.lookup(s.Kind, s.Variant)
	return ok
}

// IsValid reports whether s is present, resolvable and holds a positive count.
func (r *Rules) IsValid(s *Stack) bool {
	return r.IsResolvable(s) && s.Count > 0
}

// IsValidSet reports whether stacks is non-empty and every element is valid.
func (r *Rules) IsValidSet(stacks []*Stack) bool {
	if len(stacks) == 0 {
		return false
	}
	for _, s := range stacks {
		if !r.IsValid(s) {
			return false
		}
	}
	return true
}

// SameKind reports whether both stacks are valid and share kind and variant.
// Count and metadata are ignored.
func (r *Rules) SameKind(a, b *Stack) bool {
	if !r.IsValid(a) || !r.IsValid(b) {
		return false
	}
	return a.Kind == b.Kind && a.Variant == b.Variant
}

// Identical reports Similar plus equal counts: same kind, same metadata and
// same quantity.
func (r *Rules) Identical(a, b *Stack) bool {
	return r.Similar(a, b) && a.Count == b.Count
}

// Similar reports SameKind plus equal metadata. A stack is always similar to
// itself.
func (r *Rules) Similar(a, b *Stack) bool {
	if !r.SameKind(a, b) {
		return false
	}
	if a == b {
		return true
	}
	if a.HasMeta() != b.HasMeta() {
		return false
	}
	return a.Meta.Equal(b.Meta)
}

// MaxStack returns the per-slot limit for the kind of s, or 0 when s cannot
// be resolved.
func (r *Rules) MaxStack(s *Stack) int {
	if s == nil {
		return 0
	}
	def, ok := r.lookup(s.Kind, s.Variant)
	if !ok {
		return 0
	}
	return def.StackLimit()
}
