package item

// Stackify splits amount units of the kind of s into stacks of at most
// maxStack units: full stacks first, then one remainder stack. The count on s
// is ignored. Stackify returns nil when s is invalid, amount < 1 or
// maxStack < 1.
func (r *Rules) Stackify(s *Stack, amount int) []*Stack {
	if !r.IsValid(s) || amount < 1 {
		return nil
	}
	return Split(s, amount, r.MaxStack(s))
}

// Split is Stackify with an explicit stack limit and no validity check.
func Split(s *Stack, amount, maxStack int) []*Stack {
	if s == nil || amount < 1 || maxStack < 1 {
		return nil
	}
	full := amount / maxStack
	rem := amount % maxStack
	out := make([]*Stack, 0, full+1)
	for i := 0; i < full; i++ {
		out = append(out, s.WithCount(maxStack))
	}
	if rem != 0 {
		out = append(out, s.WithCount(rem))
	}
	return out
}

// Duplicate returns a sanitised copy of s: nil becomes an empty stack, a
// negative variant becomes 0 and a count below 1 becomes 1.
func Duplicate(s *Stack) *Stack {
	if s == nil {
		return &Stack{}
	}
	out := s.Clone()
	if out.Variant < 0 {
		out.Variant = 0
	}
	if out.Count < 1 {
		out.Count = 1
	}
	return out
}
