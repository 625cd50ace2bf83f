package item

import (
	"maps"
	"slices"
)

// Meta is the opaque data attached to a stack: display name, lore lines,
// enchantment levels keyed by slug, and free-form tags. The inventory engine
// never reads individual fields; it only asks whether two Metas are equal.
type Meta struct {
	DisplayName  string            `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Lore         []string          `json:"lore,omitempty" yaml:"lore,omitempty"`
	Enchantments map[string]int    `json:"enchantments,omitempty" yaml:"enchantments,omitempty"`
	Tags         map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Equal reports structural equality. Two nil Metas are equal; nil and non-nil
// are not. Empty and nil collections compare equal.
func (m *Meta) Equal(o *Meta) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.DisplayName == o.DisplayName &&
		slices.Equal(m.Lore, o.Lore) &&
		maps.Equal(m.Enchantments, o.Enchantments) &&
		maps.Equal(m.Tags, o.Tags)
}

// Clone returns a deep copy of m. Clone of nil is nil.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	return &Meta{
		DisplayName:  m.DisplayName,
		Lore:         slices.Clone(m.Lore),
		Enchantments: maps.Clone(m.Enchantments),
		Tags:         maps.Clone(m.Tags),
	}
}

// Name returns the display name of s, or "" when s has no metadata or no
// display name.
func Name(s *Stack) string {
	if !s.HasMeta() {
		return ""
	}
	return s.Meta.DisplayName
}

// SetName sets the display name of s. It does nothing and returns false when
// s has no metadata or name is empty.
func SetName(s *Stack, name string) bool {
	if !s.HasMeta() || name == "" {
		return false
	}
	s.Meta.DisplayName = name
	return true
}

// Lore returns the lore lines of s. The result is never nil.
func Lore(s *Stack) []string {
	if !s.HasMeta() || s.Meta.Lore == nil {
		return []string{}
	}
	return s.Meta.Lore
}

// AddLore appends lines to the lore of s, or inserts them in front of the
// existing lore when prepend is set. Lines keep their given order either way.
func AddLore(s *Stack, prepend bool, lines ...string) bool {
	if !s.HasMeta() || lines == nil {
		return false
	}
	if s.Meta.Lore == nil {
		s.Meta.Lore = slices.Clone(lines)
		return true
	}
	if prepend {
		s.Meta.Lore = slices.Concat(lines, s.Meta.Lore)
	} else {
		s.Meta.Lore = append(s.Meta.Lore, lines...)
	}
	return true
}

// SetLore replaces the lore of s.
func SetLore(s *Stack, lines ...string) bool {
	if !s.HasMeta() || lines == nil {
		return false
	}
	s.Meta.Lore = slices.Clone(lines)
	return true
}
