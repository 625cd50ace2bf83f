package registry

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/stockpile/pkg/item"
)

// Catalog is the on-disk form of a registry.
//
//	default_max_stack: 64
//	items:
//	  - kind: stone
//	    name: Stone
//	  - kind: ender_pearl
//	    max_stack: 16
type Catalog struct {
	DefaultMaxStack int               `yaml:"default_max_stack"`
	Items           []item.Definition `yaml:"items"`
}

// Load decodes a YAML catalog from rd and registers every entry in order.
// Entries without max_stack take the catalog's default_max_stack, then
// fallbackMaxStack, then item.DefaultMaxStack.
func Load(rd io.Reader, fallbackMaxStack int) (*Registry, error) {
	cat := Catalog{DefaultMaxStack: fallbackMaxStack}
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && err != io.EOF {
		return nil, fmt.Errorf("registry: parse catalog: %w", err)
	}
	return cat.Registry()
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string, fallbackMaxStack int) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open catalog: %w", err)
	}
	defer f.Close()
	return Load(f, fallbackMaxStack)
}

// Registry builds a registry from the catalog entries.
func (c Catalog) Registry() (*Registry, error) {
	def := c.DefaultMaxStack
	if def <= 0 {
		def = item.DefaultMaxStack
	}
	r, err := New()
	if err != nil {
		return nil, err
	}
	for i, d := range c.Items {
		if d.MaxStack == 0 {
			d.MaxStack = def
		}
		if err := r.Register(d); err != nil {
			return nil, fmt.Errorf("registry: catalog entry %d: %w", i, err)
		}
	}
	return r, nil
}
