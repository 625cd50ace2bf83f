package scenario

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/stockpile/pkg/inventory"
	"github.com/gravitas-games/stockpile/pkg/item"
)

// Document is a scenario file: containers to create and transactions to run
// against them in order.
type Document struct {
	Name       string          `yaml:"name"`
	Containers []ContainerSpec `yaml:"containers"`
	Steps      []Step          `yaml:"steps"`
}

// ContainerSpec describes one container and its initial slots.
type ContainerSpec struct {
	ID       string            `yaml:"id"`
	Owner    inventory.OwnerID `yaml:"owner"`
	Capacity int               `yaml:"capacity"`
	Slots    []StackSpec       `yaml:"slots"`
}

// Step is one manager call. Container is the first (or only) container; With
// names the second container for swap and exchange. Items leave Container,
// WithItems leave With. Expect is "ok", a failure kind name such as
// "InsufficientSpace", or empty for no expectation.
type Step struct {
	Op        string      `yaml:"op"`
	Container string      `yaml:"container"`
	Items     []StackSpec `yaml:"items"`
	With      string      `yaml:"with"`
	WithItems []StackSpec `yaml:"with_items"`
	Expect    string      `yaml:"expect"`
}

// StackSpec is a stack written either as a mapping with item.Stack fields or
// in the short form "kind[:variant] [xCOUNT]". An empty string or "-" is an
// empty slot.
type StackSpec struct {
	Stack *item.Stack
}

// UnmarshalYAML accepts both the short and the mapping form.
func (s *StackSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		st, err := ParseStack(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		s.Stack = st
		return nil
	}
	var st item.Stack
	if err := node.Decode(&st); err != nil {
		return err
	}
	s.Stack = &st
	return nil
}

// ParseStack parses the short stack form. The count defaults to 1.
func ParseStack(v string) (*item.Stack, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "-" {
		return nil, nil
	}
	fields := strings.Fields(v)
	if len(fields) > 2 {
		return nil, fmt.Errorf("scenario: bad stack %q", v)
	}

	count := 1
	if len(fields) == 2 {
		n, err := strconv.Atoi(strings.TrimPrefix(fields[1], "x"))
		if err != nil {
			return nil, fmt.Errorf("scenario: bad count in %q: %w", v, err)
		}
		count = n
	}

	kind, variantStr, hasVariant := strings.Cut(fields[0], ":")
	var variant item.Variant
	if hasVariant {
		n, err := strconv.ParseInt(variantStr, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("scenario: bad variant in %q: %w", v, err)
		}
		variant = item.Variant(n)
	}
	return item.New(item.Kind(kind), variant, count), nil
}

// FormatStack renders s in the short form; nil renders as "-".
func FormatStack(s *item.Stack) string {
	if s == nil {
		return "-"
	}
	var b strings.Builder
	b.WriteString(string(s.Kind))
	if s.Variant != 0 {
		fmt.Fprintf(&b, ":%d", s.Variant)
	}
	fmt.Fprintf(&b, " x%d", s.Count)
	if name := item.Name(s); name != "" {
		fmt.Fprintf(&b, " %q", name)
	}
	return b.String()
}

// FormatContainer renders every slot of c in order.
func FormatContainer(c *inventory.Container) string {
	parts := make([]string, c.Capacity())
	for i := range parts {
		parts[i] = FormatStack(c.Slot(i))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Parse decodes a scenario document.
func Parse(rd io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	return &doc, nil
}

// ParseFile reads a scenario document from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func stacks(specs []StackSpec) []*item.Stack {
	if specs == nil {
		return nil
	}
	out := make([]*item.Stack, len(specs))
	for i, s := range specs {
		out[i] = s.Stack
	}
	return out
}
