package transaction

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gravitas-games/stockpile/pkg/inventory"
)

// ErrUnknownContainer is returned when a container ID is not registered.
var ErrUnknownContainer = errors.New("transaction: container not found")

// Provider stores containers in memory by ID so host code can address them
// by name. It only guards its own map; the containers it hands out are not
// locked.
type Provider struct {
	mu         sync.RWMutex
	containers map[string]*inventory.Container
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{
		containers: make(map[string]*inventory.Container),
	}
}

// AddContainer registers c under its ID, replacing any previous entry.
func (p *Provider) AddContainer(c *inventory.Container) error {
	if c == nil {
		return inventory.ErrNullContainer
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.containers[c.ID] = c
	return nil
}

// Container retrieves a container by ID.
func (p *Provider) Container(id string) (*inventory.Container, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, exists := p.containers[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContainer, id)
	}
	return c, nil
}

// IDs returns the registered container IDs in sorted order.
func (p *Provider) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.containers))
	for id := range p.containers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
