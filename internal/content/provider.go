package content

import (
	"slices"
	"sync"
)

// Provider enables runtime hot-swap of the catalog. Readers always see a
// complete catalog; Replace takes effect for the next caller of Get.
type Provider struct {
	mu      sync.RWMutex
	catalog *Catalog
	version int
	subs    []func(*Catalog)
}

// NewProvider creates a provider holding catalog.
func NewProvider(catalog *Catalog) *Provider {
	return &Provider{catalog: catalog, version: 1}
}

// Get returns the current catalog.
func (p *Provider) Get() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog
}

// Version increases by one on every Replace.
func (p *Provider) Version() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Replace swaps the catalog and notifies OnChange callbacks.
func (p *Provider) Replace(catalog *Catalog) {
	p.mu.Lock()
	p.catalog = catalog
	p.version++
	subs := slices.Clone(p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(catalog)
	}
}

// OnChange registers fn to run after every Replace.
func (p *Provider) OnChange(fn func(*Catalog)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}
