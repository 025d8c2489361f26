package build

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Compilation holds the assets of a single build pass.
//
// Emit hooks may run their work on several goroutines, so every accessor is
// safe for concurrent use.
type Compilation struct {
	id string

	mu      sync.RWMutex
	assets  map[string]Asset
	deleted map[string]Asset
}

// NewCompilation creates an empty compilation with a fresh identifier.
func NewCompilation() *Compilation {
	return &Compilation{
		id:      uuid.NewString(),
		assets:  make(map[string]Asset),
		deleted: make(map[string]Asset),
	}
}

// ID returns the unique identifier of the build pass.
func (c *Compilation) ID() string {
	return c.id
}

// EmitAsset adds or replaces the asset stored under name.
func (c *Compilation) EmitAsset(name string, asset Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assets[name] = asset
	delete(c.deleted, name)
}

// Asset returns the asset stored under name.
func (c *Compilation) Asset(name string) (Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.assets[name]
	return a, ok
}

// Assets returns a snapshot of the current assets keyed by name.
func (c *Compilation) Assets() map[string]Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Asset, len(c.assets))
	for name, a := range c.assets {
		out[name] = a
	}
	return out
}

// DeleteAsset removes name from the output set. It reports whether the asset
// was present.
func (c *Compilation) DeleteAsset(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.assets[name]
	if !ok {
		return false
	}
	delete(c.assets, name)
	c.deleted[name] = a
	return true
}

// Names returns the names of the current assets in lexical order.
func (c *Compilation) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return sortedKeys(c.assets)
}

// Deleted returns the names of assets removed during this pass in lexical order.
func (c *Compilation) Deleted() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return sortedKeys(c.deleted)
}

// Len returns the number of current assets.
func (c *Compilation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.assets)
}

func (c *Compilation) deletedAssets() map[string]Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Asset, len(c.deleted))
	for name, a := range c.deleted {
		out[name] = a
	}
	return out
}

func sortedKeys(m map[string]Asset) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
