package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/fnkit/pipeline"
)

// Catalog provides named function lookup for declarative pipelines.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Default creates a catalog holding the builtin functions.
func Default() *Catalog {
	c := New()
	if err := c.Register(builtins()...); err != nil {
		panic(err)
	}
	return c
}

// Register adds entries, replacing any entry with the same name.
func (c *Catalog) Register(entries ...Entry) error {
	for _, e := range entries {
		if e.Name == "" || !e.valid() {
			return fmt.Errorf("catalog: invalid entry %q", e.Name)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.entries[e.Name] = e
	}
	return nil
}

// Get retrieves an entry by name.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// List returns all entries sorted by name.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted names of entries of the given kind.
func (c *Catalog) Names(kind pipeline.Kind) []string {
	var names []string
	for _, e := range c.List() {
		if e.Kind == kind {
			names = append(names, e.Name)
		}
	}
	return names
}
