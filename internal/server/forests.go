package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// ErrForestNotFound is returned for ids that were never issued or have been
// evicted.
var ErrForestNotFound = errors.New("forest not found")

// DefaultForestCapacity is the number of forests a server remembers.
const DefaultForestCapacity = 32

// ForestEntry is a built forest and the image it came from.
type ForestEntry struct {
	ID      string
	Path    string
	Source  string
	Forest  *hierarchy.Forest
	Created time.Time
}

// ForestCache keeps recently built forests so follow-up tool calls (render,
// crop, export) can refer to them by id instead of rebuilding.
//
// When full, the oldest entry is evicted. ForestCache is safe for
// concurrent use.
type ForestCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]*ForestEntry
	order    []string
}

// NewForestCache returns a cache holding at most capacity forests.
// Values below 1 select DefaultForestCapacity.
func NewForestCache(capacity int) *ForestCache {
	if capacity < 1 {
		capacity = DefaultForestCapacity
	}
	return &ForestCache{
		capacity: capacity,
		entries:  make(map[string]*ForestEntry),
	}
}

// Put stores f under a fresh id and returns the new entry.
func (c *ForestCache) Put(path, source string, f *hierarchy.Forest) *ForestEntry {
	e := &ForestEntry{
		ID:      uuid.NewString(),
		Path:    path,
		Source:  source,
		Forest:  f,
		Created: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.order) >= c.capacity {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.entries[e.ID] = e
	c.order = append(c.order, e.ID)
	return e
}

// Get returns the entry for id.
func (c *ForestCache) Get(id string) (*ForestEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrForestNotFound, id)
	}
	return e, nil
}

// Len reports the number of cached forests.
func (c *ForestCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
