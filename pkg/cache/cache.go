// Package cache holds file contents read by the configurator, keyed by path.
//
// Entries are added on first read when caching is requested and stay until
// they are removed explicitly: there is no TTL and no change detection.
package cache

import (
	"sort"
	"sync"
)

// Store defines the contract for content caches.
type Store interface {
	// Get returns the cached content for path.
	Get(path string) (string, bool)

	// Set stores content for path unless an entry already exists. It reports
	// whether the content was stored; the first writer wins.
	Set(path, content string) bool

	// Delete removes the entry for path. Returns true if it existed.
	Delete(path string) bool

	// Clear removes all entries.
	Clear()

	// Len returns the number of cached entries.
	Len() int

	// Paths returns the cached paths in sorted order.
	Paths() []string
}

// Memory is a thread-safe in-memory Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates a new empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]string),
	}
}

// Get returns the cached content for path.
func (m *Memory) Get(path string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.entries[path]
	return content, ok
}

// Set stores content for path unless it is already cached.
func (m *Memory) Set(path, content string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[path]; exists {
		return false
	}
	m.entries[path] = content
	return true
}

// Delete removes the entry for path.
func (m *Memory) Delete(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[path]; exists {
		delete(m.entries, path)
		return true
	}
	return false
}

// Clear removes all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]string)
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Paths returns the cached paths in sorted order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
