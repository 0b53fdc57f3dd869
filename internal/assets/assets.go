// Package assets handles rig loading and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/Faultbox/midgard-skel/pkg/formats"
)

// MannequinPath is the path of the built-in sample rig.
const MannequinPath = "rigs/mannequin.yaml"

//go:embed rigs/*.yaml
var builtin embed.FS

// Manager loads rig files from a stack of file systems.
type Manager struct {
	sources []fs.FS
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager with the built-in rigs as its lowest
// priority source.
func NewManager() *Manager {
	return &Manager{
		sources: []fs.FS{builtin},
		cache:   NewCache(),
	}
}

// AddDir adds a directory to the manager.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds a file system to the manager.
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.mu.Unlock()
}

// Load loads a file from the sources.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("file not found: %s", name)
}

// LoadRig resolves a rig by name. An empty name is the built-in mannequin;
// a path to an existing file is read from disk; anything else is looked up
// in the sources.
func (m *Manager) LoadRig(name string) (*formats.Rig, error) {
	if name == "" {
		name = MannequinPath
	} else if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return formats.ParseRigFile(name)
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	rig, err := formats.ParseRig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rig, nil
}

// Close drops every added source and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = m.sources[:1]
	m.cache.Clear()
}

// Mannequin returns the built-in sample rig.
func Mannequin() (*formats.Rig, error) {
	data, err := builtin.ReadFile(MannequinPath)
	if err != nil {
		return nil, err
	}
	return formats.ParseRig(data)
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
