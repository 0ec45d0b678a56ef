// Package assets loads sky textures from directories and in-memory
// filesystems, caching file contents.
package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/internal/logger"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

type root struct {
	name string
	fsys fs.FS
}

// Manager searches an ordered list of roots for assets.
// Roots are searched in reverse order (last added = highest priority).
type Manager struct {
	roots []root
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates an empty asset manager.
func NewManager() *Manager {
	return &Manager{cache: NewCache()}
}

// AddDir adds a directory on disk as a search root.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset root %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds a filesystem, such as an embed.FS or fstest.MapFS, as a search root.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, root{name: name, fsys: fsys})
	m.mu.Unlock()
	// A new root can shadow cached files.
	m.cache.Clear()
}

// Roots returns the root names in search order, highest priority first.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.roots))
	for i := len(m.roots) - 1; i >= 0; i-- {
		names = append(names, m.roots[i].name)
	}
	return names
}

// Clean normalizes an asset path: forward slashes, no leading slash.
func Clean(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}

// Load returns the contents of an asset.
func (m *Manager) Load(name string) ([]byte, error) {
	key := Clean(name)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i].fsys, key)
		if err == nil {
			m.cache.Set(key, data)
			logger.Debug("asset loaded",
				zap.String("path", key),
				zap.String("root", m.roots[i].name),
				zap.Int("bytes", len(data)))
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", key, m.roots[i].name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// LoadImage loads and decodes an image asset (TGA, PNG, JPEG, BMP or WebP).
// Images larger than maxSize on either edge are downscaled; 0 keeps the original size.
func (m *Manager) LoadImage(name string, maxSize int) (*image.NRGBA, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if maxSize > 0 {
		img = texture.Resize(img, maxSize)
	}
	return img, nil
}

// LoadSampler loads an image asset wrapped as a texture sampler.
func (m *Manager) LoadSampler(name string, maxSize int, wrap texture.WrapMode) (*texture.Image, error) {
	img, err := m.LoadImage(name, maxSize)
	if err != nil {
		return nil, err
	}
	return texture.NewImage(Clean(name), img, wrap), nil
}

// Cache returns the manager's byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops every root and cached file.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = nil
	m.cache.Clear()
}

// Cache is an in-memory cache of loaded asset bytes.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	data, ok := c.data[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}
