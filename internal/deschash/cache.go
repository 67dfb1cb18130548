// Package deschash memoizes rendered pool descriptors (field, method,
// proto signatures) keyed by xxHash64 of their pool index, so a
// frequently-referenced method or field is rendered once per Dex rather
// than once per call site. Grounded on internal/hash's xxhash.Sum64String
// wrapper, extended here to a concurrency-safe lookup cache.
package deschash

import (
	"strconv"
	"sync"

	"github.com/arloliu/dex2smali/internal/hash"
)

// Kind distinguishes which pool a cached descriptor came from, since
// field/method/proto indices overlap numerically.
type Kind byte

const (
	KindField Kind = iota
	KindMethod
	KindProto
	KindType
	KindCallSite
	KindMethodHandle
)

// Cache memoizes Render(idx) results keyed by (kind, idx). Safe for
// concurrent use by the bounded worker pool disasm fans out across
// classes, since pool descriptors are read-only once a Dex is parsed.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]string
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[uint64]string)}
}

func key(kind Kind, idx uint32) uint64 {
	var buf [1 + 10]byte
	buf[0] = byte(kind)
	n := strconv.AppendUint(buf[1:1], uint64(idx), 10)
	return hash.ID(string(buf[:1+len(n)]))
}

// Get returns the cached rendering for (kind, idx), if present.
func (c *Cache) Get(kind Kind, idx uint32) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[key(kind, idx)]
	return s, ok
}

// GetOrRender returns the cached rendering for (kind, idx), computing and
// storing it via render on a miss. render is only ever invoked once per
// (kind, idx) even under concurrent callers racing the same miss, except
// for the harmless case where two goroutines both miss and both render;
// the second render's result is simply discarded in favor of whichever
// finished first.
func (c *Cache) GetOrRender(kind Kind, idx uint32, render func() (string, error)) (string, error) {
	if s, ok := c.Get(kind, idx); ok {
		return s, nil
	}
	s, err := render()
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	if existing, ok := c.entries[key(kind, idx)]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.entries[key(kind, idx)] = s
	c.mu.Unlock()
	return s, nil
}

// Len reports how many descriptors are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
