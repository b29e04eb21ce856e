// Package cache keeps recent scan snapshots keyed by the content hash of
// their tree source so later requests can reuse them without another round
// trip to the device.
package cache

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/model"
)

const (
	DefaultTTL      = 300 * time.Second
	DefaultMaxBytes = 50 << 20
)

// Entry is one cached scan.
type Entry struct {
	Hash      string
	Image     []byte
	Source    string
	Window    model.Size
	CreatedAt time.Time
}

// Size is the number of bytes the entry is charged against the budget.
func (e *Entry) Size() int64 {
	return int64(len(e.Image) + len(e.Source))
}

// Hash returns the content hash used as the cache key for a tree source.
func Hash(source string) string {
	return strconv.FormatUint(xxhash.Sum64String(source), 16)
}

// Options configures a ScanCache. Zero values select the defaults.
type Options struct {
	TTL      time.Duration
	MaxBytes int64
	// Now overrides the clock, for tests.
	Now    func() time.Time
	Logger *zap.Logger
}

// ScanCache is a TTL and byte-budget bounded store of scans plus a separate
// "last scan" slot. Eviction is oldest-inserted first. It is safe for
// concurrent use.
type ScanCache struct {
	ttl      time.Duration
	maxBytes int64
	now      func() time.Time
	log      *zap.Logger

	mu      sync.Mutex
	entries *orderedmap.OrderedMap[string, *Entry]
	size    int64
	last    *Entry
}

// New creates a cache.
func New(opts Options) *ScanCache {
	c := &ScanCache{
		ttl:      opts.TTL,
		maxBytes: opts.MaxBytes,
		now:      opts.Now,
		log:      opts.Logger,
		entries:  orderedmap.New[string, *Entry](),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.maxBytes <= 0 {
		c.maxBytes = DefaultMaxBytes
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func (c *ScanCache) live(e *Entry) bool {
	return c.now().Sub(e.CreatedAt) < c.ttl
}

// Save stores a scan under hash and makes it the last scan. An empty hash
// only updates the last-scan slot. Saving an existing hash replaces the
// entry and moves it to the back of the eviction order.
func (c *ScanCache) Save(hash string, image []byte, source string, window model.Size) *Entry {
	e := &Entry{Hash: hash, Image: image, Source: source, Window: window, CreatedAt: c.now()}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = e
	if hash == "" {
		return e
	}
	c.removeLocked(hash)

	if e.Size() > c.maxBytes {
		c.log.Warn("scan larger than cache budget, not cached",
			zap.String("hash", hash), zap.Int64("size", e.Size()), zap.Int64("max_bytes", c.maxBytes))
		return e
	}
	for c.size+e.Size() > c.maxBytes {
		oldest := c.entries.Oldest()
		if oldest == nil {
			break
		}
		c.log.Debug("evicting cached scan", zap.String("hash", oldest.Key), zap.Int64("size", oldest.Value.Size()))
		c.removeLocked(oldest.Key)
	}
	c.entries.Set(hash, e)
	c.size += e.Size()
	return e
}

func (c *ScanCache) removeLocked(hash string) {
	if old, ok := c.entries.Delete(hash); ok {
		c.size -= old.Size()
	}
}

// Get returns the live entry for hash. Expired entries are dropped.
func (c *ScanCache) Get(hash string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(hash)
	if !ok {
		return nil, false
	}
	if !c.live(e) {
		c.removeLocked(hash)
		return nil, false
	}
	return e, true
}

// Last returns the most recent scan if it has not expired.
func (c *ScanCache) Last() (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil || !c.live(c.last) {
		return nil, false
	}
	return c.last, true
}

// Clear drops every entry and the last-scan slot.
func (c *ScanCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.New[string, *Entry]()
	c.size = 0
	c.last = nil
}

// Stats describes the resident contents of the cache.
type Stats struct {
	Entries  int   `yaml:"entries"   json:"entries"`
	Bytes    int64 `yaml:"bytes"     json:"bytes"`
	MaxBytes int64 `yaml:"max_bytes" json:"max_bytes"`
	HasLast  bool  `yaml:"has_last"  json:"has_last"`
}

// Stats returns a snapshot of the cache counters.
func (c *ScanCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: c.entries.Len(), Bytes: c.size, MaxBytes: c.maxBytes, HasLast: c.last != nil}
}

// Keys returns the cached hashes, oldest first.
func (c *ScanCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, c.entries.Len())
	for p := c.entries.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}
