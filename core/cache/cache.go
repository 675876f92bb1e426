package cache

import (
	"strings"
	"time"

	"prunderground/core/metrics"

	"github.com/jellydator/ttlcache/v3"
)

// Namespace names a cache slot.
type Namespace string

const (
	Production       Namespace = "production"
	Storage          Namespace = "storage"
	Sites            Namespace = "sites"
	Warehouses       Namespace = "warehouses"
	Suggestions      Namespace = "suggestions"
	StorageLocations Namespace = "storage_locations"
	LastRefresh      Namespace = "last_refresh"

	// AllMaterials is the global material catalog slot.
	AllMaterials Namespace = "all_materials"

	DefaultTTL = 10 * time.Minute
)

// UserNamespaces are the per-user slots, in reporting order.
var UserNamespaces = []Namespace{Production, Storage, Sites, Warehouses, Suggestions, StorageLocations, LastRefresh}

type entry struct {
	payload   any
	expiresAt time.Time
}

// Cache is a concurrency-safe TTL cache keyed by namespace and lower-cased key.
// Entries are replaced wholesale and never returned once expired. There is no
// background sweeper; expired entries linger until overwritten, invalidated or
// evicted by the capacity bound.
type Cache struct {
	store *ttlcache.Cache[string, entry]
	ttl   time.Duration
	now   func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock replaces the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache.
func New(cfg Config, opts ...Option) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	storeOpts := []ttlcache.Option[string, entry]{
		// Expiry is checked against the cache clock; the store keeps entries
		// for a second TTL so Status can still report them as expired.
		ttlcache.WithTTL[string, entry](2 * ttl),
		ttlcache.WithDisableTouchOnHit[string, entry](),
	}
	if cfg.Capacity > 0 {
		storeOpts = append(storeOpts, ttlcache.WithCapacity[string, entry](cfg.Capacity))
	}

	c := &Cache{
		store: ttlcache.New(storeOpts...),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func userKey(ns Namespace, key string) string {
	return string(ns) + ":" + strings.ToLower(key)
}

func globalKey(ns Namespace) string {
	return string(ns)
}

func (c *Cache) lookup(ns Namespace, k string) (entry, bool) {
	item := c.store.Get(k)
	if item == nil {
		metrics.RecordCacheLookup(string(ns), false)
		return entry{}, false
	}
	e := item.Value()
	if !c.now().Before(e.expiresAt) {
		metrics.RecordCacheLookup(string(ns), false)
		return entry{}, false
	}
	metrics.RecordCacheLookup(string(ns), true)
	return e, true
}

func (c *Cache) put(k string, payload any) {
	c.store.Set(k, entry{payload: payload, expiresAt: c.now().Add(c.ttl)}, ttlcache.DefaultTTL)
}

// Get returns the payload stored under (ns, key) if it has not expired.
func (c *Cache) Get(ns Namespace, key string) (any, bool) {
	e, ok := c.lookup(ns, userKey(ns, key))
	return e.payload, ok
}

// Set stores payload under (ns, key), replacing any previous entry.
func (c *Cache) Set(ns Namespace, key string, payload any) {
	c.put(userKey(ns, key), payload)
}

// GetGlobal returns the payload of a keyless slot.
func (c *Cache) GetGlobal(ns Namespace) (any, bool) {
	e, ok := c.lookup(ns, globalKey(ns))
	return e.payload, ok
}

// SetGlobal stores payload in a keyless slot.
func (c *Cache) SetGlobal(ns Namespace, payload any) {
	c.put(globalKey(ns), payload)
}

// Invalidate drops every per-user slot for key.
func (c *Cache) Invalidate(key string) {
	for _, ns := range UserNamespaces {
		c.store.Delete(userKey(ns, key))
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Lookup returns the payload under (ns, key) as T. A payload of another type reads as absent.
func Lookup[T any](c *Cache, ns Namespace, key string) (T, bool) {
	var zero T
	v, ok := c.Get(ns, key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
