// Package cache is the in-process TTL cache for FIO data.
//
// A Cache is constructed once and injected into its consumers. Per-user slots
// are keyed by lower-cased username; the material catalog lives in a keyless
// global slot. The backing store is jellydator/ttlcache with an optional
// capacity bound (least recently used entries are evicted first).
//
// # Usage
//
//	c := cache.New(cfg.Cache)
//	c.SetStorage("Alice", storages)
//	storages, ok := c.Storage("alice")
package cache
