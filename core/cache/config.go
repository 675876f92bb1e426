package cache

import "time"

// Config holds configuration for the in-process TTL cache.
type Config struct {
	// TTL is how long an entry stays readable after it is written.
	TTL time.Duration `mapstructure:"ttl" default:"10m"`
	// Capacity bounds the number of entries; the least recently used entry is evicted first. 0 disables the bound.
	Capacity uint64 `mapstructure:"capacity" default:"10000"`
}
