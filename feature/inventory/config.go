package inventory

import "time"

// Config holds inventory sync settings.
type Config struct {
	// TTL is how long a user's synced availability counts as fresh.
	TTL time.Duration `mapstructure:"ttl" default:"10m"`
}
