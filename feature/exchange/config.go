package exchange

import "time"

// Config holds exchange price sync settings.
type Config struct {
	// Interval is the time between scheduled price syncs.
	Interval time.Duration `mapstructure:"interval" default:"30m"`
	// RunOnStart triggers one sync as soon as the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"true"`
	// Archive uploads every fetched snapshot to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// ArchiveRetention is how many snapshots are kept; 0 keeps all.
	ArchiveRetention int `mapstructure:"archive_retention" default:"336"`
}
