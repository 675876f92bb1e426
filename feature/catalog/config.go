package catalog

import "time"

// Config holds staleness gates for the slowly changing catalogs.
type Config struct {
	// PlanetTTL is how long planet data stays fresh. Players can rename planets.
	PlanetTTL time.Duration `mapstructure:"planet_ttl" default:"336h"`
	// MaterialTTL is how long material data stays fresh.
	MaterialTTL time.Duration `mapstructure:"material_ttl" default:"720h"`
}
