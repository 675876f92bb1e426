package fio

import "time"

// Config holds configuration for the FIO REST gateway.
type Config struct {
	// BaseURL is the FIO REST API root.
	BaseURL string `mapstructure:"base_url" default:"https://rest.fnar.net"`
	// Timeout bounds a single upstream request.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	// RequestsPerSecond is the sustained request rate shared by all callers.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
	// Burst is the number of requests allowed above the sustained rate.
	Burst int `mapstructure:"burst" default:"10"`
	// BreakerFailures is the number of consecutive transient failures that opens the circuit.
	BreakerFailures uint32 `mapstructure:"breaker_failures" default:"5"`
	// BreakerTimeout is how long the circuit stays open before probing again.
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout" default:"30s"`
}

// DefaultBaseURL is the public FIO REST endpoint.
const DefaultBaseURL = "https://rest.fnar.net"

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 5
	}
	if c.Burst <= 0 {
		c.Burst = 10
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	return c
}
