package config

import (
	"fmt"
	"time"
)

// Config holds all runtime configuration
type Config struct {
	// Azure settings
	CallTimeout  time.Duration
	ARMRateLimit int

	// Scan settings
	ExcludeSubscriptions []string
	ExcludeNamespaces    []string

	// Concurrency settings
	Concurrency int

	// Output settings
	OutputDir string

	// Watch settings
	Interval    time.Duration
	MetricsPort int

	// Operational flags
	Verbose bool
	DryRun  bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		CallTimeout:          2 * time.Minute,
		ARMRateLimit:         10,
		ExcludeSubscriptions: []string{},
		ExcludeNamespaces:    []string{},
		Concurrency:          1,
		OutputDir:            "",
		Interval:             time.Minute,
		MetricsPort:          2112,
		Verbose:              false,
		DryRun:               false,
	}
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout)
	}
	if c.ARMRateLimit < 1 {
		return fmt.Errorf("ARM rate limit must be >= 1, got %d", c.ARMRateLimit)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.Interval < 10*time.Second {
		return fmt.Errorf("interval must be at least 10s, got %s", c.Interval)
	}
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port must be in 1..65535, got %d", c.MetricsPort)
	}
	return nil
}
