// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PoolBaseURL is the base URL of the pool and progress source.
	PoolBaseURL string `koanf:"pool_base_url"`

	// CategoryBaseURL is the base URL of the class category source.
	CategoryBaseURL string `koanf:"category_base_url"`

	// PoolTypes lists the raid pools to serve, in display order.
	PoolTypes []string `koanf:"pool_types"`

	// Categories lists the class categories merged into the mapping.
	Categories []string `koanf:"categories"`

	// PoolTTLSeconds bounds how long pool snapshots are served from cache.
	PoolTTLSeconds int `koanf:"pool_ttl_seconds"`

	// MappingTTLSeconds bounds how long the category mapping is served.
	MappingTTLSeconds int `koanf:"mapping_ttl_seconds"`

	// PrefetchIntervalSeconds sets the background cache warm cadence.
	// Zero disables the prefetcher.
	PrefetchIntervalSeconds int `koanf:"prefetch_interval_seconds"`

	// ResetWeekday, ResetHour and ResetUTCOffsetHours define the weekly
	// rollover anchor (weekday 0 = Sunday).
	ResetWeekday        int `koanf:"reset_weekday"`
	ResetHour           int `koanf:"reset_hour"`
	ResetUTCOffsetHours int `koanf:"reset_utc_offset_hours"`

	// TierThresholds overrides the per-rarity threshold tables, e.g.
	// mythic: [1, 5, 15]. The last entry is the max collectible amount.
	TierThresholds map[string][]int `koanf:"tier_thresholds"`

	// TierWeights overrides per-rarity tier step weights keyed like "1-2".
	TierWeights map[string]map[string]float64 `koanf:"tier_weights"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		PoolBaseURL:             "http://wynnextras.com",
		CategoryBaseURL:         "https://api.wynncraft.com",
		PoolTypes:               []string{"NOTG", "NOL", "TCC", "TNA"},
		Categories:              []string{"warrior", "mage", "archer", "assassin", "shaman"},
		PoolTTLSeconds:          300,
		MappingTTLSeconds:       3600,
		PrefetchIntervalSeconds: 240,
		ResetWeekday:            int(time.Friday),
		ResetHour:               19,
		ResetUTCOffsetHours:     1,
	}
}

// PoolTTL returns the pool cache TTL as a duration.
func (c *Config) PoolTTL() time.Duration {
	return time.Duration(c.PoolTTLSeconds) * time.Second
}

// MappingTTL returns the mapping cache TTL as a duration.
func (c *Config) MappingTTL() time.Duration {
	return time.Duration(c.MappingTTLSeconds) * time.Second
}

// PrefetchInterval returns the prefetch cadence as a duration.
func (c *Config) PrefetchInterval() time.Duration {
	return time.Duration(c.PrefetchIntervalSeconds) * time.Second
}
