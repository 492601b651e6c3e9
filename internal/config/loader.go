package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if LOOTPOOL_CONFIG is set
//  3. env (prefix LOOTPOOL_)
func Load() (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("LOOTPOOL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LOOTPOOL_ADDR, LOOTPOOL_POOL_TTL_SECONDS, ...
	// Map env keys like LOOTPOOL_POOL_TTL_SECONDS -> pool_ttl_seconds
	// (flat keys). Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("LOOTPOOL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "lootpool_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PoolBaseURL == "":
		return fmt.Errorf("%w: pool_base_url must not be empty", ErrInvalidConfig)
	case c.CategoryBaseURL == "":
		return fmt.Errorf("%w: category_base_url must not be empty", ErrInvalidConfig)
	case len(c.PoolTypes) == 0:
		return fmt.Errorf("%w: pool_types must not be empty", ErrInvalidConfig)
	case c.PoolTTLSeconds <= 0:
		return fmt.Errorf("%w: pool_ttl_seconds must be positive", ErrInvalidConfig)
	case c.MappingTTLSeconds <= 0:
		return fmt.Errorf("%w: mapping_ttl_seconds must be positive", ErrInvalidConfig)
	case c.PrefetchIntervalSeconds < 0:
		return fmt.Errorf("%w: prefetch_interval_seconds must not be negative", ErrInvalidConfig)
	case c.ResetWeekday < 0 || c.ResetWeekday > 6:
		return fmt.Errorf("%w: reset_weekday must be 0..6", ErrInvalidConfig)
	case c.ResetHour < 0 || c.ResetHour > 23:
		return fmt.Errorf("%w: reset_hour must be 0..23", ErrInvalidConfig)
	}
	return nil
}
