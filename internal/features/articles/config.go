package articles

import (
	"fmt"

	"civic-sights/internal/core"
)

// Config represents the articles feature configuration
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
	SeedFallback    bool
}

// NewConfig creates the articles config from the core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		DefaultPageSize: coreConfig.Articles.DefaultPageSize,
		MaxPageSize:     coreConfig.Articles.MaxPageSize,
		SeedFallback:    true,
	}
}

// Validate validates the articles configuration
func (c *Config) Validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be at least 1")
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max page size must not be smaller than the default page size")
	}
	return nil
}
