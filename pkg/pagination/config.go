// Package pagination provides types and utilities for paginated list queries.
package pagination

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Environment variable names for pagination configuration.
const (
	EnvPaginationDefaultLimit  = "PAGINATION_DEFAULT_LIMIT"
	EnvPaginationAllowedLimits = "PAGINATION_ALLOWED_LIMITS"
)

// Config holds pagination settings: the default page size and the
// whitelist of page sizes clients may request.
type Config struct {
	DefaultLimit  int   `toml:"default_limit"`
	AllowedLimits []int `toml:"allowed_limits"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay onto the receiver.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultLimit != 0 {
		c.DefaultLimit = overlay.DefaultLimit
	}
	if len(overlay.AllowedLimits) > 0 {
		c.AllowedLimits = overlay.AllowedLimits
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 10
	}
	if len(c.AllowedLimits) == 0 {
		c.AllowedLimits = []int{5, 10, 25, 50}
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPaginationDefaultLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultLimit = n
		}
	}
	if v := os.Getenv(EnvPaginationAllowedLimits); v != "" {
		limits := make([]int, 0)
		for _, part := range strings.Split(v, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				limits = append(limits, n)
			}
		}
		if len(limits) > 0 {
			c.AllowedLimits = limits
		}
	}
}

func (c *Config) validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive")
	}
	for _, limit := range c.AllowedLimits {
		if limit < 1 {
			return fmt.Errorf("allowed_limits must be positive, got %d", limit)
		}
	}
	if !slices.Contains(c.AllowedLimits, c.DefaultLimit) {
		return fmt.Errorf("default_limit %d must be one of allowed_limits", c.DefaultLimit)
	}
	return nil
}
