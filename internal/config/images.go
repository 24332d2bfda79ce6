package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvImagesMaxSize overrides the maximum decoded image size (e.g. "5MB").
	EnvImagesMaxSize = "IMAGES_MAX_SIZE"
)

// ImagesConfig contains embedded-image attachment limits.
type ImagesConfig struct {
	// MaxSize is the decoded byte-size cap in human-readable form.
	// Default: "5MB"
	MaxSize    string `toml:"max_size"`
	maxSizeVal int64
}

// MaxSizeBytes returns the decoded byte-size cap.
func (c *ImagesConfig) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the image configuration.
func (c *ImagesConfig) Finalize() error {
	if c.MaxSize == "" {
		c.MaxSize = "5MB"
	}
	if v := os.Getenv(EnvImagesMaxSize); v != "" {
		c.MaxSize = v
	}

	size, err := units.FromHumanSize(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size < 1 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *ImagesConfig) Merge(overlay *ImagesConfig) {
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
}
