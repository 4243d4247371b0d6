package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// EnvPhotosMaxUploadSize overrides the maximum accepted upload size.
const EnvPhotosMaxUploadSize = "PHOTOS_MAX_UPLOAD_SIZE"

// PhotosConfig contains upload limits for the photo fixer.
type PhotosConfig struct {
	// MaxUploadSize is a human readable size such as "10MB".
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *PhotosConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

func (c *PhotosConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *PhotosConfig) Merge(overlay *PhotosConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *PhotosConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *PhotosConfig) loadEnv() {
	if v := os.Getenv(EnvPhotosMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *PhotosConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size
	return nil
}
