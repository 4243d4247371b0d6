package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

const (
	EnvWebBasePath = "WEB_BASE_PATH"
	EnvWebTheme    = "WEB_THEME"
)

// Themes accepted by the web app.
var Themes = []string{"light", "dark"}

// WebConfig configures the server-rendered app.
type WebConfig struct {
	BasePath string `toml:"base_path"`
	// Theme is the default when a request does not choose one.
	Theme string `toml:"theme"`
}

func (c *WebConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Theme != "" {
		c.Theme = overlay.Theme
	}
}

func (c *WebConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if c.Theme == "" {
		c.Theme = "light"
	}
}

func (c *WebConfig) loadEnv() {
	if v := os.Getenv(EnvWebBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvWebTheme); v != "" {
		c.Theme = strings.ToLower(v)
	}
}

func (c *WebConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	if slices.Contains(Themes, c.Theme) {
		return nil
	}
	return fmt.Errorf("invalid theme %q: must be one of %v", c.Theme, Themes)
}
