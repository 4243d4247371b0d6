package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvCatalogSource          = "CATALOG_SOURCE"
	EnvCatalogFile            = "CATALOG_FILE"
	EnvCatalogWatch           = "CATALOG_WATCH"
	EnvCatalogExcludeBuiltins = "CATALOG_EXCLUDE_BUILTINS"
)

// Catalog sources.
const (
	CatalogSourceMemory   = "memory"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where exam profiles come from.
type CatalogConfig struct {
	// Source is "memory" (built-ins plus optional file) or "database".
	Source string `toml:"source"`
	File   string `toml:"file"`

	// Pointers so an overlay can switch a base true back off.
	Watch           *bool `toml:"watch"`
	ExcludeBuiltins *bool `toml:"exclude_builtins"`
}

// WatchEnabled reports whether the catalog file is reloaded on change.
func (c *CatalogConfig) WatchEnabled() bool {
	return c.Watch != nil && *c.Watch
}

// BuiltinsExcluded reports whether only the catalog file's profiles are served.
func (c *CatalogConfig) BuiltinsExcluded() bool {
	return c.ExcludeBuiltins != nil && *c.ExcludeBuiltins
}

// UsesDatabase reports whether profiles are stored in PostgreSQL.
func (c *CatalogConfig) UsesDatabase() bool {
	return c.Source == CatalogSourceDatabase
}

func (c *CatalogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.Watch != nil {
		c.Watch = boolPtr(*overlay.Watch)
	}
	if overlay.ExcludeBuiltins != nil {
		c.ExcludeBuiltins = boolPtr(*overlay.ExcludeBuiltins)
	}
}

func (c *CatalogConfig) loadDefaults() {
	if c.Source == "" {
		c.Source = CatalogSourceMemory
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvCatalogFile); v != "" {
		c.File = v
	}
	if b, err := strconv.ParseBool(os.Getenv(EnvCatalogWatch)); err == nil {
		c.Watch = boolPtr(b)
	}
	if b, err := strconv.ParseBool(os.Getenv(EnvCatalogExcludeBuiltins)); err == nil {
		c.ExcludeBuiltins = boolPtr(b)
	}
}

func (c *CatalogConfig) validate() error {
	switch c.Source {
	case CatalogSourceMemory:
	case CatalogSourceDatabase:
		if c.File != "" {
			return fmt.Errorf("file is only supported with the %s source", CatalogSourceMemory)
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.BuiltinsExcluded() && c.File == "" && c.Source == CatalogSourceMemory {
		return fmt.Errorf("exclude_builtins requires a catalog file")
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
