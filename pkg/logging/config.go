package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Level is a log severity name as written in config and env.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel normalizes case and accepts "warning" for warn.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l == "warning" {
		l = LevelWarn
	}
	if err := l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}

func (l Level) Validate() error {
	if _, ok := slogLevels[l]; !ok {
		return fmt.Errorf("invalid log level %q: want debug, info, warn or error", string(l))
	}
	return nil
}

// ToSlogLevel falls back to info for unknown names.
func (l Level) ToSlogLevel() slog.Level {
	if sl, ok := slogLevels[l]; ok {
		return sl
	}
	return slog.LevelInfo
}

func (f Format) Validate() error {
	if f != FormatText && f != FormatJSON {
		return fmt.Errorf("invalid log format %q: want text or json", string(f))
	}
	return nil
}

// Env names the variables that override Config. Empty names are skipped.
type Env struct {
	Level  string
	Format string
}

// Config is the [logging] section. The service defaults to info/text; the
// CLI starts from debug when --verbose is set.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize fills defaults, applies env, and reports every invalid field.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	var errs []error
	if env != nil {
		if v := lookup(env.Level); v != "" {
			c.Level = Level(v)
		}
		if v := lookup(env.Format); v != "" {
			c.Format = Format(strings.ToLower(v))
		}
	}

	level, err := ParseLevel(string(c.Level))
	if err != nil {
		errs = append(errs, err)
	} else {
		c.Level = level
	}
	if err := c.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Merge copies the overlay's non-empty fields.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}
