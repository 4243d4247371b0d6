package profiles

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/JaimeStill/photo-fixer/pkg/lifecycle"
)

// CatalogOptions configures the in-memory catalog.
type CatalogOptions struct {
	// File is an optional catalog file overlaid on the built-in profiles.
	File string

	// Watch reloads File when it changes.
	Watch bool

	// ExcludeBuiltins serves only the profiles from File.
	ExcludeBuiltins bool

	// ReloadDelay is how long the file must be quiet before a watched change
	// is reloaded. Zero uses DefaultReloadDelay.
	ReloadDelay time.Duration
}

// DefaultReloadDelay coalesces the burst of events an editor save produces.
const DefaultReloadDelay = 250 * time.Millisecond

// Catalog is a read-only, in-memory profile catalog.
type Catalog struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	opts     CatalogOptions
	logger   *slog.Logger
}

// NewCatalog builds the catalog and loads File when set. An invalid file is
// an error here; later reloads keep the previous catalog instead.
func NewCatalog(opts CatalogOptions, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		opts:   opts,
		logger: logger.With("system", "profiles"),
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rebuilds the catalog from the built-ins and the catalog file.
func (c *Catalog) Reload() error {
	next := make(map[string]Profile)

	if !c.opts.ExcludeBuiltins {
		for _, p := range Builtins() {
			next[key(p.Name)] = p
		}
	}

	if c.opts.File != "" {
		cmds, err := LoadFile(c.opts.File)
		if err != nil {
			return fmt.Errorf("load catalog %s: %w", c.opts.File, err)
		}

		now := time.Now().UTC()
		for _, cmd := range cmds {
			next[key(cmd.Name)] = newProfile(cmd, now)
		}
	}

	if len(next) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidProfile)
	}

	c.mu.Lock()
	c.profiles = next
	c.mu.Unlock()

	c.logger.Info("catalog loaded", "profiles", len(next), "file", c.opts.File)
	return nil
}

func (c *Catalog) List(ctx context.Context) ([]Profile, error) {
	c.mu.RLock()
	out := make([]Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (c *Catalog) Find(ctx context.Context, name string) (*Profile, error) {
	c.mu.RLock()
	p, ok := c.profiles[key(name)]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &p, nil
}

func (c *Catalog) Create(ctx context.Context, cmd CreateProfileCommand) (*Profile, error) {
	return nil, ErrReadOnly
}

func (c *Catalog) Update(ctx context.Context, name string, cmd UpdateProfileCommand) (*Profile, error) {
	return nil, ErrReadOnly
}

func (c *Catalog) Delete(ctx context.Context, name string) error {
	return ErrReadOnly
}

// Start watches the catalog file when configured. The watcher stops when the
// coordinator shuts down.
func (c *Catalog) Start(lc *lifecycle.Coordinator) error {
	if c.opts.File == "" || !c.opts.Watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}

	// Editors often replace files, so watch the directory.
	if err := watcher.Add(filepath.Dir(c.opts.File)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch catalog dir: %w", err)
	}

	lc.OnShutdown(func() {
		c.watch(lc.Context(), watcher)
	})

	c.logger.Info("watching catalog", "file", c.opts.File)
	return nil
}

func (c *Catalog) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	target := filepath.Clean(c.opts.File)
	delay := c.opts.ReloadDelay
	if delay <= 0 {
		delay = DefaultReloadDelay
	}

	// nil until a change is seen; each further event restarts the delay.
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("catalog watcher stopped")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload = time.After(delay)
		case <-reload:
			reload = nil
			if err := c.Reload(); err != nil {
				c.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logger.Error("catalog watcher error", "error", err)
		}
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
