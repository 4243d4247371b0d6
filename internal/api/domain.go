package api

import (
	"fmt"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/infrastructure"
	"github.com/JaimeStill/photo-fixer/internal/photos"
	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/pkg/database"
	"github.com/JaimeStill/photo-fixer/pkg/lifecycle"
)

// Domain holds the domain systems shared by the API and web modules.
type Domain struct {
	Profiles profiles.System
	Photos   photos.System

	catalog *profiles.Catalog
	db      database.System
}

// NewDomain creates the profile catalog selected by configuration and the
// photo system built on it.
func NewDomain(cfg *config.Config, infra *infrastructure.Infrastructure) (*Domain, error) {
	d := &Domain{db: infra.Database}

	if cfg.Catalog.UsesDatabase() {
		d.Profiles = profiles.NewRepository(infra.Database.Connection(), infra.Logger)
	} else {
		catalog, err := profiles.NewCatalog(profiles.CatalogOptions{
			File:            cfg.Catalog.File,
			Watch:           cfg.Catalog.WatchEnabled(),
			ExcludeBuiltins: cfg.Catalog.BuiltinsExcluded(),
		}, infra.Logger)
		if err != nil {
			return nil, fmt.Errorf("profile catalog: %w", err)
		}
		d.catalog = catalog
		d.Profiles = catalog
	}

	d.Photos = photos.New(
		d.Profiles,
		infra.Transcoder,
		cfg.Photos.MaxUploadSizeBytes(),
		infra.Logger,
	)

	return d, nil
}

// Start applies profile migrations or starts the catalog watcher.
// Infrastructure must be started first.
func (d *Domain) Start(lc *lifecycle.Coordinator) error {
	if d.db != nil {
		if err := database.Migrate(d.db.Connection(), profiles.Migrations, "migrations"); err != nil {
			return fmt.Errorf("profiles migration failed: %w", err)
		}
	}
	if d.catalog != nil {
		if err := d.catalog.Start(lc); err != nil {
			return fmt.Errorf("catalog start failed: %w", err)
		}
	}
	return nil
}
