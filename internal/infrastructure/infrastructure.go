// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (lifecycle, logging, database, transcoder)
// that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/transcode"
	"github.com/JaimeStill/photo-fixer/pkg/database"
	"github.com/JaimeStill/photo-fixer/pkg/lifecycle"
	"github.com/JaimeStill/photo-fixer/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil unless the profile catalog is stored in PostgreSQL.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Transcoder *transcode.Transcoder
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)
	return NewWithLogger(cfg, logger)
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Transcoder: transcode.New(cfg.Transcode, logger),
	}

	if cfg.Catalog.UsesDatabase() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	return nil
}
