package api

import (
	"github.com/JaimeStill/photo-fixer/internal/infrastructure"
)

// Runtime is Infrastructure with an API-scoped logger.
type Runtime struct {
	*infrastructure.Infrastructure
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Transcoder: infra.Transcoder,
		},
	}
}
