package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/photo-fixer/internal/api"
	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/infrastructure"
	"github.com/JaimeStill/photo-fixer/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra  *infrastructure.Infrastructure
	domain *api.Domain
	http   server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	domain, err := api.NewDomain(cfg, infra)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(cfg, infra, domain)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"catalog", cfg.Catalog.Source,
	)

	return &Server{
		infra:  infra,
		domain: domain,
		http:   server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.domain.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("domain start failed: %w", err)
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops all subsystems, waiting at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
