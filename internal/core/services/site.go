package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Ensure SiteService implements the interface.
var _ driving.SiteService = (*SiteService)(nil)

// SiteService caches the loaded configuration and hands out copies of it.
type SiteService struct {
	source driven.SiteSource

	mu  sync.RWMutex
	cfg *domain.SiteConfig
}

// NewSiteService creates a site service reading from source.
func NewSiteService(source driven.SiteSource) *SiteService {
	return &SiteService{source: source}
}

// Get returns the configuration, loading it on first use.
func (s *SiteService) Get(ctx context.Context) (*domain.SiteConfig, error) {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	if cfg != nil {
		return cfg.Clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		loaded, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.cfg = loaded
	}
	return s.cfg.Clone(), nil
}

// Reload loads the configuration again. On failure the previous
// configuration stays in place.
func (s *SiteService) Reload(ctx context.Context) (*domain.SiteConfig, error) {
	loaded, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cfg = loaded
	s.mu.Unlock()
	return loaded.Clone(), nil
}

// Source names the configuration source.
func (s *SiteService) Source() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

func (s *SiteService) load(ctx context.Context) (*domain.SiteConfig, error) {
	if s.source == nil {
		return nil, fmt.Errorf("site source not configured: %w", domain.ErrInvalidInput)
	}
	logger.Debug("Loading site configuration from %s", s.source.Name())

	cfg, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %q with %d locale(s)", cfg.Title, len(cfg.Locales))
	return cfg, nil
}
