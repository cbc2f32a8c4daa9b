package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// DefaultDebounce is the quiet period after the last change before reloading.
const DefaultDebounce = 500 * time.Millisecond

// WatchService reloads and re-validates the site configuration on change.
type WatchService struct {
	site      driving.SiteService
	validator driving.ValidationService
	watcher   driven.FileWatcher
	path      string
	opts      domain.ValidateOptions
	debounce  time.Duration
}

// NewWatchService creates a watch service for the configuration file at path.
func NewWatchService(
	site driving.SiteService,
	validator driving.ValidationService,
	watcher driven.FileWatcher,
	path string,
	opts domain.ValidateOptions,
) *WatchService {
	return &WatchService{
		site:      site,
		validator: validator,
		watcher:   watcher,
		path:      path,
		opts:      opts,
		debounce:  DefaultDebounce,
	}
}

// SetDebounce overrides the debounce interval.
func (s *WatchService) SetDebounce(d time.Duration) {
	if d > 0 {
		s.debounce = d
	}
}

// Watch blocks until ctx is cancelled, calling fn after every reload.
func (s *WatchService) Watch(ctx context.Context, fn driving.ReloadFunc) error {
	if s.watcher == nil || s.path == "" {
		return fmt.Errorf("watch requires a site configuration file: %w", domain.ErrInvalidInput)
	}

	events, err := s.watcher.Watch(ctx, s.path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}
	logger.Info("Watching %s", s.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Change detected: %s", s.path)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			s.reload(ctx, fn)
		}
	}
}

func (s *WatchService) reload(ctx context.Context, fn driving.ReloadFunc) {
	logger.Section("Reload")
	cfg, err := s.site.Reload(ctx)
	if err != nil {
		logger.Warn("Reload failed: %v", err)
		fn(nil, nil, err)
		return
	}
	report, err := s.validator.Validate(ctx, cfg, s.opts)
	if err != nil {
		fn(cfg, nil, err)
		return
	}
	fn(cfg, report, nil)
}
