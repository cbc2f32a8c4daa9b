package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySiteFile    = "site.file"
	KeyContentDir  = "content.dir"
	KeyDataDir     = "data.dir"
	KeyGitHubToken = "github.token"
)

var settingKeys = []string{KeySiteFile, KeyContentDir, KeyDataDir, KeyGitHubToken}

// SettingsService manages the tool's preferences.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings merged over the defaults.
func (s *SettingsService) Get() (*domain.ToolSettings, error) {
	defaults := domain.DefaultToolSettings()

	return &domain.ToolSettings{
		SiteFile:    s.getString(KeySiteFile, defaults.SiteFile),
		ContentDir:  s.getString(KeyContentDir, defaults.ContentDir),
		DataDir:     s.getString(KeyDataDir, defaults.DataDir),
		GitHubToken: s.configStore.GetString(KeyGitHubToken), // No default
	}, nil
}

// Set updates one setting by key. An empty value removes the override.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if !isSettingKey(key) {
		return fmt.Errorf("unknown setting %q (valid: %s): %w", key, strings.Join(settingKeys, ", "), domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}
