package driving

import "github.com/custodia-labs/docsite/internal/core/domain"

// SettingsService manages the tool's preferences.
type SettingsService interface {
	// Get retrieves current settings merged over the defaults.
	Get() (*domain.ToolSettings, error)

	// Set updates one setting by key.
	Set(key, value string) error

	// Keys returns the supported setting keys.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
