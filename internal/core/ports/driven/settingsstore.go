package driven

import "github.com/custodia-labs/deskseek/internal/core/domain"

// SettingsStore persists the search settings between runs.
type SettingsStore interface {
	// Load reads the stored settings. A missing store yields the
	// defaults, not an error.
	Load() (domain.Settings, error)

	// Save writes the settings.
	Save(settings domain.Settings) error
}
