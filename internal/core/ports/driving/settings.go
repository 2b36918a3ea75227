package driving

import "github.com/medley-app/medley-cli/internal/core/domain"

// SettingsService manages user-configurable application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetIndexingEnabled toggles the external search index preference.
	SetIndexingEnabled(enabled bool) error
}
