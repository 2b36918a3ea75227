package services

import (
	"fmt"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedModel      = "embedding.model"
	keyEmbedDims       = "embedding.dimensions"
	keyIndexingEnabled = "search_index.enabled"
	keyIndexedCount    = "search_index.indexed_count"
)

// SettingsService manages application settings on top of the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults for
// keys that were never set.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			BaseURL:    s.getString(keyEmbedBaseURL, defaults.Embedding.BaseURL),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			Dimensions: s.getInt(keyEmbedDims, defaults.Embedding.Dimensions),
		},
		SearchIndex: domain.SearchIndexSettings{
			Enabled:      s.getBool(keyIndexingEnabled, defaults.SearchIndex.Enabled),
			IndexedCount: s.configStore.GetInt(keyIndexedCount),
		},
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyIndexingEnabled, settings.SearchIndex.Enabled},
	}

	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("saving %s: %w", p.key, err)
		}
	}
	return nil
}

// SetIndexingEnabled toggles the external search index preference.
func (s *SettingsService) SetIndexingEnabled(enabled bool) error {
	if err := s.configStore.Set(keyIndexingEnabled, enabled); err != nil {
		return fmt.Errorf("saving %s: %w", keyIndexingEnabled, err)
	}
	return nil
}

// getString reads a string key with a default.
func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

// getInt reads an integer key with a default.
func (s *SettingsService) getInt(key string, fallback int) int {
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetInt(key)
	}
	return fallback
}

// getBool reads a boolean key with a default.
func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetBool(key)
	}
	return fallback
}
