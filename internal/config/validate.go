package config

import (
	"fmt"
	"time"

	"ankidash/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Data.CardsPaths) == 0 {
		return fmt.Errorf("data.cards_paths must list at least one path")
	}
	if !domain.Theme(c.UI.Theme).IsValid() {
		return fmt.Errorf("ui.theme must be dark or light (got %q)", c.UI.Theme)
	}
	if !domain.Language(c.UI.Language).IsValid() {
		return fmt.Errorf("ui.language must be en or fi (got %q)", c.UI.Language)
	}
	if c.Refresh.WatchDebounce < 0 {
		return fmt.Errorf("refresh.watch_debounce must not be negative (got %v)", c.Refresh.WatchDebounce)
	}
	if c.Data.Timezone != "" {
		if _, err := time.LoadLocation(c.Data.Timezone); err != nil {
			return fmt.Errorf("data.timezone: %w", err)
		}
	}
	return nil
}

// Location resolves the configured timezone. An empty setting means the
// process's local zone. Validate has already rejected unknown names, so
// this never falls back silently after a successful Load.
func (c *Config) Location() *time.Location {
	if c.Data.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Data.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
