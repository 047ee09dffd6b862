package config

import "time"

// Config is the root application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	State   StateConfig   `yaml:"state"`
	Refresh RefreshConfig `yaml:"refresh"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig locates the exported input files. Each input lists candidate
// paths; the loader uses the first readable one (the exporter has written
// to a couple of locations over its lifetime).
type DataConfig struct {
	CardsPaths    []string `yaml:"cards_paths"    env:"DATA_CARDS_PATHS"    env-default:"./public/anki_stats.csv,./anki_stats.csv"`
	ActivityPaths []string `yaml:"activity_paths" env:"DATA_ACTIVITY_PATHS" env-default:"./public/activity_log.json,./activity_log.json"`
	Timezone      string   `yaml:"timezone"       env:"DATA_TIMEZONE"`
}

// StateConfig holds the durable state storage settings.
type StateConfig struct {
	DBPath string `yaml:"db_path" env:"STATE_DB_PATH" env-default:"./ankidash.db"`
	Key    string `yaml:"key"     env:"STATE_KEY"     env-default:"dashboard_state"`
}

// RefreshConfig controls automatic data reloads.
type RefreshConfig struct {
	Watch         bool          `yaml:"watch"          env:"REFRESH_WATCH"          env-default:"false"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"REFRESH_WATCH_DEBOUNCE" env-default:"500ms"`
	Schedule      string        `yaml:"schedule"       env:"REFRESH_SCHEDULE"`
}

// UIConfig holds default display preferences applied on first load; once
// the user changes them the persisted state wins.
type UIConfig struct {
	Theme    string `yaml:"theme"    env:"UI_THEME"    env-default:"dark"`
	Language string `yaml:"language" env:"UI_LANGUAGE" env-default:"en"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
