package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// Default location: Singapore. Substituted (with a warning) when no
// coordinates are configured.
const (
	DefaultLatitude  = 1.3521
	DefaultLongitude = 103.8198
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	NotifyMode string `envconfig:"NOTIFY_MODE" default:"telegram"` // telegram|log
	BotToken   string `envconfig:"BOT_TOKEN"`
	ChatID     int64  `envconfig:"CHAT_ID"`

	DBPath      string `envconfig:"DB_PATH" default:"./data/musollah.db"`
	DatasetPath string `envconfig:"DATASET_PATH"` // optional extra dataset JSON

	Timezone  string  `envconfig:"TZ_NAME" default:"Asia/Singapore"`
	Latitude  float64 `envconfig:"LATITUDE"`
	Longitude float64 `envconfig:"LONGITUDE"`

	// Scheduling window knobs; see the scheduler for their meaning.
	LookaheadDays   int `envconfig:"LOOKAHEAD_DAYS" default:"5"`
	CoverageMinDays int `envconfig:"COVERAGE_MIN_DAYS" default:"3"`

	// Defaults for user settings until changed via the bot.
	ReminderOffsetMin int      `envconfig:"REMINDER_OFFSET_MIN" default:"15"`
	MutedPrayers      []string `envconfig:"MUTED_PRAYERS"`
	AlertSound        string   `envconfig:"ALERT_SOUND" default:"adhan"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.NotifyMode == "telegram" && cfg.BotToken == "" {
		return cfg, errors.New("BOT_TOKEN is required unless NOTIFY_MODE=log")
	}
	if cfg.LookaheadDays < 1 {
		return cfg, errors.New("LOOKAHEAD_DAYS must be at least 1")
	}
	if cfg.CoverageMinDays < 1 || cfg.CoverageMinDays > cfg.LookaheadDays {
		return cfg, errors.New("COVERAGE_MIN_DAYS must be between 1 and LOOKAHEAD_DAYS")
	}
	return cfg, nil
}
