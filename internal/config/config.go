package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	Data        Data
	HTTP        HTTP
	Schedule    Schedule
	League      League
}

type TelegramBot struct {
	// The bot is disabled when Token is empty.
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Data names where the league files live. Dir wins when both are set.
type Data struct {
	Dir     string `envconfig:"DATA_DIR"`
	BaseURL string `envconfig:"DATA_BASE_URL"`
}

type HTTP struct {
	Addr           string   `envconfig:"HTTP_ADDR" default:":80"`
	RateLimit      string   `envconfig:"HTTP_RATE_LIMIT" default:"120-M"`
	AllowedOrigins []string `envconfig:"HTTP_ALLOWED_ORIGINS" default:"*"`
}

type Schedule struct {
	Location    string `envconfig:"SCHEDULE_LOCATION" default:"America/Chicago"`
	RefreshCron string `envconfig:"REFRESH_CRON" default:"*/30 * * * *"`
}

type League struct {
	FirstSeason         int   `envconfig:"FIRST_SEASON" default:"2015"`
	LastSeason          int   `envconfig:"LAST_SEASON" default:"2025"`
	MaxWeek             int   `envconfig:"MAX_WEEK" default:"16"`
	PlayoffStartWeek    int   `envconfig:"PLAYOFF_START_WEEK" default:"15"`
	DraftExcludeSeasons []int `envconfig:"DRAFT_EXCLUDE_SEASONS"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Data.Dir == "" && c.Data.BaseURL == "" {
		return errors.New("one of DATA_DIR or DATA_BASE_URL is required")
	}
	if c.League.FirstSeason > c.League.LastSeason {
		return fmt.Errorf("FIRST_SEASON %d is after LAST_SEASON %d", c.League.FirstSeason, c.League.LastSeason)
	}
	if c.League.MaxWeek < 1 {
		return fmt.Errorf("MAX_WEEK must be positive, got %d", c.League.MaxWeek)
	}
	if _, err := cron.ParseStandard(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("invalid REFRESH_CRON %q: %w", c.Schedule.RefreshCron, err)
	}
	if _, err := time.LoadLocation(c.Schedule.Location); err != nil {
		return fmt.Errorf("invalid SCHEDULE_LOCATION %q: %w", c.Schedule.Location, err)
	}
	return nil
}
