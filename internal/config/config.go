package config

import (
	"errors"
	"fmt"
	"strings"

	"keyboardkit/pkg/logx"
)

// Config is the showcase bot configuration, loaded from YAML or JSON.
type Config struct {
	Token    string `json:"token"`
	Database string `json:"database"`

	// PageSize is how many catalog items one page shows.
	PageSize int `json:"page_size"`

	// RefreshSpec is a cron expression for re-rendering pinned listings.
	RefreshSpec string `json:"refresh_spec"`

	// EditRatePerSec paces message edits to stay under Telegram flood limits.
	EditRatePerSec int `json:"edit_rate_per_sec"`

	// GuardCapacity is the duplicate guard's per-chat LRU capacity.
	GuardCapacity int `json:"guard_capacity"`

	Log LogConfig `json:"log"`
}

type LogConfig struct {
	Level   string        `json:"level"`
	Console bool          `json:"console"`
	File    LogFileConfig `json:"file"`
}

type LogFileConfig struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path"`
	RatePerSec int    `json:"rate_per_sec"`
}

// ApplyDefaults fills zero fields in place.
func (c *Config) ApplyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	if c.RefreshSpec == "" {
		c.RefreshSpec = "@hourly"
	}
	if c.EditRatePerSec <= 0 {
		c.EditRatePerSec = 1
	}
	if c.GuardCapacity <= 0 {
		c.GuardCapacity = 256
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if !c.Log.Console && !c.Log.File.Enabled {
		c.Log.Console = true
	}
}

// Validate rejects configs the bot cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("config: token is required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	return nil
}

// LogxConfig maps the log section onto the logx setup shape.
func (c *Config) LogxConfig() logx.Config {
	return logx.Config{
		Level:   c.Log.Level,
		Console: c.Log.Console,
		File: logx.FileConfig{
			Enabled:    c.Log.File.Enabled,
			Path:       c.Log.File.Path,
			RatePerSec: c.Log.File.RatePerSec,
		},
	}
}
