// Package config loads the optional TOML configuration file: issue-tracker
// integrations and the color theme. A missing file yields defaults, so the
// program runs unconfigured.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	appDirName     = "worktimer"
	configFileName = "config.toml"
)

type Config struct {
	Integrations IntegrationConfig `toml:"integrations"`
	Theme        ThemeConfig       `toml:"theme"`
}

// IntegrationConfig names the configured issue trackers. Tracker names are
// free-form keys ("jira", "linear", anything); DefaultTracker picks one when
// ticket-pattern detection is ambiguous.
type IntegrationConfig struct {
	DefaultTracker string                   `toml:"default_tracker"`
	Trackers       map[string]TrackerConfig `toml:"trackers"`
}

// TrackerConfig describes one issue tracker. BrowseURL and WorklogURL are
// templates with {base_url} and {ticket} placeholders.
type TrackerConfig struct {
	Enabled        bool     `toml:"enabled"`
	BaseURL        string   `toml:"base_url"`
	TicketPatterns []string `toml:"ticket_patterns"`
	BrowseURL      string   `toml:"browse_url"`
	WorklogURL     string   `toml:"worklog_url"`
}

type ThemeConfig struct {
	Active string `toml:"active"`
}

// Load reads the config file from the user config directory; a missing file
// is not an error.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFromFile(path)
}

// LoadFromFile reads an explicit config file path, returning defaults when
// the file does not exist.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if config.Trackers() == nil {
		config.Integrations.Trackers = make(map[string]TrackerConfig)
	}
	if config.Theme.Active == "" {
		config.Theme.Active = "default"
	}
	return config, nil
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		Integrations: IntegrationConfig{
			Trackers: make(map[string]TrackerConfig),
		},
		Theme: ThemeConfig{Active: "default"},
	}
}

func (c *Config) Trackers() map[string]TrackerConfig {
	return c.Integrations.Trackers
}

// HasIntegrations reports whether at least one tracker is enabled with a
// base URL, i.e. URL building can work at all.
func (c *Config) HasIntegrations() bool {
	for _, tracker := range c.Integrations.Trackers {
		if tracker.Enabled && tracker.BaseURL != "" {
			return true
		}
	}
	return false
}

// ActiveTheme resolves the configured theme name, falling back to the
// default palette for unknown names.
func (c *Config) ActiveTheme() Theme {
	return themeByName(c.Theme.Active)
}
