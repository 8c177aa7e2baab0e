package config

import "time"

// Config holds runtime settings for the DeployHQ console.
//
// AuthDelay and SubmitDelay are the simulated network latencies applied by
// the session and catalog stores; zero disables them.
type Config struct {
	DatabasePath string
	AuthDelay    time.Duration
	SubmitDelay  time.Duration
	LogLevel     string
	LogBackend   string
}

// LoadDefaults populates c with the values the marketplace front end used.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "deployhq.db"
	c.AuthDelay = 1 * time.Second
	c.SubmitDelay = 1500 * time.Millisecond
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig applies defaults, then the file/env stage, then flags. Later
// sources win.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
