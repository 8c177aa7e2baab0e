package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/deployhq/internal/flagx"
	"github.com/dmitrijs2005/deployhq/internal/timex"
	"github.com/ilyakaznacheev/cleanenv"
)

// fileConfig is the DTO filled by cleanenv from JSON and the environment.
type fileConfig struct {
	DatabasePath string         `json:"database_path" env:"DEPLOYHQ_DATABASE_PATH"`
	AuthDelay    timex.Duration `json:"auth_delay"    env:"DEPLOYHQ_AUTH_DELAY"`
	SubmitDelay  timex.Duration `json:"submit_delay"  env:"DEPLOYHQ_SUBMIT_DELAY"`
	LogLevel     string         `json:"log_level"     env:"DEPLOYHQ_LOG_LEVEL"`
	LogBackend   string         `json:"log_backend"   env:"DEPLOYHQ_LOG_BACKEND"`
}

// parseFile overlays cfg with the JSON file named by flagx.ConfigPath (if
// any) and then with DEPLOYHQ_* environment variables. Fields absent from
// both keep their current values.
func parseFile(cfg *Config) error {
	fc := fileConfig{
		DatabasePath: cfg.DatabasePath,
		AuthDelay:    timex.Duration(cfg.AuthDelay),
		SubmitDelay:  timex.Duration(cfg.SubmitDelay),
		LogLevel:     cfg.LogLevel,
		LogBackend:   cfg.LogBackend,
	}

	if path := flagx.ConfigPath(); path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &fc); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&fc); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}

	cfg.DatabasePath = fc.DatabasePath
	cfg.AuthDelay = fc.AuthDelay.Std()
	cfg.SubmitDelay = fc.SubmitDelay.Std()
	cfg.LogLevel = fc.LogLevel
	cfg.LogBackend = fc.LogBackend
	return nil
}
