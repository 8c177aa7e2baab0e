package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "deployhq.db", c.DatabasePath)
	assert.Equal(t, time.Second, c.AuthDelay)
	assert.Equal(t, 1500*time.Millisecond, c.SubmitDelay)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_DefaultsWhenNothingGiven(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"deployhq"}
	t.Setenv("DEPLOYHQ_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"database_path": "from-file.db",
		"log_level":     "warn",
		"auth_delay":    "10ms",
	})
	t.Setenv("DEPLOYHQ_LOG_LEVEL", "error")
	os.Args = []string{"deployhq", "-c", path, "-d", "from-flag.db"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	want := defaults()
	want.DatabasePath = "from-flag.db"
	want.LogLevel = "error"
	want.AuthDelay = 10 * time.Millisecond
	assert.Empty(t, cmp.Diff(want, cfg))
}
