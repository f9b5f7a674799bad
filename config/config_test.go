package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, conf.Port)
	assert.Equal(t, "PIT", conf.Team)
	assert.Equal(t, 10*time.Second, conf.Fetch.Timeout)
	assert.Equal(t, 2, conf.Fetch.Retries)
	assert.Equal(t, time.Second, conf.Fetch.BaseDelay)
	assert.Equal(t, 24*time.Hour, conf.Cache.RosterTTL)
	assert.Equal(t, 12*time.Hour, conf.Cache.PersistedTTL)
	assert.Equal(t, 15*time.Minute, conf.Cache.StatsTTL)
	assert.Equal(t, 0.7, conf.Match.Threshold)
	assert.Equal(t, 100*time.Millisecond, conf.Enrich.Delay)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: 8080\nteam: PIT\nfetch:\n  retries: 5\nmatch:\n  threshold: 0.9\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, conf.Port)
	assert.Equal(t, 5, conf.Fetch.Retries)
	assert.Equal(t, 0.9, conf.Match.Threshold)
	// Unset keys keep their defaults.
	assert.Equal(t, 24*time.Hour, conf.Cache.RosterTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GTS_PORT", "9090")
	t.Setenv("GTS_FETCH_RETRIES", "1")

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, conf.Port)
	assert.Equal(t, 1, conf.Fetch.Retries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:  3000,
			Team:  "PIT",
			Match: MatchConfig{Threshold: 0.7},
		}
	}
	validConf := valid()
	require.NoError(t, validConf.validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port too low", mutate: func(c *Config) { c.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }},
		{name: "empty team", mutate: func(c *Config) { c.Team = "" }},
		{name: "zero threshold", mutate: func(c *Config) { c.Match.Threshold = 0 }},
		{name: "threshold above one", mutate: func(c *Config) { c.Match.Threshold = 1.1 }},
		{name: "negative retries", mutate: func(c *Config) { c.Fetch.Retries = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf := valid()
			tc.mutate(&conf)
			assert.Error(t, conf.validate())
		})
	}
}
