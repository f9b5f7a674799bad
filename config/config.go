// Package config loads configuration with viper: built-in defaults, an
// optional config file, and GTS_-prefixed environment overrides. Every
// empirically chosen tunable (cache windows, retry policy, match threshold)
// lives here rather than being hard-coded.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	BaseDelay time.Duration `mapstructure:"baseDelay"`
}

type CacheConfig struct {
	Dir          string        `mapstructure:"dir"`
	MemorySizeMB int           `mapstructure:"memorySizeMB"`
	RosterTTL    time.Duration `mapstructure:"rosterTTL"`    // in-process roster window
	PersistedTTL time.Duration `mapstructure:"persistedTTL"` // persisted roster window
	StatsTTL     time.Duration `mapstructure:"statsTTL"`     // stats windows, both tiers
}

type MatchConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type EnrichConfig struct {
	// Delay between per-player external lookups, to stay polite to the
	// upstream service.
	Delay time.Duration `mapstructure:"delay"`
}

type Config struct {
	Port       int          `mapstructure:"port"`
	Team       string       `mapstructure:"team"`
	SleeperURL string       `mapstructure:"sleeperUrl"`
	LogLevel   string       `mapstructure:"logLevel"`
	Fetch      FetchConfig  `mapstructure:"fetch"`
	Cache      CacheConfig  `mapstructure:"cache"`
	Match      MatchConfig  `mapstructure:"match"`
	Enrich     EnrichConfig `mapstructure:"enrich"`
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 3000)
	v.SetDefault("team", "PIT")
	v.SetDefault("sleeperUrl", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.retries", 2)
	v.SetDefault("fetch.baseDelay", time.Second)
	v.SetDefault("cache.dir", ".cache")
	v.SetDefault("cache.memorySizeMB", 4)
	v.SetDefault("cache.rosterTTL", 24*time.Hour)
	v.SetDefault("cache.persistedTTL", 12*time.Hour)
	v.SetDefault("cache.statsTTL", 15*time.Minute)
	v.SetDefault("match.threshold", 0.7)
	v.SetDefault("enrich.delay", 100*time.Millisecond)

	v.SetEnvPrefix("GTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Team == "" {
		return fmt.Errorf("team code must not be empty")
	}
	if c.Match.Threshold <= 0 || c.Match.Threshold > 1 {
		return fmt.Errorf("match threshold must be in (0, 1]: %f", c.Match.Threshold)
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch retries must not be negative: %d", c.Fetch.Retries)
	}
	return nil
}
