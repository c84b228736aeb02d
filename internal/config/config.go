// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers sources on top.
// - Durations are stored as milliseconds and exposed through helpers.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// SummonerSeed binds a summoner id to a player identity at startup.
type SummonerSeed struct {
	PUUID  string `koanf:"puuid"`
	Region string `koanf:"region"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SpellLocale selects the spell catalog: ko or en.
	SpellLocale string `koanf:"spell_locale"`

	// StoreBackend selects where cooldowns live: memory or redis.
	StoreBackend string `koanf:"store_backend"`

	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`

	// SweepIntervalMS is how often the memory store reclaims expired entries.
	SweepIntervalMS int `koanf:"sweep_interval_ms"`

	// WaitPollIntervalMS and WaitCeilingMS bound a single await.
	WaitPollIntervalMS int `koanf:"wait_poll_interval_ms"`
	WaitCeilingMS      int `koanf:"wait_ceiling_ms"`

	// RiotAPIKey enables live match lookups when set.
	RiotAPIKey string `koanf:"riot_api_key"`
	// RiotBaseURLTemplate receives the region through %s.
	RiotBaseURLTemplate string `koanf:"riot_base_url_template"`
	RiotTimeoutMS       int    `koanf:"riot_timeout_ms"`

	// DDragonBaseURL disables Data Dragon when empty.
	DDragonBaseURL string `koanf:"ddragon_base_url"`
	DDragonVersion string `koanf:"ddragon_version"`
	DDragonLocale  string `koanf:"ddragon_locale"`

	// Champions is the static id -> display name fallback.
	Champions map[int64]string `koanf:"champions"`

	// Summoners seeds the summoner directory.
	Summoners map[int64]SummonerSeed `koanf:"summoners"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		SpellLocale:         "ko",
		StoreBackend:        BackendMemory,
		RedisAddr:           "localhost:6379",
		RedisKeyPrefix:      "spelltimer:",
		SweepIntervalMS:     30_000,
		WaitPollIntervalMS:  1_000,
		WaitCeilingMS:       360_000,
		RiotBaseURLTemplate: "https://%s.api.riotgames.com",
		RiotTimeoutMS:       5_000,
		DDragonBaseURL:      "https://ddragon.leagueoflegends.com",
		DDragonVersion:      "14.10.1",
		DDragonLocale:       "ko_KR",
		Champions:           map[int64]string{},
		Summoners:           map[int64]SummonerSeed{},
	}
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	switch c.SpellLocale {
	case "ko", "en":
	default:
		return fmt.Errorf("%w: unknown spell_locale %q", ErrInvalidConfig, c.SpellLocale)
	}
	if c.StoreBackend == BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalidConfig)
	}
	if c.WaitPollIntervalMS <= 0 {
		return fmt.Errorf("%w: wait_poll_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.WaitCeilingMS < c.WaitPollIntervalMS {
		return fmt.Errorf("%w: wait_ceiling_ms must be at least wait_poll_interval_ms", ErrInvalidConfig)
	}
	if c.SweepIntervalMS <= 0 {
		return fmt.Errorf("%w: sweep_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.RiotAPIKey != "" && !strings.Contains(c.RiotBaseURLTemplate, "%s") {
		return fmt.Errorf("%w: riot_base_url_template needs a %%s region placeholder", ErrInvalidConfig)
	}
	for id, s := range c.Summoners {
		if id <= 0 || s.PUUID == "" || s.Region == "" {
			return fmt.Errorf("%w: summoner %d needs a positive id, puuid and region", ErrInvalidConfig, id)
		}
	}
	return nil
}

// WaitPollInterval returns WaitPollIntervalMS as a duration.
func (c *Config) WaitPollInterval() time.Duration {
	return time.Duration(c.WaitPollIntervalMS) * time.Millisecond
}

// WaitCeiling returns WaitCeilingMS as a duration.
func (c *Config) WaitCeiling() time.Duration {
	return time.Duration(c.WaitCeilingMS) * time.Millisecond
}

// SweepInterval returns SweepIntervalMS as a duration.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMS) * time.Millisecond
}

// RiotTimeout returns RiotTimeoutMS as a duration.
func (c *Config) RiotTimeout() time.Duration {
	return time.Duration(c.RiotTimeoutMS) * time.Millisecond
}
