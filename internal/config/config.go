// Package config loads application configuration from environment variables
// and an optional config.yaml, with production-safe defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Elastic  ElasticConfig  `mapstructure:"elasticsearch"`
	Harvest  HarvestConfig  `mapstructure:"harvest"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Sources  SourcesConfig  `mapstructure:"sources"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	Encoding    string `mapstructure:"encoding"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string        `mapstructure:"url"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	ConnLifetime time.Duration `mapstructure:"conn_lifetime"`
}

// RedisConfig holds the optional seen-cache settings.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ElasticConfig holds the optional signal search index settings.
type ElasticConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// HarvestConfig holds pipeline settings.
type HarvestConfig struct {
	Parallelism    int           `mapstructure:"parallelism"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	// LeadMinScore is the classification score above which a new signal
	// auto-creates a lead.
	LeadMinScore float64 `mapstructure:"lead_min_score"`
	Schedule     string  `mapstructure:"schedule"`
	// Schedules overrides the cron expression per source name.
	Schedules map[string]string `mapstructure:"schedules"`
	// Jitter delays each scheduled run by a random amount up to this
	// value, spreading portal requests away from the exact tick.
	Jitter time.Duration `mapstructure:"jitter"`
}

// ScheduleFor returns the cron expression for a source, falling back to
// the global schedule.
func (c HarvestConfig) ScheduleFor(source string) string {
	if spec, ok := c.Schedules[source]; ok && spec != "" {
		return spec
	}
	return c.Schedule
}

// SMTPConfig holds outreach sending settings. Sending is disabled unless a
// host is configured; the log sender is used instead.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// SourcesConfig toggles individual portal sources and overrides rate limits.
type SourcesConfig struct {
	// Disabled lists source names that should not be harvested.
	Disabled []string `mapstructure:"disabled"`
	// RateLimit is requests per second allowed against one portal.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// SourceEnabled reports whether a named source should run.
func (c *SourcesConfig) SourceEnabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return false
		}
	}
	return true
}

// Load builds the Config from Viper. InitViper must have been called first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}
	if cfg.App.Environment == "development" {
		cfg.Logger.Development = true
		cfg.Logger.Encoding = "console"
	}
	return &cfg, nil
}
