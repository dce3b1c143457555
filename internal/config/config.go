// Package config provides configuration management for sysdash.
// It uses Viper to load settings from files, environment variables, and CLI flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for sysdash.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	ServerPort int    `mapstructure:"server_port"`
	// CPUSampleMS is the window CPU load is measured over on every request.
	CPUSampleMS int `mapstructure:"cpu_sample_ms"`

	// ── Poller ───────────────────────────────────────────────────────────────
	PollURL        string `mapstructure:"poll_url"`
	PollIntervalMS int    `mapstructure:"poll_interval_ms"`
	// PollTimeoutMS bounds a single fetch; 0 means no timeout.
	PollTimeoutMS int `mapstructure:"poll_timeout_ms"`
	HistorySize   int `mapstructure:"history_size"`

	// ── Logging ──────────────────────────────────────────────────────────────
	LogLevel       string `mapstructure:"log_level"`
	LogDevelopment bool   `mapstructure:"log_development"`
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// CPUWindow returns CPUSampleMS as a duration.
func (c *Config) CPUWindow() time.Duration {
	return time.Duration(c.CPUSampleMS) * time.Millisecond
}

// PollInterval returns PollIntervalMS as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// PollTimeout returns PollTimeoutMS as a duration.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMS) * time.Millisecond
}

// Load reads config from file (./config.yaml or ~/.sysdash/config.yaml)
// and falls back to defaults. Environment variables with prefix SYSDASH_
// override file values.
func Load() (*Config, error) {
	return load(viper.New(), []string{".", "$HOME/.sysdash"})
}

func load(v *viper.Viper, paths []string) (*Config, error) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 3001)
	v.SetDefault("cpu_sample_ms", 250)

	v.SetDefault("poll_url", "http://127.0.0.1:3001/api/metrics")
	v.SetDefault("poll_interval_ms", 5000)
	v.SetDefault("poll_timeout_ms", 0)
	v.SetDefault("history_size", 20)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		// config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SYSDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server or poller cannot run with.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server_port %d out of range", c.ServerPort)
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMS)
	}
	if c.PollTimeoutMS < 0 {
		return fmt.Errorf("poll_timeout_ms must not be negative, got %d", c.PollTimeoutMS)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive, got %d", c.HistorySize)
	}
	if c.PollURL == "" {
		return fmt.Errorf("poll_url is empty")
	}
	return nil
}
