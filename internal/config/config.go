// Package config holds the dashboard configuration and its loading rules.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	UI        UIConfig        `yaml:"ui"`
}

type ServerConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DataConfig points at the dataset loaded at startup.
type DataConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// RateLimitConfig bounds requests per client IP. RPS 0 disables the limiter.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type UIConfig struct {
	Title           string `yaml:"title"`
	PreviewRows     int    `yaml:"preview_rows"`
	WorldGeoJSONURL string `yaml:"world_geojson_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{Path: "Global_AI_Content_Impact_Dataset.csv"},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RateLimit: RateLimitConfig{
			RPS:   50,
			Burst: 100,
		},
		UI: UIConfig{
			Title:           "Global AI Content Impact Dashboard",
			PreviewRows:     10,
			WorldGeoJSONURL: "https://cdn.jsdelivr.net/npm/echarts@4.9.0/map/json/world.json",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		errs = append(errs, errors.New("server.listen_addr must not be empty"))
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		errs = append(errs, errors.New("data.path must not be empty"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("rate_limit.rps must not be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate_limit.burst must be positive when the limiter is enabled"))
	}
	if c.UI.PreviewRows < 0 {
		errs = append(errs, errors.New("ui.preview_rows must not be negative"))
	}
	if c.UI.WorldGeoJSONURL != "" {
		if _, err := url.ParseRequestURI(c.UI.WorldGeoJSONURL); err != nil {
			errs = append(errs, fmt.Errorf("ui.world_geojson_url: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel maps the configured level to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.Log.Format, "json")
}
