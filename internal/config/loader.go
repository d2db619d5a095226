package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given and the file exists.
const DefaultPath = "./aidash.yaml"

// Environment variables applied over the config file.
const (
	EnvDataPath   = "AIDASH_DATA_PATH"
	EnvListenAddr = "AIDASH_LISTEN_ADDR"
	EnvLogLevel   = "AIDASH_LOG_LEVEL"
	EnvLogFormat  = "AIDASH_LOG_FORMAT"
	EnvRateRPS    = "AIDASH_RATE_LIMIT_RPS"
	EnvRateBurst  = "AIDASH_RATE_LIMIT_BURST"
)

// Load builds the configuration in priority order: defaults, then the YAML
// file, then environment variables. Flags are applied by the caller, which
// must call Validate afterwards.
//
// An explicit path that does not exist is an error; the default path is
// optional.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := loadFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes path over cfg. Keys absent from the file keep their
// current value.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setters := []struct {
		key string
		set func(string) error
	}{
		{EnvDataPath, func(v string) error { cfg.Data.Path = v; return nil }},
		{EnvListenAddr, func(v string) error { cfg.Server.ListenAddr = v; return nil }},
		{EnvLogLevel, func(v string) error { cfg.Log.Level = v; return nil }},
		{EnvLogFormat, func(v string) error { cfg.Log.Format = v; return nil }},
		{EnvRateRPS, func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.RateLimit.RPS = f
			return nil
		}},
		{EnvRateBurst, func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			cfg.RateLimit.Burst = n
			return nil
		}},
	}

	for _, s := range setters {
		v := strings.TrimSpace(getenv(s.key))
		if v == "" {
			continue
		}
		if err := s.set(v); err != nil {
			return fmt.Errorf("invalid value for %s: %w", s.key, err)
		}
	}
	return nil
}
