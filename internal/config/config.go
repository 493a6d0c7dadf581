// Package config loads the gambit command line configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file.
type Config struct {
	Host        string        `yaml:"host"`
	AccessKey   string        `yaml:"access_key"`
	SecretKey   string        `yaml:"secret_key"`
	Timeout     time.Duration `yaml:"timeout"`      // transport timeout, 0 means none
	IdleTimeout time.Duration `yaml:"idle_timeout"` // pool worker idle timeout
	Debug       bool          `yaml:"debug"`
}

const defaultIdleTimeout = 60 * time.Second

// Load reads the YAML file at path, applies GAMBIT_* environment overrides
// and fills defaults. A missing file is not an error; a malformed one is.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GAMBIT_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("GAMBIT_ACCESS_KEY"); v != "" {
		c.AccessKey = v
	}
	if v := os.Getenv("GAMBIT_SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("GAMBIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GAMBIT_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("GAMBIT_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GAMBIT_DEBUG: %w", err)
		}
		c.Debug = debug
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
}

// Validate reports the first missing value needed to sign a request.
func (c *Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("host is required")
	case c.AccessKey == "":
		return errors.New("access key is required")
	case c.SecretKey == "":
		return errors.New("secret key is required")
	case c.Timeout < 0:
		return errors.New("timeout must be non-negative")
	}
	return nil
}
