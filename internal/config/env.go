package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables understood by the tools.
const (
	EnvConfigPath = "TILEGRID_CONFIG"
	EnvScale      = "TILEGRID_SCALE"
	EnvLogLevel   = "TILEGRID_LOG_LEVEL"
)

// LoadEnv loads the given .env files (or ./.env when none are named) into the
// process environment. Missing files are not an error; variables already set
// in the environment win.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ConfigPath returns the config file named by TILEGRID_CONFIG, or fallback.
func ConfigPath(fallback string) string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return fallback
}

// ApplyEnv overrides configuration values from the environment.
func (c *Config) ApplyEnv() error {
	if raw := os.Getenv(EnvScale); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvScale, raw, err)
		}
		c.Display.Scale = scale
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	return c.Validate()
}
