// Package config loads greeter.toml, the configuration of the greeter
// example program.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/subcmd/internal/core/logging"
)

// ConfigFileName is the file Load looks for.
const ConfigFileName = "greeter.toml"

// EnvLogLevel overrides log_level when set.
const EnvLogLevel = "GREETER_LOG_LEVEL"

// Frontends accepted in the frontend field.
const (
	FrontendNative = "native"
	FrontendUrfave = "urfave"
)

// Config is the decoded greeter.toml.
type Config struct {
	// Program is the name shown in usage lines.
	Program string `toml:"program"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// ForceExit makes single-command runs terminate the process.
	ForceExit bool `toml:"force_exit"`

	// Frontend selects the built-in dispatcher ("native") or urfave/cli ("urfave").
	Frontend string `toml:"frontend"`
}

// DefaultConfig returns the configuration used when no greeter.toml exists.
func DefaultConfig() *Config {
	return &Config{
		Program:  "greeter",
		LogLevel: "warn",
		Frontend: FrontendNative,
	}
}

// Load reads greeter.toml from dir on top of DefaultConfig. A missing file is
// not an error. getenv supplies the environment; nil means os.Getenv.
func Load(dir string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown fields in %s: %v", path, undecoded)
		}
	}

	if level := getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if c.Frontend != FrontendNative && c.Frontend != FrontendUrfave {
		errs = append(errs, fmt.Errorf("unknown frontend %q, want %q or %q", c.Frontend, FrontendNative, FrontendUrfave))
	}
	if c.Program == "" {
		errs = append(errs, errors.New("program must not be empty"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
