// Package config loads configuration of the grape-demo application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	DefaultAwaitTimeout = 5 * time.Second
)

var (
	ErrUnknownModule    = errors.New("unknown module")
	ErrDuplicateModule  = errors.New("module is listed more than once")
	ErrUnknownLogFormat = errors.New("unknown log format")
	ErrBadAwaitTimeout  = errors.New("await timeout must be positive")
)

// Module is one entry of the modules list.
// Delay postpones module start so modules come up in the configured order.
type Module struct {
	Name  string        `yaml:"name"`
	Delay time.Duration `yaml:"delay"`
}

type Config struct {
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	AwaitTimeout time.Duration `yaml:"await_timeout"`
	Modules      []Module      `yaml:"modules"`
}

// Default returns configuration starting every known module at once.
func Default(known []string) *Config {
	cfg := &Config{}
	for _, name := range known {
		cfg.Modules = append(cfg.Modules, Module{Name: name})
	}

	cfg.applyDefaults()

	return cfg
}

// Load reads YAML configuration from path.
func Load(path string, known []string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data, known)
}

// Parse decodes YAML configuration, fills in defaults and validates it.
// known lists module names the application can start.
func Parse(data []byte, known []string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Modules) == 0 {
		cfg.Modules = Default(known).Modules
	}

	cfg.applyDefaults()

	if err := cfg.Validate(known); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.LogFormat == "" {
		c.LogFormat = FormatText
	}

	if c.AwaitTimeout == 0 {
		c.AwaitTimeout = DefaultAwaitTimeout
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
}

func (c *Config) Validate(known []string) error {
	if _, err := c.Level(); err != nil {
		return err
	}

	if c.LogFormat != FormatText && c.LogFormat != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}

	if c.AwaitTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrBadAwaitTimeout, c.AwaitTimeout)
	}

	seen := make(map[string]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		if !slices.Contains(known, m.Name) {
			return fmt.Errorf("%w: %q", ErrUnknownModule, m.Name)
		}

		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateModule, m.Name)
		}

		seen[m.Name] = struct{}{}
	}

	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}
