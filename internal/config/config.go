package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRows    = 5
	DefaultCols    = 5
	DefaultDelayMS = 350
	DefaultTheme   = "slate"

	MaxDim = 64
)

// Config fixes the grid and pacing of one session.
type Config struct {
	Rows     int    `yaml:"rows"`
	Cols     int    `yaml:"cols"`
	DelayMS  int    `yaml:"delay_ms"`
	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		DelayMS:  DefaultDelayMS,
		Theme:    DefaultTheme,
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 || c.Rows > MaxDim || c.Cols > MaxDim {
		return fmt.Errorf("%w: %dx%d (each side must be 1..%d)", ErrInvalidDimensions, c.Rows, c.Cols, MaxDim)
	}
	if c.DelayMS <= 0 {
		return fmt.Errorf("%w: %dms", ErrInvalidDelay, c.DelayMS)
	}
	return nil
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
