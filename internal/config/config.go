// Package config holds the I/O settings of the chart tool. The analysis
// scope itself is fixed in package model and is not configurable.
package config

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Format   string `yaml:"format"`
	CSV      string `yaml:"csv"`
	Workbook string `yaml:"xlsx"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when neither a config file nor flags
// say otherwise.
func Default() Config {
	return Config{
		Input:    "./Dataset/energy_consuption.csv",
		Output:   "energy_consumption.png",
		LogLevel: "info",
	}
}

// Load reads an optional YAML file and fills every unset field from Default.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := mergo.Merge(&cfg, Default()); err != nil {
		return cfg, fmt.Errorf("applying defaults: %w", err)
	}
	return cfg, cfg.Validate()
}

// Override copies every non-empty field of o onto c.
func (c *Config) Override(o Config) error {
	return mergo.Merge(c, o, mergo.WithOverride)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("input path is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a zap level.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
