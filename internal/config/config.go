package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	COL        COLConfig        `yaml:"col"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// COLConfig points at the cost-of-living lookup service and its local
// fallback data.
type COLConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	FallbackPath   string `yaml:"fallback_path"`
}

type SimulationConfig struct {
	HorizonMonths int `yaml:"horizon_months"`
}

// Default returns the configuration used when no config file is provided.
func Default() *Config {
	return &Config{
		Server:     ServerConfig{Port: 8080},
		Database:   DatabaseConfig{Path: "data/finance-stress.db"},
		COL:        COLConfig{BaseURL: "http://localhost:3001", TimeoutSeconds: 10, FallbackPath: "data/col_fallback.json"},
		Simulation: SimulationConfig{HorizonMonths: 12},
	}
}

// Load reads a YAML config file, fills in defaults for omitted fields, and
// validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.COL.TimeoutSeconds <= 0 {
		return errors.New("col.timeout_seconds must be > 0")
	}
	if c.Simulation.HorizonMonths <= 0 {
		return errors.New("simulation.horizon_months must be > 0")
	}
	return nil
}
