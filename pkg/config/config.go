// Package config loads the server configuration from YAML and fills in
// defaults for anything left unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/invmock/invmock/pkg/mutation"
	"github.com/invmock/invmock/pkg/seed"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Seed    seed.Config   `yaml:"seed"`
	Ledger  LedgerConfig  `yaml:"ledger"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
}

// LoggingConfig holds the log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LedgerConfig holds the stock ledger policy settings.
type LedgerConfig struct {
	// TotalPacksBoundary selects when totalNumberOfPacks starts moving with
	// outbound lines: "pastNew" or "picked".
	TotalPacksBoundary string `yaml:"totalPacksBoundary"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         4280,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Seed:   seed.DefaultConfig(),
		Ledger: LedgerConfig{TotalPacksBoundary: string(mutation.BoundaryPastNew)},
	}
}

// Load reads a YAML configuration file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch mutation.TotalPacksBoundary(c.Ledger.TotalPacksBoundary) {
	case mutation.BoundaryPastNew, mutation.BoundaryPicked:
	default:
		return fmt.Errorf("ledger.totalPacksBoundary %q must be %q or %q",
			c.Ledger.TotalPacksBoundary, mutation.BoundaryPastNew, mutation.BoundaryPicked)
	}
	return nil
}

// Policy converts the ledger settings to a mutation policy.
func (c *Config) Policy() mutation.Policy {
	return mutation.Policy{TotalPacks: mutation.TotalPacksBoundary(c.Ledger.TotalPacksBoundary)}
}
