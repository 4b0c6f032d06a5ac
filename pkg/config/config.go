// Package config provides the configuration system for the datatable engine.
//
// A single Config structure covers the engine's tunables, organized into
// logical sections:
//   - Engine: parallelism and chunking for reification and concatenation
//   - Logging: level, encoding and output destinations
//
// Example usage:
//
//	cfg := config.Default()
//	cfg.Engine.Workers = 8
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"runtime"

	"github.com/Rukhsaar305/datatable/pkg/dterrors"
)

// Config is the unified configuration structure for the engine.
type Config struct {
	// Engine settings control parallel execution of row-level work
	Engine EngineConfig `yaml:"engine" json:"engine"`

	// Logging configures the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// EngineConfig controls parallelism for reification and concatenation.
type EngineConfig struct {
	// Workers is the maximum number of columns materialized concurrently
	Workers int `yaml:"workers" json:"workers"`

	// ParallelThreshold is the row count below which operations stay serial
	ParallelThreshold int `yaml:"parallel_threshold" json:"parallel_threshold"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Encoding string `yaml:"encoding" json:"encoding"` // json or console
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Workers:           runtime.NumCPU(),
			ParallelThreshold: 4096,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Engine.Workers < 1 {
		return dterrors.New(dterrors.ErrorTypeConfig, "workers must be positive").
			WithDetail("workers", c.Engine.Workers)
	}
	if c.Engine.ParallelThreshold < 0 {
		return dterrors.New(dterrors.ErrorTypeConfig, "parallel threshold must be non-negative").
			WithDetail("parallel_threshold", c.Engine.ParallelThreshold)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return dterrors.New(dterrors.ErrorTypeConfig, "unknown log encoding").
			WithDetail("encoding", c.Logging.Encoding)
	}
	return nil
}
