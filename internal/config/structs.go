package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the ridgemark application.
// It covers all commands (analyze, batch, serve) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig contains ridge analysis pipeline settings.
type PipelineConfig struct {
	// BlockSize is the side length, in pixels, of the square blocks the
	// diagnostic region grid is built from.
	BlockSize int `mapstructure:"block_size" yaml:"block_size" json:"block_size"`

	// Enhancement settings applied before skeletonization.
	Enhance EnhanceConfig `mapstructure:"enhance" yaml:"enhance" json:"enhance"`
}

// EnhanceConfig contains fingerprint enhancement settings.
type EnhanceConfig struct {
	TargetMean     float64 `mapstructure:"target_mean" yaml:"target_mean" json:"target_mean"`
	TargetVariance float64 `mapstructure:"target_variance" yaml:"target_variance" json:"target_variance"`
	BlockSize      int     `mapstructure:"block_size" yaml:"block_size" json:"block_size"`
	VarianceFloor  float64 `mapstructure:"variance_floor" yaml:"variance_floor" json:"variance_floor"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format       string `mapstructure:"format" yaml:"format" json:"format"`
	File         string `mapstructure:"file" yaml:"file" json:"file"`
	AnnotatedDir string `mapstructure:"annotated_dir" yaml:"annotated_dir" json:"annotated_dir"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin  string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
}

// DefaultConfig returns a configuration populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			BlockSize: 15,
			Enhance: EnhanceConfig{
				TargetMean:     128,
				TargetVariance: 2000,
				BlockSize:      16,
				VarianceFloor:  150,
			},
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8080,
			CORSOrigin:  "*",
			MaxUploadMB: 20,
			TimeoutSec:  30,
		},
		Batch: BatchConfig{
			Workers:   4,
			Recursive: false,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Pipeline.BlockSize <= 0 {
		return fmt.Errorf("pipeline block size must be positive, got %d", c.Pipeline.BlockSize)
	}

	if c.Pipeline.Enhance.BlockSize <= 0 {
		return fmt.Errorf("enhance block size must be positive, got %d", c.Pipeline.Enhance.BlockSize)
	}

	switch c.Output.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid output format %q (must be json or text)", c.Output.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}

	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.Server.MaxUploadMB)
	}

	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("server timeout must be positive, got %d", c.Server.TimeoutSec)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1, got %d", c.Batch.Workers)
	}

	return nil
}
