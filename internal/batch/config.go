package batch

import (
	"fmt"
	"runtime"
	"time"

	"github.com/fingervision/ridgemark/internal/pipeline"
)

// Config holds all configuration for batch processing.
type Config struct {
	// Analysis settings
	BlockSize int

	// Output settings
	Format       string // json or text
	OutputFile   string
	AnnotatedDir string // when set, annotated PNGs are written here

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultConfig returns batch defaults.
func DefaultConfig() *Config {
	return &Config{
		BlockSize: pipeline.DefaultBlockSize,
		Format:    "json",
		Workers:   runtime.NumCPU(),
	}
}

// Validate checks batch configuration for structural problems.
func (c *Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("invalid block size: %d", c.BlockSize)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// FileResult pairs one input file with its analysis outcome.
type FileResult struct {
	Path   string           `json:"path"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Result holds the outcome of a batch run.
type Result struct {
	Files       []FileResult  `json:"files"`
	Duration    time.Duration `json:"duration_ns"`
	WorkerCount int           `json:"workers"`
}
