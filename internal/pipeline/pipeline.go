// Package pipeline sequences ridge enhancement, skeletonization, minutiae
// scoring, and region analysis into one fingerprint-quality run.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"

	"github.com/fingervision/ridgemark/internal/enhance"
)

// DefaultBlockSize is the base unit for the analysis window; the window
// side is always eight block sizes.
const DefaultBlockSize = 15

// Config holds configuration for the analysis pipeline.
type Config struct {
	// BlockSize scales the analysis window (side = 8 x BlockSize) and the
	// annotation text offsets.
	BlockSize int
	// Enhance tunes the default enhancement strategy. Ignored when a custom
	// Enhancer is installed via the builder.
	Enhance enhance.BasicConfig
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		BlockSize: DefaultBlockSize,
		Enhance:   enhance.DefaultBasicConfig(),
	}
}

// Validate checks the configuration for structural problems.
func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("invalid block size: %d", c.BlockSize)
	}
	return nil
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	enhancer enhance.Enhancer
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithBlockSize overrides the analysis block size.
func (b *Builder) WithBlockSize(size int) *Builder {
	if size > 0 {
		b.cfg.BlockSize = size
	}
	return b
}

// WithEnhancer installs a custom enhancement strategy.
func (b *Builder) WithEnhancer(e enhance.Enhancer) *Builder {
	b.enhancer = e
	return b
}

// WithEnhanceConfig tunes the default enhancement strategy.
func (b *Builder) WithEnhanceConfig(cfg enhance.BasicConfig) *Builder {
	b.cfg.Enhance = cfg
	return b
}

// Build validates the configuration and constructs the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	e := b.enhancer
	if e == nil {
		e = enhance.NewBasic(b.cfg.Enhance)
	}
	return &Pipeline{cfg: b.cfg, enhancer: e}, nil
}

// Pipeline runs the fixed analysis sequence over one image at a time. The
// enhancement hooks come from the installed strategy; the finishing steps
// (skeletonize, score, select, count, annotate) are built in and cannot be
// substituted. A Pipeline keeps intermediate artifacts between the partial
// entry points and is therefore not safe for concurrent use; create one
// per goroutine.
type Pipeline struct {
	cfg      Config
	enhancer enhance.Enhancer

	// Intermediate artifacts from the most recent run.
	source   *image.Gray
	enhanced *image.Gray
	mask     *image.Gray
	thin     *image.Gray
	weights  *mat.Dense
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// errNotInitialized is returned when entry points run before Build.
var errNotInitialized = errors.New("pipeline not initialized")
