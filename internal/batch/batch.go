// Package batch runs the analysis pipeline over many fingerprint images.
package batch

import (
	"errors"
	"fmt"
	"time"
)

// ProcessBatch discovers image files from the given paths and analyzes them
// with a bounded worker pool.
func ProcessBatch(paths []string, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverImageFiles(paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	start := time.Now()
	results, err := processImagesParallel(cfg, files)
	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	return &Result{
		Files:       results,
		Duration:    time.Since(start),
		WorkerCount: cfg.Workers,
	}, nil
}
