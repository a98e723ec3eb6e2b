package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fingervision/ridgemark/internal/pipeline"
	"github.com/fingervision/ridgemark/internal/utils"
)

// processSingleImage loads one image, runs it through a pipeline, and
// optionally writes the annotated output.
func processSingleImage(pl *pipeline.Pipeline, path, annotatedDir string) (*pipeline.Result, error) {
	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	res, annotated, err := pl.Run(img)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", path, err)
	}

	if annotatedDir != "" {
		base := filepath.Base(meta.Path)
		outPath := filepath.Join(annotatedDir, strings.TrimSuffix(base, filepath.Ext(base))+"_annotated.png")
		if err := utils.SavePNG(outPath, annotated); err != nil {
			slog.Warn("failed to write annotated image", "file", outPath, "error", err)
		}
	}
	return res, nil
}

// processImagesParallel fans image paths out to a bounded worker pool.
// Each worker owns its own pipeline; per-file failures are recorded, not
// fatal. Results keep the input ordering.
func processImagesParallel(cfg *Config, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	jobs := make(chan int, len(paths))

	workers := cfg.Workers
	if workers > len(paths) {
		workers = len(paths)
	}

	var wg sync.WaitGroup
	var buildErr error
	var buildErrOnce sync.Once
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pl, err := pipeline.NewBuilder().WithBlockSize(cfg.BlockSize).Build()
			if err != nil {
				buildErrOnce.Do(func() { buildErr = err })
				return
			}
			for i := range jobs {
				res, err := processSingleImage(pl, paths[i], cfg.AnnotatedDir)
				fr := FileResult{Path: paths[i], Result: res}
				if err != nil {
					fr.Error = err.Error()
				}
				results[i] = fr
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if buildErr != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", buildErr)
	}
	return results, nil
}
