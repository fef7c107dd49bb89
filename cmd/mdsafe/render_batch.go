package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-mdsafe/internal/fileutil"
)

// Worker count bounds.
const (
	maxWorkers     = 64 // upper bound for --workers
	maxAutoWorkers = 16 // upper bound when derived from GOMAXPROCS
)

// ErrInvalidWorkerCount is returned for a --workers value out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// RenderResult holds the outcome of a single file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderBatch renders files with up to workers goroutines sharing r.
// Results keep the order of files.
func renderBatch(ctx context.Context, r Renderer, files []FileToRender, params *renderParams, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	workers = min(max(workers, 1), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range workers {
		wg.Go(func() {
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		})
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders one file and writes it atomically.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *renderParams) (result RenderResult) {
	start := time.Now()
	result = RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	out, err := renderContent(ctx, r, params, string(content))
	if err != nil {
		result.Err = err
		return result
	}

	if err := fileutil.WriteAtomic(f.OutputPath, []byte(out)); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}
	return result
}

// ResultSummary holds the count of succeeded and failed files.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed files.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// logResults reports each result and returns the number of failures.
func logResults(results []RenderResult, logger *slog.Logger) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			logger.Error("render failed", "input", r.InputPath, "err", r.Err)
			continue
		}
		logger.Info("created", "output", r.OutputPath)
		logger.Debug("rendered", "input", r.InputPath, "duration", r.Duration.Round(time.Millisecond))
	}

	if len(results) > 1 {
		logger.Info("done", "succeeded", summary.Succeeded, "failed", summary.Failed)
	}
	return summary.Failed
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > MDSAFE_WORKERS > GOMAXPROCS, clamped to 1-16.
func resolveWorkers(flagWorkers, envWorkers, gomaxprocs int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers)
	}
	return min(max(gomaxprocs, 1), maxAutoWorkers)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
