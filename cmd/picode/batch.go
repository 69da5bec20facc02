package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-picode"
)

// File permission constants.
const (
	dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute
)

// Worker sizing.
const (
	minWorkers = 1
	maxAuto    = 8 // cap for the GOMAXPROCS-based default
)

// ErrInvalidWorkerCount is returned for a worker count outside 0..config.MaxWorkers.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// Renderer is the interface for the rendering service.
type Renderer interface {
	Render(ctx context.Context, in picode.Input) (*picode.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*picode.Renderer)(nil)

// renderResult holds the outcome of a single job.
type renderResult struct {
	Job      renderJob
	Result   *picode.Result
	Err      error
	Duration time.Duration
}

// renderBatch renders jobs on up to workers goroutines and saves the images
// strictly in job order. The first failing job, in job order, cancels the
// remaining work and is returned; images before it are already saved.
// The returned results cover the jobs up to and including the failure.
func renderBatch(ctx context.Context, r Renderer, jobs []renderJob, workers int) ([]renderResult, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers = max(min(workers, len(jobs)), minWorkers)

	results := make([]renderResult, len(jobs))
	done := make([]chan struct{}, len(jobs))
	for i := range done {
		done[i] = make(chan struct{})
	}

	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = renderResult{Job: jobs[idx], Err: err}
				} else {
					results[idx] = renderJobResult(ctx, r, jobs[idx])
				}
				close(done[idx])
			}
		}()
	}
	defer wg.Wait()

	for i := range jobs {
		<-done[i]
		if results[i].Err == nil {
			results[i].Err = saveResult(results[i])
		}
		if results[i].Err != nil {
			cancel()
			return results[:i+1], fmt.Errorf("%s: %w", jobs[i].Source, results[i].Err)
		}
	}
	return results, nil
}

// renderJobResult renders one job and times it.
func renderJobResult(ctx context.Context, r Renderer, job renderJob) renderResult {
	start := time.Now()
	res, err := r.Render(ctx, job.Input)
	return renderResult{
		Job:      job,
		Result:   res,
		Err:      err,
		Duration: time.Since(start),
	}
}

// saveResult writes the image of a successful job, creating its directory.
func saveResult(rr renderResult) error {
	if dir := filepath.Dir(rr.Job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", ErrWriteImage, err)
		}
	}
	if err := rr.Result.Save(rr.Job.OutputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteImage, err)
	}
	return nil
}

// resolvePoolSize determines the worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	return max(min(runtime.GOMAXPROCS(0), maxAuto), minWorkers)
}

// printResults outputs the results using the environment writers.
func printResults(results []renderResult, quiet, verbose bool, env *Environment) {
	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s\n", r.Job.Source)
			continue
		}
		succeeded++

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %s, %v)\n", r.Job.Source, r.Job.OutputPath,
				r.Result.Lexer, r.Result.Style, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Job.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d image(s) created\n", succeeded)
	}
}
