package main

// Notes:
// - renderBatch: we test ordered saving, stop-at-first-failure and context
//   cancellation with a fake Renderer, so no fonts are involved.
// - resolvePoolSize: we test explicit and automatic sizing.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-picode"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer
// ---------------------------------------------------------------------------

// fakeRenderer returns a 1x1 image, or an error for codes listed in fail.
// Jobs whose code is "slow" sleep first so later jobs finish before them.
type fakeRenderer struct {
	fail  map[string]error
	calls atomic.Int32
}

func (f *fakeRenderer) Render(_ context.Context, in picode.Input) (*picode.Result, error) {
	f.calls.Add(1)
	if in.Code == "slow" {
		time.Sleep(20 * time.Millisecond)
	}
	if err, ok := f.fail[in.Code]; ok {
		return nil, err
	}
	return &picode.Result{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
}

// codeJobs returns one job per code, writing to dir/<i>.png.
func codeJobs(dir string, codes ...string) []renderJob {
	jobs := make([]renderJob, len(codes))
	for i, c := range codes {
		jobs[i] = renderJob{
			Source:     fmt.Sprintf("job%d", i),
			OutputPath: filepath.Join(dir, fmt.Sprintf("%d.png", i)),
			Input:      picode.Input{Code: c},
		}
	}
	return jobs
}

// ---------------------------------------------------------------------------
// TestRenderBatch - Ordered batch semantics
// ---------------------------------------------------------------------------

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	t.Run("all succeed in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		jobs := codeJobs(dir, "slow", "a", "b")

		results, err := renderBatch(context.Background(), &fakeRenderer{}, jobs, 3)
		if err != nil {
			t.Fatalf("renderBatch() error = %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		for i, r := range results {
			if r.Job.Source != jobs[i].Source {
				t.Errorf("result %d is for %s, want %s", i, r.Job.Source, jobs[i].Source)
			}
			assertPNG(t, jobs[i].OutputPath)
		}
	})

	t.Run("stops at first failure in job order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		boom := errors.New("boom")
		jobs := codeJobs(dir, "a", "slow", "bad", "c")
		fake := &fakeRenderer{fail: map[string]error{"slow": boom, "bad": picode.ErrInvalidColor}}

		results, err := renderBatch(context.Background(), fake, jobs, 4)

		if !errors.Is(err, boom) {
			t.Fatalf("renderBatch() error = %v, want the slow job's error", err)
		}
		if len(results) != 2 {
			t.Errorf("got %d results, want 2", len(results))
		}
		assertPNG(t, jobs[0].OutputPath)
		for _, j := range jobs[1:] {
			if _, statErr := os.Stat(j.OutputPath); !os.IsNotExist(statErr) {
				t.Errorf("%s should not be saved, stat err = %v", j.OutputPath, statErr)
			}
		}
	})

	t.Run("sequential with one worker", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fake := &fakeRenderer{fail: map[string]error{"bad": picode.ErrInvalidFontSize}}
		jobs := codeJobs(dir, "bad", "a", "b")

		_, err := renderBatch(context.Background(), fake, jobs, 1)

		if picode.CodeOf(err) != 104 {
			t.Errorf("renderBatch() error = %v, want code 104", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fake := &fakeRenderer{}
		_, err := renderBatch(ctx, fake, codeJobs(t.TempDir(), "a", "b"), 2)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("renderBatch() error = %v, want context.Canceled", err)
		}
		if fake.calls.Load() != 0 {
			t.Errorf("Render called %d times, want 0", fake.calls.Load())
		}
	})

	t.Run("no jobs", func(t *testing.T) {
		t.Parallel()

		results, err := renderBatch(context.Background(), &fakeRenderer{}, nil, 2)
		if err != nil || results != nil {
			t.Errorf("renderBatch(nil) = %v, %v, want nil, nil", results, err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker sizing
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(5); got != 5 {
		t.Errorf("resolvePoolSize(5) = %d, want 5", got)
	}
	if got := resolvePoolSize(0); got < minWorkers || got > maxAuto {
		t.Errorf("resolvePoolSize(0) = %d, want 1..%d", got, maxAuto)
	}
}
