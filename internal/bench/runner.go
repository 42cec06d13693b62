// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
)

// ProgressFunc is called after every timed run with the zero-based run index.
// It runs on the runner's goroutine, so it must not block for long.
type ProgressFunc func(b Benchmark, run int, result Result, err error)

// BenchmarkResult aggregates every run of one benchmark.
type BenchmarkResult struct {
	Name     string
	Category Category
	Checksum string

	// Times holds one sample per successful run.
	Times []time.Duration

	// Err is set when the warm-up or a run failed. Samples collected before
	// the failure are retained.
	Err error
}

// Runner executes benchmarks sequentially and collects their samples.
type Runner struct {
	clock        clock.Clock
	metricHandle common.MetricHandle
	runs         int64
	warmup       bool
	progress     ProgressFunc
}

// NewRunner creates a runner that times each benchmark runs times, after an
// untimed warm-up when warmup is set. progress may be nil.
func NewRunner(clock clock.Clock, metricHandle common.MetricHandle, runs int64, warmup bool, progress ProgressFunc) (*Runner, error) {
	if runs < 1 {
		return nil, fmt.Errorf("invalid run count: %d", runs)
	}

	return &Runner{
		clock:        clock,
		metricHandle: metricHandle,
		runs:         runs,
		warmup:       warmup,
		progress:     progress,
	}, nil
}

// Run executes each benchmark in order. A failing benchmark is reported in
// its result and does not stop the rest of the suite.
func (r *Runner) Run(ctx context.Context, benchmarks []Benchmark) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(benchmarks))
	for _, b := range benchmarks {
		results = append(results, r.runOne(ctx, b))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, b Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:     b.Name(),
		Category: b.Category(),
	}

	started := r.clock.Now()
	logger.Infof("benchmark %s: starting (%d runs)", result.Name, r.runs)

	if r.warmup {
		if err := b.Warmup(ctx); err != nil {
			result.Err = fmt.Errorf("warmup: %w", err)
			logger.Errorf("benchmark %s: warmup failed: %v", result.Name, err)
			return result
		}
	}

	for i := int64(0); i < r.runs; i++ {
		// A cancelled context stops the suite between runs, never mid-run.
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		runResult, err := b.Run(ctx)
		common.CaptureRunMetrics(ctx, r.metricHandle, result.Name, runResult.Elapsed, err)
		if r.progress != nil {
			r.progress(b, int(i), runResult, err)
		}
		if err != nil {
			result.Err = fmt.Errorf("run %d: %w", i+1, err)
			logger.Errorf("benchmark %s: run %d failed: %v", result.Name, i+1, err)
			return result
		}

		if i > 0 && runResult.Checksum != result.Checksum {
			logger.Warnf("benchmark %s: checksum changed between runs: %q became %q", result.Name, result.Checksum, runResult.Checksum)
		}
		result.Checksum = runResult.Checksum
		result.Times = append(result.Times, runResult.Elapsed)
	}

	logger.Infof("benchmark %s: finished in %v", result.Name, r.clock.Now().Sub(started))
	return result
}
