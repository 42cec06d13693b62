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
	"time"
)

// Category identifies the reporting group a benchmark belongs to.
type Category string

const (
	CategoryParallelization Category = "Parallelization"
	CategoryGraphics        Category = "Graphics"
	CategoryHeavyCompute    Category = "Heavy Compute"
	CategoryOther           Category = "Other"
)

// Result holds the outcome of a single timed run.
type Result struct {
	// Elapsed is the time spent in the measured phase of the workload. Input
	// generation and other setup is excluded.
	Elapsed time.Duration

	// Checksum is a short value derived from the computed output. Repeated
	// runs of the same workload must produce the same checksum.
	Checksum string
}

// A Benchmark is one workload that a Runner can measure.
//
// Implementations are responsible for timing their own measured phase, so
// that setup such as input generation does not pollute the samples.
type Benchmark interface {
	// Name returns the identifier used for lookups and in reports.
	Name() string

	// Category returns the reporting group for the benchmark.
	Category() Category

	// Warmup executes a reduced version of the workload so that timed runs
	// start from a steady state.
	Warmup(ctx context.Context) error

	// Run executes the workload once.
	Run(ctx context.Context) (Result, error)
}
