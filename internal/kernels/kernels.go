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

// Package kernels holds the compute workloads of the benchmark suite. Each
// kernel exposes a size-parameterized implementation plus a bench.Benchmark
// wrapper fixed at the workload's traditional dimensions.
package kernels

import (
	"strconv"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
)

// All returns the canonical suite in its traditional execution order. The
// worker and task counts configure the thread_pool workload.
func All(c clock.Clock, metricHandle common.MetricHandle, workerCount, taskCount int64) []bench.Benchmark {
	return []bench.Benchmark{
		NewMatrixMultiply(c),
		NewParallelQuicksort(c),
		NewThreadPool(c, metricHandle, workerCount, taskCount),
		NewRayTracer(c, metricHandle),
		NewMandelbrot(c, metricHandle),
		NewPrimeSieve(c),
		NewFFT(c),
		NewSHA256(c),
		NewJSONParse(c),
	}
}

// checksumFloat formats a floating point checksum with just enough digits to
// round-trip.
func checksumFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
