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

package kernels

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
)

const (
	sortArraySize = 10_000_000
	sortThreshold = 10_000
)

// newSortInput generates the deterministic pseudo-random input,
// data[i] = (i*1103515245 + 12345) mod 2^31.
func newSortInput(n int) []int32 {
	data := make([]int32, n)
	for i := 0; i < n; i++ {
		data[i] = int32((int64(i)*1103515245 + 12345) % 2147483648)
	}
	return data
}

// partition applies Lomuto partitioning with the last element as pivot and
// returns the pivot's final index.
func partition(arr []int32) int {
	pivot := arr[len(arr)-1]
	i := 0
	for j := 0; j < len(arr)-1; j++ {
		if arr[j] <= pivot {
			arr[i], arr[j] = arr[j], arr[i]
			i++
		}
	}
	arr[i], arr[len(arr)-1] = arr[len(arr)-1], arr[i]
	return i
}

// quicksort sorts arr in place, handing the left half of every split above
// the threshold to a new goroutine and recursing into the right half inline.
// Sub-slices at or below the threshold fall back to the library sort.
func quicksort(arr []int32, threshold int) {
	if len(arr) <= threshold {
		slices.Sort(arr)
		return
	}

	p := partition(arr)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		quicksort(arr[:p], threshold)
	}()
	quicksort(arr[p+1:], threshold)
	wg.Wait()
}

type parallelQuicksort struct {
	clock     clock.Clock
	size      int
	threshold int
}

// NewParallelQuicksort returns the 10 million element sort workload.
func NewParallelQuicksort(c clock.Clock) bench.Benchmark {
	return newParallelQuicksort(c, sortArraySize, sortThreshold)
}

func newParallelQuicksort(c clock.Clock, size, threshold int) *parallelQuicksort {
	return &parallelQuicksort{clock: c, size: size, threshold: threshold}
}

func (q *parallelQuicksort) Name() string { return "parallel_quicksort" }

func (q *parallelQuicksort) Category() bench.Category { return bench.CategoryParallelization }

// Warmup sorts a full copy of the input, the same warm-up the workload has
// always used.
func (q *parallelQuicksort) Warmup(ctx context.Context) error {
	quicksort(newSortInput(q.size), q.threshold)
	return nil
}

func (q *parallelQuicksort) Run(ctx context.Context) (bench.Result, error) {
	data := newSortInput(q.size)

	start := q.clock.Now()
	quicksort(data, q.threshold)
	elapsed := q.clock.Now().Sub(start)

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: strconv.FormatBool(slices.IsSorted(data)),
	}, nil
}
