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
	"testing"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortInput(t *testing.T) {
	data := newSortInput(5)

	assert.Equal(t, []int32{12345, 1103527590, 59559187, 1163074432, 119106029}, data)
}

func TestPartition(t *testing.T) {
	arr := []int32{5, 3, 8, 2, 4}

	p := partition(arr)

	assert.Equal(t, 2, p)
	assert.Equal(t, []int32{3, 2, 4, 5, 8}, arr)
}

func TestQuicksort_SortsBelowThresholdInline(t *testing.T) {
	arr := []int32{9, 1, 8, 2, 7}

	quicksort(arr, 10)

	assert.Equal(t, []int32{1, 2, 7, 8, 9}, arr)
}

func TestQuicksort_SortsAboveThresholdInParallel(t *testing.T) {
	data := newSortInput(50_000)
	want := slices.Clone(data)
	slices.Sort(want)

	quicksort(data, 1_000)

	assert.Equal(t, want, data)
}

func TestQuicksort_AlreadySortedInput(t *testing.T) {
	data := []int32{1, 2, 3, 4, 5, 6, 7, 8}

	quicksort(data, 2)

	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8}, data)
}

func TestParallelQuicksortBenchmark(t *testing.T) {
	k := newParallelQuicksort(clock.RealClock{}, 10_000, 500)

	assert.Equal(t, "parallel_quicksort", k.Name())
	assert.Equal(t, bench.CategoryParallelization, k.Category())
	require.NoError(t, k.Warmup(context.Background()))
	result, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "true", result.Checksum)
}
