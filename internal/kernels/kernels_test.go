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
	"testing"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_SuiteOrderAndCategories(t *testing.T) {
	benchmarks := All(clock.RealClock{}, common.NewNoopMetrics(), 8, 100)

	require.Len(t, benchmarks, 9)
	var names []string
	categories := map[string]bench.Category{}
	for _, b := range benchmarks {
		names = append(names, b.Name())
		categories[b.Name()] = b.Category()
	}

	assert.Equal(t, []string{
		"matrix_multiply",
		"parallel_quicksort",
		"thread_pool",
		"ray_tracer",
		"mandelbrot",
		"prime_sieve",
		"fft",
		"sha256",
		"json_parse",
	}, names)

	assert.Equal(t, bench.CategoryParallelization, categories["thread_pool"])
	assert.Equal(t, bench.CategoryGraphics, categories["mandelbrot"])
	assert.Equal(t, bench.CategoryHeavyCompute, categories["sha256"])
	assert.Equal(t, bench.CategoryOther, categories["json_parse"])
}

func TestChecksumFloat(t *testing.T) {
	assert.Equal(t, "84", checksumFloat(84))
	assert.Equal(t, "0.5", checksumFloat(0.5))
	assert.Equal(t, "123.456", checksumFloat(123.456))
	assert.Equal(t, "-2.25", checksumFloat(-2.25))
}
