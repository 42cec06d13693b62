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
	"testing"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSieveOfEratosthenes_SmallLimits(t *testing.T) {
	assert.Empty(t, sieveOfEratosthenes(0))
	assert.Empty(t, sieveOfEratosthenes(1))
	assert.Equal(t, []int{2}, sieveOfEratosthenes(2))
	assert.Equal(t, []int{2, 3, 5, 7}, sieveOfEratosthenes(10))
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, sieveOfEratosthenes(30))
}

func TestSieveOfEratosthenes_CountBelowOneMillion(t *testing.T) {
	// pi(10^6) is a textbook constant.
	assert.Len(t, sieveOfEratosthenes(1_000_000), 78498)
}

func TestPrimeSieveBenchmark(t *testing.T) {
	k := newPrimeSieve(clock.RealClock{}, 10_000, 100)

	assert.Equal(t, "prime_sieve", k.Name())
	assert.Equal(t, bench.CategoryHeavyCompute, k.Category())
	require.NoError(t, k.Warmup(context.Background()))
	result, err := k.Run(context.Background())
	require.NoError(t, err)
	// pi(10^4) = 1229.
	assert.Equal(t, "1229", result.Checksum)
}
