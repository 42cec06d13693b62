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

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandelbrotPoint(t *testing.T) {
	// The origin and -1 never escape, so they hit the iteration cap.
	assert.Equal(t, uint32(1000), mandelbrotPoint(0, 0, 1000))
	assert.Equal(t, uint32(1000), mandelbrotPoint(-1, 0, 1000))
	assert.Equal(t, uint32(50), mandelbrotPoint(0, 0, 50))

	// 2+2i escapes on the first iteration.
	assert.Equal(t, uint32(1), mandelbrotPoint(2, 2, 1000))
}

func TestMandelbrot_ComputeRowExactValues(t *testing.T) {
	k := newMandelbrot(clock.RealClock{}, common.NewNoopMetrics(), 4, 2, 1000)
	result := make([]uint32, 8)

	// Row 0 maps to im = -1, row 1 to im = 0.
	k.computeRow(result, 0)
	k.computeRow(result, 1)

	assert.Equal(t, []uint32{1, 2, 3, 4}, result[:4])
	assert.Equal(t, []uint32{1, 1000, 1000, 1000}, result[4:])
}

func TestMandelbrot_ComputeMatchesSerial(t *testing.T) {
	k := newMandelbrot(clock.RealClock{}, common.NewNoopMetrics(), 64, 48, 200)

	parallel := make([]uint32, k.width*k.height)
	require.NoError(t, k.compute(parallel))

	serial := make([]uint32, k.width*k.height)
	for y := 0; y < k.height; y++ {
		k.computeRow(serial, y)
	}

	assert.Equal(t, serial, parallel)
}

func TestGridChecksum_ClampsToGridSize(t *testing.T) {
	result := []uint32{10, 20, 30}

	assert.Equal(t, uint64(60), gridChecksum(result, 1000))
	assert.Equal(t, uint64(30), gridChecksum(result, 2))
}

func TestMandelbrotBenchmark(t *testing.T) {
	k := newMandelbrot(clock.RealClock{}, common.NewNoopMetrics(), 4, 2, 1000)

	assert.Equal(t, "mandelbrot", k.Name())
	assert.Equal(t, bench.CategoryGraphics, k.Category())
	require.NoError(t, k.Warmup(context.Background()))
	result, err := k.Run(context.Background())
	require.NoError(t, err)
	// Sum of the full 4x2 grid computed above.
	assert.Equal(t, "3011", result.Checksum)

	again, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Checksum, again.Checksum)
}
