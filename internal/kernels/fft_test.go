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
	"math"
	"math/cmplx"
	"strconv"
	"testing"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveDFT is the quadratic reference transform.
func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += x[j] * cmplx.Rect(1, angle)
		}
		out[k] = sum
	}
	return out
}

func TestNewSignal(t *testing.T) {
	buffer := newSignal(16)

	require.Len(t, buffer, 16)
	assert.Equal(t, complex(0, 0), buffer[0])
	for _, c := range buffer {
		assert.Equal(t, float64(0), imag(c))
	}
}

func TestFFTTransform_Impulse(t *testing.T) {
	// The transform of a unit impulse is flat.
	x := []complex128{1, 0, 0, 0}

	fftTransform(x)

	assert.Equal(t, []complex128{1, 1, 1, 1}, x)
}

func TestFFTTransform_Constant(t *testing.T) {
	// A constant signal concentrates in bin zero.
	x := []complex128{1, 1, 1, 1}

	fftTransform(x)

	assert.Equal(t, []complex128{4, 0, 0, 0}, x)
}

func TestFFTTransform_MatchesNaiveDFT(t *testing.T) {
	x := newSignal(64)
	want := naiveDFT(x)

	fftTransform(x)

	for k := range x {
		assert.InDelta(t, real(want[k]), real(x[k]), 1e-9)
		assert.InDelta(t, imag(want[k]), imag(x[k]), 1e-9)
	}
}

func TestFFTTransform_SineSpikes(t *testing.T) {
	// One full cycle of a sine over 8 samples lands in bins 1 and 7 with
	// modulus n/2.
	x := make([]complex128, 8)
	for j := range x {
		x[j] = complex(math.Sin(2*math.Pi*float64(j)/8), 0)
	}

	fftTransform(x)

	assert.InDelta(t, 4.0, cmplx.Abs(x[1]), 1e-12)
	assert.InDelta(t, 4.0, cmplx.Abs(x[7]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(x[0]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(x[3]), 1e-12)
}

func TestSpectrumChecksum_ClampsToInputSize(t *testing.T) {
	x := []complex128{complex(3, 4), complex(0, 1)}

	assert.InDelta(t, 6.0, spectrumChecksum(x, 1000), 1e-12)
	assert.InDelta(t, 5.0, spectrumChecksum(x, 1), 1e-12)
}

func TestFFTBenchmark(t *testing.T) {
	k := newFFT(clock.RealClock{}, 4096)

	assert.Equal(t, "fft", k.Name())
	assert.Equal(t, bench.CategoryHeavyCompute, k.Category())
	require.NoError(t, k.Warmup(context.Background()))
	result, err := k.Run(context.Background())
	require.NoError(t, err)

	// Both tones fall on exact bins inside the first 1000, each with
	// modulus n/2, so the checksum is n up to rounding noise.
	checksum, err := strconv.ParseFloat(result.Checksum, 64)
	require.NoError(t, err)
	assert.InDelta(t, 4096.0, checksum, 1e-6)
}
