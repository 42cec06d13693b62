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

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
)

const (
	fftSize           = 16_777_216 // 2^24
	fftWarmupSize     = 1024
	fftChecksumPoints = 1000
)

// newSignal samples the sum of a 50 Hz and a 120 Hz sine over a unit
// interval.
func newSignal(n int) []complex128 {
	buffer := make([]complex128, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		signal := math.Sin(2*math.Pi*50*t) + math.Sin(2*math.Pi*120*t)
		buffer[i] = complex(signal, 0)
	}
	return buffer
}

// fftTransform computes the discrete Fourier transform of x in place using
// recursive radix-2 decimation in time. len(x) must be a power of two. The
// workload is deliberately serial; it measures single-core transform speed.
func fftTransform(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	fftTransform(even)
	fftTransform(odd)

	for k := 0; k < n/2; k++ {
		t := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n)) * odd[k]
		x[k] = even[k] + t
		x[k+n/2] = even[k] - t
	}
}

// spectrumChecksum sums the moduli of the leading bins of the transform.
func spectrumChecksum(x []complex128, points int) float64 {
	if points > len(x) {
		points = len(x)
	}
	checksum := 0.0
	for _, c := range x[:points] {
		checksum += cmplx.Abs(c)
	}
	return checksum
}

type fft struct {
	clock clock.Clock
	size  int
}

// NewFFT returns the transform workload over 2^24 samples.
func NewFFT(c clock.Clock) bench.Benchmark {
	return newFFT(c, fftSize)
}

func newFFT(c clock.Clock, size int) *fft {
	return &fft{clock: c, size: size}
}

func (f *fft) Name() string { return "fft" }

func (f *fft) Category() bench.Category { return bench.CategoryHeavyCompute }

// Warmup transforms a small ramp signal.
func (f *fft) Warmup(ctx context.Context) error {
	warmup := make([]complex128, fftWarmupSize)
	for i := range warmup {
		warmup[i] = complex(float64(i), 0)
	}
	fftTransform(warmup)
	return nil
}

func (f *fft) Run(ctx context.Context) (bench.Result, error) {
	buffer := newSignal(f.size)

	start := f.clock.Now()
	fftTransform(buffer)
	elapsed := f.clock.Now().Sub(start)

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: checksumFloat(spectrumChecksum(buffer, fftChecksumPoints)),
	}, nil
}
