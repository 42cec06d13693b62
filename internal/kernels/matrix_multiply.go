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

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"golang.org/x/sync/errgroup"
)

const (
	matrixSize     = 1024
	matrixSections = 8
)

// newMatrixOperands builds the two input matrices, a[i][j] = i+j and
// b[i][j] = i*j.
func newMatrixOperands(size int) (a, b [][]float64) {
	a = make([][]float64, size)
	b = make([][]float64, size)
	for i := 0; i < size; i++ {
		a[i] = make([]float64, size)
		b[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			a[i][j] = float64(i + j)
			b[i][j] = float64(i * j)
		}
	}
	return a, b
}

// multiplyMatrices computes a times b, splitting the rows of the result into
// the given number of contiguous sections computed in parallel. The last
// section absorbs the remainder rows.
func multiplyMatrices(ctx context.Context, a, b [][]float64, sections int) ([][]float64, error) {
	size := len(a)
	result := make([][]float64, size)
	for i := range result {
		result[i] = make([]float64, size)
	}

	g, _ := errgroup.WithContext(ctx)
	rowsPerSection := size / sections
	for s := 0; s < sections; s++ {
		startRow := s * rowsPerSection
		endRow := startRow + rowsPerSection
		if s == sections-1 {
			endRow = size
		}

		g.Go(func() error {
			for i := startRow; i < endRow; i++ {
				for j := 0; j < size; j++ {
					sum := 0.0
					for k := 0; k < size; k++ {
						sum += a[i][k] * b[k][j]
					}
					result[i][j] = sum
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// matrixChecksum sums the first row of the result.
func matrixChecksum(result [][]float64) float64 {
	checksum := 0.0
	for _, v := range result[0] {
		checksum += v
	}
	return checksum
}

type matrixMultiply struct {
	clock    clock.Clock
	size     int
	sections int
}

// NewMatrixMultiply returns the 1024x1024 dense multiplication workload.
func NewMatrixMultiply(c clock.Clock) bench.Benchmark {
	return newMatrixMultiply(c, matrixSize, matrixSections)
}

func newMatrixMultiply(c clock.Clock, size, sections int) *matrixMultiply {
	return &matrixMultiply{clock: c, size: size, sections: sections}
}

func (m *matrixMultiply) Name() string { return "matrix_multiply" }

func (m *matrixMultiply) Category() bench.Category { return bench.CategoryParallelization }

// Warmup performs one full-size multiplication, the same warm-up the workload
// has always used.
func (m *matrixMultiply) Warmup(ctx context.Context) error {
	a, b := newMatrixOperands(m.size)
	_, err := multiplyMatrices(ctx, a, b, m.sections)
	return err
}

func (m *matrixMultiply) Run(ctx context.Context) (bench.Result, error) {
	a, b := newMatrixOperands(m.size)

	start := m.clock.Now()
	result, err := multiplyMatrices(ctx, a, b, m.sections)
	elapsed := m.clock.Now().Sub(start)
	if err != nil {
		return bench.Result{}, err
	}

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: checksumFloat(matrixChecksum(result)),
	}, nil
}
