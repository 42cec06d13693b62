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
	"strconv"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/workerpool"
)

const (
	mandelbrotWidth          = 4096
	mandelbrotHeight         = 4096
	mandelbrotMaxIter uint32 = 1000

	// mandelbrotChecksumPoints is how many leading grid cells feed the
	// checksum.
	mandelbrotChecksumPoints = 1000

	// mandelbrotWarmupRows is how many rows a warm-up computes serially.
	mandelbrotWarmupRows = 10
)

// mandelbrotPoint iterates z = z*z + c from zero and returns the iteration
// count at which z escaped the radius-2 disk, capped at maxIter.
func mandelbrotPoint(cx, cy float64, maxIter uint32) uint32 {
	x := 0.0
	y := 0.0
	var iteration uint32

	for x*x+y*y <= 4.0 && iteration < maxIter {
		xtemp := x*x - y*y + cx
		y = 2*x*y + cy
		x = xtemp
		iteration++
	}
	return iteration
}

// gridChecksum sums the leading cells of the iteration grid.
func gridChecksum(result []uint32, points int) uint64 {
	if points > len(result) {
		points = len(result)
	}
	var checksum uint64
	for _, v := range result[:points] {
		checksum += uint64(v)
	}
	return checksum
}

type mandelbrot struct {
	clock        clock.Clock
	metricHandle common.MetricHandle
	width        int
	height       int
	maxIter      uint32
}

// NewMandelbrot returns the 4096x4096 escape-time grid computation.
func NewMandelbrot(c clock.Clock, metricHandle common.MetricHandle) bench.Benchmark {
	return newMandelbrot(c, metricHandle, mandelbrotWidth, mandelbrotHeight, mandelbrotMaxIter)
}

func newMandelbrot(c clock.Clock, metricHandle common.MetricHandle, width, height int, maxIter uint32) *mandelbrot {
	return &mandelbrot{
		clock:        c,
		metricHandle: metricHandle,
		width:        width,
		height:       height,
		maxIter:      maxIter,
	}
}

func (m *mandelbrot) Name() string { return "mandelbrot" }

func (m *mandelbrot) Category() bench.Category { return bench.CategoryGraphics }

// computeRow fills one row of the iteration grid. The view spans re in
// [-2.5, 1.0] and im in [-1.0, 1.0].
func (m *mandelbrot) computeRow(result []uint32, y int) {
	const (
		minRe = -2.5
		maxRe = 1.0
		minIm = -1.0
		maxIm = 1.0
	)

	for x := 0; x < m.width; x++ {
		cx := minRe + float64(x)/float64(m.width)*(maxRe-minRe)
		cy := minIm + float64(y)/float64(m.height)*(maxIm-minIm)
		result[y*m.width+x] = mandelbrotPoint(cx, cy, m.maxIter)
	}
}

// compute fills the whole grid, one pool task per row. Stop is the barrier
// that makes every row visible to the caller.
func (m *mandelbrot) compute(result []uint32) error {
	pool, err := workerpool.NewStaticWorkerPoolForCurrentCPU(m.metricHandle)
	if err != nil {
		return err
	}

	for y := 0; y < m.height; y++ {
		err := pool.Submit(workerpool.TaskFunc(func() {
			m.computeRow(result, y)
		}))
		if err != nil {
			pool.Stop()
			return err
		}
	}

	pool.Stop()
	return nil
}

// Warmup computes the top rows of the grid serially.
func (m *mandelbrot) Warmup(ctx context.Context) error {
	result := make([]uint32, m.width*m.height)
	rows := mandelbrotWarmupRows
	if rows > m.height {
		rows = m.height
	}
	for y := 0; y < rows; y++ {
		m.computeRow(result, y)
	}
	return nil
}

func (m *mandelbrot) Run(ctx context.Context) (bench.Result, error) {
	result := make([]uint32, m.width*m.height)

	start := m.clock.Now()
	err := m.compute(result)
	elapsed := m.clock.Now().Sub(start)
	if err != nil {
		return bench.Result{}, err
	}

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: strconv.FormatUint(gridChecksum(result, mandelbrotChecksumPoints), 10),
	}, nil
}
