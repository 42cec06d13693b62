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
	"sync/atomic"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/format"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
	"github.com/adityaanilraut/go-compute-bench/internal/workerpool"
)

const threadPoolWarmupTasks = 100

// heavyComputation is the per-task busywork: the sum of n*i for i below
// 1000, with wrapping uint64 arithmetic.
func heavyComputation(n uint64) uint64 {
	var result uint64
	for i := uint64(0); i < 1000; i++ {
		result += n * i
	}
	return result
}

type threadPool struct {
	clock        clock.Clock
	metricHandle common.MetricHandle
	workerCount  int64
	taskCount    int64
}

// NewThreadPool returns the worker pool workload: taskCount submissions of
// heavyComputation spread over workerCount workers, with pool construction
// and drain included in the measured phase.
func NewThreadPool(c clock.Clock, metricHandle common.MetricHandle, workerCount, taskCount int64) bench.Benchmark {
	return &threadPool{
		clock:        c,
		metricHandle: metricHandle,
		workerCount:  workerCount,
		taskCount:    taskCount,
	}
}

func (t *threadPool) Name() string { return "thread_pool" }

func (t *threadPool) Category() bench.Category { return bench.CategoryParallelization }

// submitAndDrain pushes count tasks through a fresh pool and waits for every
// one of them to finish. Each task adds its computation into the counter cell
// it is handed.
func (t *threadPool) submitAndDrain(count int64, counter *atomic.Uint64) error {
	pool, err := workerpool.NewStaticWorkerPool(t.workerCount, t.metricHandle)
	if err != nil {
		return err
	}

	for i := int64(0); i < count; i++ {
		n := uint64(i)
		err := pool.Submit(workerpool.TaskFunc(func() {
			counter.Add(heavyComputation(n))
		}))
		if err != nil {
			pool.Stop()
			return err
		}
	}

	// Stop drains the queue before the workers exit, so every submitted task
	// is counted once it returns.
	pool.Stop()
	return nil
}

func (t *threadPool) Warmup(ctx context.Context) error {
	var counter atomic.Uint64
	return t.submitAndDrain(threadPoolWarmupTasks, &counter)
}

func (t *threadPool) Run(ctx context.Context) (bench.Result, error) {
	var counter atomic.Uint64

	start := t.clock.Now()
	err := t.submitAndDrain(t.taskCount, &counter)
	elapsed := t.clock.Now().Sub(start)
	if err != nil {
		return bench.Result{}, err
	}

	finalCount := counter.Load()
	logger.Debugf("thread_pool: %s tasks drained, final count %d", format.Count(t.taskCount), finalCount)

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: strconv.FormatUint(finalCount, 10),
	}, nil
}
