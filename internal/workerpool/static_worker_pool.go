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

package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/locker"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
)

// staticWorkerPool runs tasks on a fixed set of workers that share one FIFO
// queue. Idle workers sleep on a condition variable. A worker exits only
// once Stop has been called and the queue is fully drained, so no accepted
// task is ever abandoned.
type staticWorkerPool struct {
	workerCount int64

	// mu guards the queue and the stopped flag. cond is associated with mu
	// and signals workers sleeping in dequeueOrWait.
	mu   locker.Locker
	cond *sync.Cond

	// queue holds tasks not yet claimed by a worker.
	// GUARDED_BY(mu)
	queue *taskQueue

	// stopped is set once by Stop and never cleared.
	// GUARDED_BY(mu)
	stopped bool

	// wg tracks the worker goroutines so Stop can join them.
	wg sync.WaitGroup

	metricHandle common.MetricHandle
}

// NewStaticWorkerPool creates a pool with the given number of workers, each
// immediately entering its drain loop. The metric handle must be non-nil;
// pass common.NewNoopMetrics() when metrics are not being exported.
func NewStaticWorkerPool(workerCount int64, metricHandle common.MetricHandle) (*staticWorkerPool, error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("invalid worker count: %d", workerCount)
	}

	pool := &staticWorkerPool{
		workerCount:  workerCount,
		queue:        newTaskQueue(),
		metricHandle: metricHandle,
	}
	pool.mu = locker.New("WorkerPool", pool.checkInvariants)
	pool.cond = sync.NewCond(pool.mu)

	logger.Debugf("workerpool: starting %d workers", workerCount)
	for i := int64(0); i < workerCount; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

// NewStaticWorkerPoolForCurrentCPU creates a pool with one worker per
// available CPU.
func NewStaticWorkerPoolForCurrentCPU(metricHandle common.MetricHandle) (WorkerPool, error) {
	return newStaticWorkerPoolForCurrentCPU(metricHandle, runtime.NumCPU)
}

func newStaticWorkerPoolForCurrentCPU(metricHandle common.MetricHandle, numCPU func() int) (WorkerPool, error) {
	workerCount := numCPU()
	if workerCount < 1 {
		workerCount = 1
	}
	return NewStaticWorkerPool(int64(workerCount), metricHandle)
}

// Panic if any internal invariants have been violated. Runs under mu on
// every lock transition, so it must stay O(1).
func (p *staticWorkerPool) checkInvariants() {
	// INVARIANT: queue length is never negative.
	if p.queue.Len() < 0 {
		panic(fmt.Sprintf("Unexpected negative queue length: %d", p.queue.Len()))
	}
	// INVARIANT: queue emptiness agrees with queue length.
	if p.queue.IsEmpty() != (p.queue.Len() == 0) {
		panic(fmt.Sprintf("Queue emptiness disagrees with length %d", p.queue.Len()))
	}
}

// Submit enqueues a task for execution. It never blocks waiting for the
// task to run.
func (p *staticWorkerPool) Submit(task Task) error {
	if task == nil {
		return fmt.Errorf("nil task")
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}
	p.queue.Push(task)
	queueLen := p.queue.Len()
	p.mu.Unlock()

	// Wake one sleeping worker. Signalling after the unlock lets the woken
	// worker take the lock without an extra context switch.
	p.cond.Signal()

	p.metricHandle.PoolTaskCount(context.Background(), 1)
	p.metricHandle.PoolQueueLength(context.Background(), int64(queueLen))
	return nil
}

// Stop sets the stop flag, wakes every worker and blocks until all of them
// have drained the queue and exited. Every task accepted before Stop runs
// to completion before Stop returns. Calling Stop more than once is safe;
// later calls simply wait for the same drain.
func (p *staticWorkerPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.wg.Wait()
	logger.Debugf("workerpool: all %d workers stopped", p.workerCount)
}

// worker repeatedly claims and runs tasks until told to terminate.
func (p *staticWorkerPool) worker() {
	defer p.wg.Done()
	for {
		task := p.dequeueOrWait()
		if task == nil {
			return
		}
		p.execute(task)
	}
}

// dequeueOrWait blocks until a task is available and claims it. It returns
// nil only when the pool is stopped and the queue is empty, which tells the
// calling worker to terminate.
func (p *staticWorkerPool) dequeueOrWait() Task {
	p.mu.Lock()
	// The wake condition is re-checked on every iteration, so a spurious
	// wake-up never claims a task that is not there.
	for p.queue.IsEmpty() && !p.stopped {
		p.cond.Wait()
	}
	if p.queue.IsEmpty() {
		p.mu.Unlock()
		return nil
	}
	task := p.queue.Pop()
	queueLen := p.queue.Len()
	p.mu.Unlock()

	p.metricHandle.PoolQueueLength(context.Background(), int64(queueLen))
	return task
}

// execute runs the task with no lock held, so a slow task never blocks the
// queue. A panicking task is contained here and must not take down its
// worker or the pool.
func (p *staticWorkerPool) execute(task Task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("workerpool: task panicked: %v", r)
			p.metricHandle.PoolTaskFailedCount(context.Background(), 1)
		}
	}()

	task.Execute()

	p.metricHandle.PoolTaskCompletedCount(context.Background(), 1)
	p.metricHandle.PoolTaskLatency(context.Background(), time.Since(start))
}
