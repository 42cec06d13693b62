// Copyright 2024 Google LLC
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

package common

import (
	"context"
	"errors"
	"time"
)

type ShutdownFn func(ctx context.Context) error

// JoinShutdownFunc combines the provided shutdown functions into a single function.
func JoinShutdownFunc(shutdownFns ...ShutdownFn) ShutdownFn {
	return func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFns {
			if fn == nil {
				continue
			}
			err = errors.Join(err, fn(ctx))
		}
		return err
	}
}

// PoolMetricHandle records what the worker pool does: how many tasks were
// submitted, how many ran to completion or panicked, how long individual
// tasks took, and how deep the queue got.
type PoolMetricHandle interface {
	PoolTaskCount(ctx context.Context, inc int64)
	PoolTaskCompletedCount(ctx context.Context, inc int64)
	PoolTaskFailedCount(ctx context.Context, inc int64)
	PoolTaskLatency(ctx context.Context, latency time.Duration)
	PoolQueueLength(ctx context.Context, value int64)
}

// BenchMetricHandle records harness-level activity per benchmark.
type BenchMetricHandle interface {
	BenchRunCount(ctx context.Context, inc int64, benchmark string)
	BenchRunErrorCount(ctx context.Context, inc int64, benchmark string)
	BenchRunLatency(ctx context.Context, latency time.Duration, benchmark string)
}

type MetricHandle interface {
	PoolMetricHandle
	BenchMetricHandle
}

// CaptureRunMetrics is a convenience wrapper that records the outcome of a
// single benchmark run on the supplied handle.
func CaptureRunMetrics(ctx context.Context, metricHandle MetricHandle, benchmark string, latency time.Duration, err error) {
	metricHandle.BenchRunCount(ctx, 1, benchmark)
	if err != nil {
		metricHandle.BenchRunErrorCount(ctx, 1, benchmark)
		return
	}
	metricHandle.BenchRunLatency(ctx, latency, benchmark)
}
