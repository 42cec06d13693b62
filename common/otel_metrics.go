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
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	poolMeter  = otel.Meter("pool")
	benchMeter = otel.Meter("bench")

	// benchmarkKey carries the benchmark name on harness metrics.
	benchmarkKey = attribute.Key("benchmark")

	benchmarkOptionCache sync.Map

	// Latency histograms share one bucket layout, expressed in the unit of
	// the individual metric.
	defaultLatencyDistribution = metric.WithExplicitBucketBoundaries(
		50, 100, 200, 400, 800, 1200, 2000, 5000, 10000, 20000, 50000,
		100000, 200000, 500000, 1000000, 2000000, 5000000, 10000000,
		50000000, 100000000, 300000000, 500000000)
)

func loadOrStoreAttrOption[K comparable](mp *sync.Map, key K, attrSetGenFunc func() attribute.Set) metric.MeasurementOption {
	attrSet, ok := mp.Load(key)
	if ok {
		return attrSet.(metric.MeasurementOption)
	}
	v, _ := mp.LoadOrStore(key, metric.WithAttributeSet(attrSetGenFunc()))
	return v.(metric.MeasurementOption)
}

func benchmarkAttrOption(benchmark string) metric.MeasurementOption {
	return loadOrStoreAttrOption(&benchmarkOptionCache, benchmark,
		func() attribute.Set {
			return attribute.NewSet(benchmarkKey.String(benchmark))
		})
}

// otelMetrics maintains the list of all metrics computed by computebench.
type otelMetrics struct {
	poolTaskCountAtomic,
	poolTaskCompletedCountAtomic,
	poolTaskFailedCountAtomic,
	poolQueueLengthAtomic *atomic.Int64

	poolTaskLatency metric.Float64Histogram

	benchRunCount      metric.Int64Counter
	benchRunErrorCount metric.Int64Counter
	benchRunLatency    metric.Float64Histogram
}

func (o *otelMetrics) PoolTaskCount(_ context.Context, inc int64) {
	o.poolTaskCountAtomic.Add(inc)
}

func (o *otelMetrics) PoolTaskCompletedCount(_ context.Context, inc int64) {
	o.poolTaskCompletedCountAtomic.Add(inc)
}

func (o *otelMetrics) PoolTaskFailedCount(_ context.Context, inc int64) {
	o.poolTaskFailedCountAtomic.Add(inc)
}

func (o *otelMetrics) PoolTaskLatency(ctx context.Context, latency time.Duration) {
	o.poolTaskLatency.Record(ctx, float64(latency.Microseconds()))
}

func (o *otelMetrics) PoolQueueLength(_ context.Context, value int64) {
	o.poolQueueLengthAtomic.Store(value)
}

func (o *otelMetrics) BenchRunCount(ctx context.Context, inc int64, benchmark string) {
	o.benchRunCount.Add(ctx, inc, benchmarkAttrOption(benchmark))
}

func (o *otelMetrics) BenchRunErrorCount(ctx context.Context, inc int64, benchmark string) {
	o.benchRunErrorCount.Add(ctx, inc, benchmarkAttrOption(benchmark))
}

func (o *otelMetrics) BenchRunLatency(ctx context.Context, latency time.Duration, benchmark string) {
	o.benchRunLatency.Record(ctx, float64(latency.Milliseconds()), benchmarkAttrOption(benchmark))
}

func NewOTelMetrics() (MetricHandle, error) {
	var poolTaskCountAtomic, poolTaskCompletedCountAtomic,
		poolTaskFailedCountAtomic, poolQueueLengthAtomic atomic.Int64

	_, err1 := poolMeter.Int64ObservableCounter("pool/task_count",
		metric.WithDescription("The cumulative number of tasks submitted to the worker pool."),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			obsrv.Observe(poolTaskCountAtomic.Load())
			return nil
		}))
	_, err2 := poolMeter.Int64ObservableCounter("pool/task_completed_count",
		metric.WithDescription("The cumulative number of tasks executed to completion by the worker pool."),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			obsrv.Observe(poolTaskCompletedCountAtomic.Load())
			return nil
		}))
	_, err3 := poolMeter.Int64ObservableCounter("pool/task_failed_count",
		metric.WithDescription("The cumulative number of tasks that panicked while executing."),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			obsrv.Observe(poolTaskFailedCountAtomic.Load())
			return nil
		}))
	_, err4 := poolMeter.Int64ObservableGauge("pool/queue_length",
		metric.WithDescription("The number of tasks waiting in the pool queue."),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			obsrv.Observe(poolQueueLengthAtomic.Load())
			return nil
		}))
	poolTaskLatency, err5 := poolMeter.Float64Histogram("pool/task_latencies",
		metric.WithDescription("The cumulative distribution of task execution latencies."),
		metric.WithUnit("us"),
		defaultLatencyDistribution)

	benchRunCount, err6 := benchMeter.Int64Counter("bench/run_count",
		metric.WithDescription("The cumulative number of benchmark runs started, along with the benchmark name."))
	benchRunErrorCount, err7 := benchMeter.Int64Counter("bench/run_error_count",
		metric.WithDescription("The cumulative number of failed benchmark runs, along with the benchmark name."))
	benchRunLatency, err8 := benchMeter.Float64Histogram("bench/run_latencies",
		metric.WithDescription("The cumulative distribution of benchmark run latencies."),
		metric.WithUnit("ms"),
		defaultLatencyDistribution)

	if err := errors.Join(err1, err2, err3, err4, err5, err6, err7, err8); err != nil {
		return nil, err
	}

	return &otelMetrics{
		poolTaskCountAtomic:          &poolTaskCountAtomic,
		poolTaskCompletedCountAtomic: &poolTaskCompletedCountAtomic,
		poolTaskFailedCountAtomic:    &poolTaskFailedCountAtomic,
		poolQueueLengthAtomic:        &poolQueueLengthAtomic,
		poolTaskLatency:              poolTaskLatency,
		benchRunCount:                benchRunCount,
		benchRunErrorCount:           benchRunErrorCount,
		benchRunLatency:              benchRunLatency,
	}, nil
}
