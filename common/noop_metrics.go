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
	"time"
)

func NewNoopMetrics() MetricHandle {
	var n noopMetrics
	return &n
}

// noopMetrics discards every measurement. It is the handle of choice when
// metrics export is disabled.
type noopMetrics struct{}

func (*noopMetrics) PoolTaskCount(_ context.Context, _ int64) {}

func (*noopMetrics) PoolTaskCompletedCount(_ context.Context, _ int64) {}

func (*noopMetrics) PoolTaskFailedCount(_ context.Context, _ int64) {}

func (*noopMetrics) PoolTaskLatency(_ context.Context, _ time.Duration) {}

func (*noopMetrics) PoolQueueLength(_ context.Context, _ int64) {}

func (*noopMetrics) BenchRunCount(_ context.Context, _ int64, _ string) {}

func (*noopMetrics) BenchRunErrorCount(_ context.Context, _ int64, _ string) {}

func (*noopMetrics) BenchRunLatency(_ context.Context, _ time.Duration, _ string) {}
