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

	"github.com/stretchr/testify/mock"
)

type MockMetricHandle struct {
	mock.Mock
}

func (m *MockMetricHandle) PoolTaskCount(ctx context.Context, inc int64) {
	m.Called(ctx, inc)
}

func (m *MockMetricHandle) PoolTaskCompletedCount(ctx context.Context, inc int64) {
	m.Called(ctx, inc)
}

func (m *MockMetricHandle) PoolTaskFailedCount(ctx context.Context, inc int64) {
	m.Called(ctx, inc)
}

func (m *MockMetricHandle) PoolTaskLatency(ctx context.Context, latency time.Duration) {
	m.Called(ctx, latency)
}

func (m *MockMetricHandle) PoolQueueLength(ctx context.Context, value int64) {
	m.Called(ctx, value)
}

func (m *MockMetricHandle) BenchRunCount(ctx context.Context, inc int64, benchmark string) {
	m.Called(ctx, inc, benchmark)
}

func (m *MockMetricHandle) BenchRunErrorCount(ctx context.Context, inc int64, benchmark string) {
	m.Called(ctx, inc, benchmark)
}

func (m *MockMetricHandle) BenchRunLatency(ctx context.Context, latency time.Duration, benchmark string) {
	m.Called(ctx, latency, benchmark)
}
