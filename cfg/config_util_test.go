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

package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DefaultWorkerCount(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkerCount(), 1)
}

func TestResolveWorkerCount(t *testing.T) {
	testCases := []struct {
		name                string
		config              *Config
		expectedWorkerCount int
	}{
		{
			name: "Config with worker-count set.",
			config: &Config{
				Pool: PoolConfig{
					WorkerCount: 4,
				},
			},
			expectedWorkerCount: 4,
		},
		{
			name: "Config with worker-count of one.",
			config: &Config{
				Pool: PoolConfig{
					WorkerCount: 1,
				},
			},
			expectedWorkerCount: 1,
		},
		{
			name:                "Empty Config.",
			config:              &Config{},
			expectedWorkerCount: DefaultWorkerCount(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedWorkerCount, ResolveWorkerCount(tc.config))
		})
	}
}

func TestIsPrometheusEnabled(t *testing.T) {
	testCases := []struct {
		name                        string
		config                      *Config
		expectedIsPrometheusEnabled bool
	}{
		{
			name: "Config with prometheus-port set.",
			config: &Config{
				Metrics: MetricsConfig{
					PrometheusPort: 9100,
				},
			},
			expectedIsPrometheusEnabled: true,
		},
		{
			name:                        "Empty Config.",
			config:                      &Config{},
			expectedIsPrometheusEnabled: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedIsPrometheusEnabled, IsPrometheusEnabled(tc.config))
		})
	}
}
