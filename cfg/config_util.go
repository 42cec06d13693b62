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
	"runtime"
)

// DefaultWorkerCount returns the worker count used when worker-count is set
// to 0, which is one worker per available CPU.
func DefaultWorkerCount() int {
	return max(1, runtime.NumCPU())
}

// ResolveWorkerCount maps the configured worker-count to the number of
// workers the pool actually spawns.
func ResolveWorkerCount(config *Config) int {
	if config.Pool.WorkerCount == 0 {
		return DefaultWorkerCount()
	}
	return int(config.Pool.WorkerCount)
}

func IsPrometheusEnabled(config *Config) bool {
	return config.Metrics.PrometheusPort != 0
}
