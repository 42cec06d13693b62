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

package perf

import (
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
	"github.com/lrita/numa"
)

// InitNuma binds the process to the first available NUMA node so that the
// worker goroutines and the buffers they touch stay on one node for the whole
// run. It logs and returns without error when the system has no NUMA support.
func InitNuma() {
	if !numa.Available() {
		logger.Infof("NUMA not available on this system.")
		return
	}

	nodes := numa.NodeMask()
	firstNode := -1
	for i := 0; i < nodes.Len(); i++ {
		if nodes.Get(i) {
			firstNode = i
			break
		}
	}

	if firstNode != -1 {
		// The choice of node is not configurable. Runs only need a stable
		// binding.
		err := numa.RunOnNode(firstNode)
		if err != nil {
			logger.Errorf("Failed to set NUMA affinity: %v", err)
		} else {
			logger.Infof("Process bound to NUMA node %d", firstNode)
		}
	}
}
