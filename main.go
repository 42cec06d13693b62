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

// A benchmark suite for CPU-bound workloads sharing one worker pool.
//
// Usage:
//
//	computebench run [benchmark ...]
package main

import (
	"log"

	"github.com/adityaanilraut/go-compute-bench/cmd"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
	"github.com/adityaanilraut/go-compute-bench/internal/perf"
)

// Detect a panic in the main goroutine and get it into the log file.
func handlePanic() {
	if a := recover(); a != nil {
		logger.Fatal("Panic: %v", a)
	}
}

func main() {
	defer handlePanic()

	// Make logging output better.
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	// Set up profiling handlers.
	go perf.HandleCPUProfileSignals()
	go perf.HandleMemoryProfileSignals()

	cmd.Execute()
}
