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

import "errors"

// ErrPoolStopped is returned by Submit once Stop has begun.
var ErrPoolStopped = errors.New("worker pool is stopped")

// Task interface defines the contract for a runnable task. Execute returns
// nothing; a task that needs to report a result does so through state it
// captures, with its own synchronization.
type Task interface {
	Execute()
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func()

func (f TaskFunc) Execute() { f() }

type WorkerPool interface {
	// Submit adds a task to the worker pool for execution. It returns
	// without waiting for the task to run, and fails with ErrPoolStopped
	// once Stop has begun. A task accepted by Submit runs exactly once.
	Submit(task Task) error

	// Stop gracefully shuts down the worker pool, waiting for all accepted
	// tasks to complete before the workers exit.
	Stop()
}
