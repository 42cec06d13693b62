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

// queueNode represents a node in the task queue.
type queueNode struct {
	task Task
	next *queueNode
}

// taskQueue is an unbounded FIFO of pending tasks backed by a linked list.
// It is not safe for concurrent use; the pool serializes access with its
// own lock.
type taskQueue struct {
	start, end *queueNode
	size       int
}

// newTaskQueue creates a new empty queue.
func newTaskQueue() *taskQueue {
	return &taskQueue{
		nil,
		nil,
		0,
	}
}

// IsEmpty returns true if the queue is empty.
func (q *taskQueue) IsEmpty() bool {
	return q.size == 0
}

// Peek returns the front of the queue without removing it.
func (q *taskQueue) Peek() Task {
	if q.size == 0 {
		// Returns nil if the queue is empty.
		return nil
	}
	return q.start.task
}

// Push puts a task on the end of the queue.
func (q *taskQueue) Push(task Task) {
	n := &queueNode{task, nil}
	if q.size == 0 {
		q.start = n
		q.end = n
	} else {
		q.end.next = n
		q.end = n
	}
	q.size++
}

// Pop removes and returns the front task from the queue.
func (q *taskQueue) Pop() Task {
	if q.size == 0 {
		// Returns nil if the queue is empty.
		return nil
	}

	n := q.start
	if q.size == 1 {
		q.start = nil
		q.end = nil
	} else {
		q.start = q.start.next
	}
	q.size--
	return n.task
}

// Len returns the number of tasks in the queue.
func (q *taskQueue) Len() int {
	return q.size
}
