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

package clock

import (
	"sync"
	"time"
)

// A clock that allows for manipulation of the time, which does not change
// unless AdvanceTime or SetTime is called.
type SimulatedClock struct {
	mu sync.Mutex

	t      time.Time        // GUARDED_BY(mu)
	timers []simulatedTimer // GUARDED_BY(mu)
}

// A timer registered by After, waiting for the clock to reach its deadline.
type simulatedTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// NewSimulatedClock returns a simulated clock initialized to the given time.
func NewSimulatedClock(t time.Time) *SimulatedClock {
	return &SimulatedClock{t: t}
}

func (sc *SimulatedClock) Now() time.Time {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.t
}

// After returns a channel that receives the deadline once the clock has been
// moved at or past it. Non-positive durations fire immediately with the
// current time.
func (sc *SimulatedClock) After(d time.Duration) <-chan time.Time {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- sc.t
		return ch
	}

	sc.timers = append(sc.timers, simulatedTimer{deadline: sc.t.Add(d), ch: ch})
	return ch
}

// SetTime sets the current time according to the clock.
func (sc *SimulatedClock) SetTime(t time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.t = t
	sc.fireDueTimers()
}

// AdvanceTime advances the current time according to the clock by the
// supplied duration.
func (sc *SimulatedClock) AdvanceTime(d time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.t = sc.t.Add(d)
	sc.fireDueTimers()
}

// LOCKS_REQUIRED(sc.mu)
func (sc *SimulatedClock) fireDueTimers() {
	remaining := sc.timers[:0]
	for _, tm := range sc.timers {
		if tm.deadline.After(sc.t) {
			remaining = append(remaining, tm)
			continue
		}
		tm.ch <- tm.deadline
	}
	sc.timers = remaining
}
