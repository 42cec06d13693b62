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

package bench

import (
	"fmt"

	"github.com/adityaanilraut/go-compute-bench/internal/locker"
)

// Registry holds the benchmarks available to a run. Lookups may happen
// concurrently, registration happens up front.
type Registry struct {
	mu locker.RWLocker

	// Keyed by benchmark name.
	//
	// INVARIANT: For each k, byName[k].Name() == k
	// INVARIANT: len(byName) == len(ordered)
	//
	// GUARDED_BY(mu)
	byName map[string]Benchmark

	// Benchmarks in registration order, the order a full run executes them.
	//
	// GUARDED_BY(mu)
	ordered []Benchmark
}

func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]Benchmark),
	}
	r.mu = locker.NewRW("BenchmarkRegistry", r.checkInvariants)

	return r
}

// Panic if any internal invariants have been violated.
func (r *Registry) checkInvariants() {
	// INVARIANT: For each k, byName[k].Name() == k
	for k, b := range r.byName {
		if b.Name() != k {
			panic(fmt.Sprintf("registry key %q does not match benchmark name %q", k, b.Name()))
		}
	}

	// INVARIANT: len(byName) == len(ordered)
	if len(r.byName) != len(r.ordered) {
		panic(fmt.Sprintf("registry size mismatch: %d keyed vs %d ordered", len(r.byName), len(r.ordered)))
	}
}

// Register adds a benchmark to the registry. Names must be unique.
func (r *Registry) Register(b Benchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := b.Name()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("benchmark %q is already registered", name)
	}

	r.byName[name] = b
	r.ordered = append(r.ordered, b)
	return nil
}

// Lookup returns the benchmark registered under the given name.
func (r *Registry) Lookup(name string) (Benchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark: %q", name)
	}
	return b, nil
}

// List returns the registered benchmarks in registration order.
func (r *Registry) List() []Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Benchmark, len(r.ordered))
	copy(out, r.ordered)
	return out
}
