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

package bench_test

import (
	"testing"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := bench.NewRegistry()
	b := &fakeBenchmark{name: "alpha", category: bench.CategoryParallelization}

	err := r.Register(b)

	require.NoError(t, err)
	got, err := r.Lookup("alpha")
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestRegistry_RegisterDuplicateFails(t *testing.T) {
	r := bench.NewRegistry()
	require.NoError(t, r.Register(&fakeBenchmark{name: "alpha"}))

	err := r.Register(&fakeBenchmark{name: "alpha"})

	assert.ErrorContains(t, err, "already registered")
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := bench.NewRegistry()

	b, err := r.Lookup("nope")

	assert.Nil(t, b)
	assert.ErrorContains(t, err, `unknown benchmark: "nope"`)
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	r := bench.NewRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, r.Register(&fakeBenchmark{name: name}))
	}

	list := r.List()

	require.Len(t, list, 3)
	var names []string
	for _, b := range list {
		names = append(names, b.Name())
	}
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names)
}

func TestRegistry_ListReturnsACopy(t *testing.T) {
	r := bench.NewRegistry()
	require.NoError(t, r.Register(&fakeBenchmark{name: "alpha"}))

	list := r.List()
	list[0] = &fakeBenchmark{name: "intruder"}

	got, err := r.Lookup("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name())
	assert.Equal(t, "alpha", r.List()[0].Name())
}
