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
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []bench.BenchmarkResult {
	return []bench.BenchmarkResult{
		{
			Name:     "alpha",
			Category: bench.CategoryParallelization,
			Checksum: "123",
			Times:    []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond},
		},
		{
			Name:     "beta",
			Category: bench.CategoryOther,
			Times:    []time.Duration{50 * time.Millisecond},
			Err:      errors.New("run 2: boom"),
		},
	}
}

func sampleReport() *bench.Report {
	simulated := clock.NewSimulatedClock(time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC))
	return bench.NewReport(simulated, "1.2.3", bench.RunConfig{Runs: 3, Warmup: true, WorkerCount: 8, TaskCount: 100000}, sampleResults())
}

func TestNewReport_Envelope(t *testing.T) {
	report := sampleReport()

	_, err := uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-14T09:26:53Z", report.Timestamp)
	assert.Equal(t, "1.2.3", report.Version)
	assert.Equal(t, int64(3), report.Config.Runs)
	assert.Equal(t, int64(8), report.Config.WorkerCount)
}

func TestNewReport_SuccessfulEntry(t *testing.T) {
	report := sampleReport()

	entry, ok := report.Results["alpha"]
	require.True(t, ok)
	assert.Equal(t, bench.CategoryParallelization, entry.Category)
	assert.Equal(t, "123", entry.Checksum)
	assert.Empty(t, entry.Error)
	require.Len(t, entry.Times, 3)
	assert.InDelta(t, 0.1, entry.Times[0], 1e-12)
	assert.InDelta(t, 0.2, entry.Times[1], 1e-12)
	assert.InDelta(t, 0.3, entry.Times[2], 1e-12)
	require.NotNil(t, entry.Stats)
	assert.InDelta(t, 0.2, entry.Stats.Mean, 1e-12)
	assert.InDelta(t, 0.1, entry.Stats.Min, 1e-12)
	assert.InDelta(t, 0.3, entry.Stats.Max, 1e-12)
	// Sample standard deviation of {0.1s, 0.2s, 0.3s} is 0.1s.
	assert.InDelta(t, 0.1, entry.Stats.Std, 1e-9)
}

func TestNewReport_FailedEntryKeepsEarlierSamples(t *testing.T) {
	report := sampleReport()

	entry, ok := report.Results["beta"]
	require.True(t, ok)
	assert.Equal(t, "run 2: boom", entry.Error)
	require.Len(t, entry.Times, 1)
	assert.InDelta(t, 0.05, entry.Times[0], 1e-12)
	require.NotNil(t, entry.Stats)
	assert.InDelta(t, 0.05, entry.Stats.Mean, 1e-12)
	assert.Zero(t, entry.Stats.Std)
}

func TestNewReport_HostInfo(t *testing.T) {
	report := sampleReport()

	assert.Equal(t, runtime.GOOS, report.Host.OS)
	assert.Equal(t, runtime.GOARCH, report.Host.Arch)
	assert.Equal(t, runtime.NumCPU(), report.Host.CPUs)
	assert.Equal(t, runtime.GOMAXPROCS(0), report.Host.Gomaxprocs)
}

func TestReport_WriteFile(t *testing.T) {
	report := sampleReport()
	target := path.Join(t.TempDir(), "results", "benchmark_results.json")

	err := report.WriteFile(target)

	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var got bench.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report.RunID, got.RunID)
	assert.Equal(t, report.Timestamp, got.Timestamp)
	require.Contains(t, got.Results, "alpha")
	assert.Equal(t, "123", got.Results["alpha"].Checksum)
	// The temp file used for the atomic write must be gone.
	entries, err := os.ReadDir(path.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReport_WriteSummary(t *testing.T) {
	report := sampleReport()
	var buf bytes.Buffer

	err := report.WriteSummary(&buf, []string{"alpha", "beta"})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "BENCHMARK SUMMARY")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "Parallelization")
	assert.Contains(t, out, "0.2000")
	assert.Contains(t, out, "failed: run 2: boom")
	assert.Contains(t, out, "Total: 2 benchmarks, 4 timed runs, 1 failed")
}
