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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/stats"
	"github.com/adityaanilraut/go-compute-bench/internal/util"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportStats holds per-benchmark statistics in seconds, the unit the results
// file has always used.
type ReportStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Std  float64 `json:"std"`
}

// ReportEntry is the per-benchmark section of the results file.
type ReportEntry struct {
	Category Category `json:"category"`

	Checksum string `json:"checksum,omitempty"`

	// Times holds one sample per successful run, in seconds.
	Times []float64 `json:"times,omitempty"`

	Stats *ReportStats `json:"stats,omitempty"`

	Error string `json:"error,omitempty"`
}

// HostInfo describes the machine the suite ran on.
type HostInfo struct {
	Hostname         string `json:"hostname,omitempty"`
	OS               string `json:"os"`
	Arch             string `json:"arch"`
	CPUs             int    `json:"cpus"`
	Gomaxprocs       int    `json:"gomaxprocs"`
	KernelVersion    string `json:"kernel_version,omitempty"`
	TotalMemoryBytes uint64 `json:"total_memory_bytes,omitempty"`
}

// RunConfig echoes the settings that shaped the run.
type RunConfig struct {
	Runs        int64 `json:"runs"`
	Warmup      bool  `json:"warmup"`
	WorkerCount int64 `json:"worker_count"`
	TaskCount   int64 `json:"task_count"`
}

// Report is the serializable outcome of a whole suite run.
type Report struct {
	RunID     string                  `json:"run_id"`
	Timestamp string                  `json:"timestamp"`
	Version   string                  `json:"version"`
	Host      HostInfo                `json:"host"`
	Config    RunConfig               `json:"config"`
	Results   map[string]*ReportEntry `json:"results"`
}

// NewReport assembles a report from the collected results. The clock supplies
// the timestamp so that tests can pin it.
func NewReport(c clock.Clock, version string, runConfig RunConfig, results []BenchmarkResult) *Report {
	report := &Report{
		RunID:     uuid.New().String(),
		Timestamp: c.Now().UTC().Format(time.RFC3339),
		Version:   version,
		Host:      collectHostInfo(),
		Config:    runConfig,
		Results:   make(map[string]*ReportEntry, len(results)),
	}

	for _, r := range results {
		entry := &ReportEntry{
			Category: r.Category,
			Checksum: r.Checksum,
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		for _, d := range r.Times {
			entry.Times = append(entry.Times, d.Seconds())
		}
		if len(r.Times) > 0 {
			s := stats.Summarize(r.Times)
			entry.Stats = &ReportStats{
				Mean: s.Mean.Seconds(),
				Min:  s.Min.Seconds(),
				Max:  s.Max.Seconds(),
				Std:  s.StdDev.Seconds(),
			}
		}
		report.Results[r.Name] = entry
	}

	return report
}

func collectHostInfo() HostInfo {
	info := HostInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUs:       runtime.NumCPU(),
		Gomaxprocs: runtime.GOMAXPROCS(0),
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.KernelVersion = unix.ByteSliceToString(uts.Release[:])
	}

	if mem, err := util.GetTotalMemory(); err == nil {
		info.TotalMemoryBytes = mem
	}

	return info
}

// WriteFile serializes the report and writes it atomically to the target
// path, creating the directory if needed.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Atomic write-rename pattern
	tempFile, err := os.CreateTemp(dir, "benchmark-results-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tempFile.Name(), path)
}

// WriteSummary writes the human-readable summary table for the suite, in the
// order the benchmarks ran.
func (r *Report) WriteSummary(w io.Writer, order []string) error {
	line := strings.Repeat("=", 96)
	rule := strings.Repeat("-", 96)

	if _, err := fmt.Fprintf(w, "%s\nBENCHMARK SUMMARY\n%s\n", line, line); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-20s %-16s %12s %12s %12s %12s\n", "Benchmark", "Category", "Mean (s)", "Min (s)", "Max (s)", "Std (s)"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}

	var totalRuns int64
	var failures int
	for _, name := range order {
		entry, ok := r.Results[name]
		if !ok {
			continue
		}

		totalRuns += int64(len(entry.Times))
		if entry.Error != "" {
			failures++
			if _, err := fmt.Fprintf(w, "%-20s %-16s failed: %s\n", name, entry.Category, entry.Error); err != nil {
				return err
			}
			continue
		}
		if entry.Stats == nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "%-20s %-16s %12.4f %12.4f %12.4f %12.4f\n",
			name, entry.Category, entry.Stats.Mean, entry.Stats.Min, entry.Stats.Max, entry.Stats.Std); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, rule); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Total: %d benchmarks, %d timed runs, %d failed\n", len(order), totalRuns, failures); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
