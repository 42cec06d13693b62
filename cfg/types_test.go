// Copyright 2024 Google Inc. All Rights Reserved.
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
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/adityaanilraut/go-compute-bench/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSeverityUnmarshalling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		str      string
		expected LogSeverity
		wantErr  bool
	}{
		{
			str:      "TRACE",
			expected: "TRACE",
			wantErr:  false,
		},
		{
			str:      "info",
			expected: "INFO",
			wantErr:  false,
		},
		{
			str:      "debUG",
			expected: "DEBUG",
			wantErr:  false,
		},
		{
			str:      "waRniNg",
			expected: "WARNING",
			wantErr:  false,
		},
		{
			str:      "OFF",
			expected: "OFF",
			wantErr:  false,
		},
		{
			str:      "ERROR",
			expected: "ERROR",
			wantErr:  false,
		},
		{
			str:     "EMPEROR",
			wantErr: true,
		},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("log-severity-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var l LogSeverity

			err := (&l).UnmarshalText([]byte(tc.str))

			if tc.wantErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, l)
			}
		})
	}
}

func TestLogSeverityRanking(t *testing.T) {
	t.Parallel()
	tests := []struct {
		severity LogSeverity
		rank     int
	}{
		{TraceLogSeverity, 0},
		{DebugLogSeverity, 1},
		{InfoLogSeverity, 2},
		{WarningLogSeverity, 3},
		{ErrorLogSeverity, 4},
		{OffLogSeverity, 5},
		{"EMPEROR", -1},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("log-severity-ranking: %d", idx), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.rank, tc.severity.Rank())
		})
	}
}

func TestResolvedPathUnmarshalling(t *testing.T) {
	t.Parallel()
	h, err := os.UserHomeDir()
	require.NoError(t, err)
	tests := []struct {
		str      string
		expected ResolvedPath
	}{
		{
			str:      "~/results.json",
			expected: ResolvedPath(path.Join(h, "results.json")),
		},
		{
			str:      "/a/results.json",
			expected: "/a/results.json",
		},
	}

	for idx, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("resolved-path-unmarshalling: %d", idx), func(t *testing.T) {
			t.Parallel()
			var p ResolvedPath

			err := (&p).UnmarshalText([]byte(tc.str))

			if assert.NoError(t, err) {
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}

func TestConfigMarshalling(t *testing.T) {
	t.Parallel()
	c := Config{
		Benchmarks: BenchmarksConfig{Runs: 5, Warmup: true},
		Logging: LoggingConfig{
			Format: "json",
			LogRotate: LogRotateLoggingConfig{
				BackupFileCount: 10,
				Compress:        true,
				MaxFileSizeMb:   512,
			},
			Severity: InfoLogSeverity,
		},
		Output: OutputConfig{ResultsDir: "results"},
		Pool:   PoolConfig{TaskCount: 100000, WorkerCount: 8},
	}

	actual, err := util.YAMLStringify(c)

	expected :=
		`benchmarks:
    experimental-numa-bind: false
    runs: 5
    warmup: true
debug:
    exit-on-invariant-violation: false
    log-mutex: false
logging:
    file-path: ""
    format: json
    log-rotate:
        backup-file-count: 10
        compress: true
        max-file-size-mb: 512
    severity: INFO
metrics:
    prometheus-port: 0
output:
    results-dir: results
pool:
    task-count: 100000
    worker-count: 8
`
	if assert.NoError(t, err) {
		assert.Equal(t, expected, actual)
	}
}
