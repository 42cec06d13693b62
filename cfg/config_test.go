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

package cfg

import (
	"os"
	"path"
	"testing"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T, args []string) Config {
	t.Helper()
	fs := flag.NewFlagSet("computebench", flag.ContinueOnError)
	v, err := BindFlags(fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	var c Config
	require.NoError(t, v.Unmarshal(&c, viper.DecodeHook(DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		// The config struct carries yaml tags, not mapstructure ones.
		decoderConfig.TagName = "yaml"
	}))
	return c
}

func TestDefaultConfig(t *testing.T) {
	c := parseConfig(t, nil)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.False(t, c.Benchmarks.ExperimentalNumaBind)
	assert.Equal(t, int64(5), c.Benchmarks.Runs)
	assert.True(t, c.Benchmarks.Warmup)
	assert.False(t, c.Debug.ExitOnInvariantViolation)
	assert.False(t, c.Debug.LogMutex)
	assert.Equal(t, ResolvedPath(""), c.Logging.FilePath)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, int64(10), c.Logging.LogRotate.BackupFileCount)
	assert.True(t, c.Logging.LogRotate.Compress)
	assert.Equal(t, int64(512), c.Logging.LogRotate.MaxFileSizeMb)
	assert.Equal(t, InfoLogSeverity, c.Logging.Severity)
	assert.Equal(t, int64(0), c.Metrics.PrometheusPort)
	assert.Equal(t, ResolvedPath(path.Join(wd, "results")), c.Output.ResultsDir)
	assert.Equal(t, int64(100000), c.Pool.TaskCount)
	assert.Equal(t, int64(8), c.Pool.WorkerCount)
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := parseConfig(t, nil)

	assert.NoError(t, ValidateConfig(&c))
}

func TestConfigOverrides(t *testing.T) {
	c := parseConfig(t, []string{
		"--debug_invariants",
		"--debug_mutex",
		"--experimental-numa-bind",
		"--log-file=/tmp/computebench.log",
		"--log-format=text",
		"--log-rotate-backup-file-count=0",
		"--log-rotate-compress=false",
		"--log-rotate-max-log-file-size-mb=100",
		"--log-severity=trace",
		"--prometheus-port=9100",
		"--results-dir=/tmp/results",
		"--runs=3",
		"--task-count=1000",
		"--warmup=false",
		"--worker-count=64",
	})

	assert.True(t, c.Benchmarks.ExperimentalNumaBind)
	assert.Equal(t, int64(3), c.Benchmarks.Runs)
	assert.False(t, c.Benchmarks.Warmup)
	assert.True(t, c.Debug.ExitOnInvariantViolation)
	assert.True(t, c.Debug.LogMutex)
	assert.Equal(t, ResolvedPath("/tmp/computebench.log"), c.Logging.FilePath)
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, int64(0), c.Logging.LogRotate.BackupFileCount)
	assert.False(t, c.Logging.LogRotate.Compress)
	assert.Equal(t, int64(100), c.Logging.LogRotate.MaxFileSizeMb)
	assert.Equal(t, TraceLogSeverity, c.Logging.Severity)
	assert.Equal(t, int64(9100), c.Metrics.PrometheusPort)
	assert.Equal(t, ResolvedPath("/tmp/results"), c.Output.ResultsDir)
	assert.Equal(t, int64(1000), c.Pool.TaskCount)
	assert.Equal(t, int64(64), c.Pool.WorkerCount)
}
