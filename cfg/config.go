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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Benchmarks BenchmarksConfig `yaml:"benchmarks"`

	Debug DebugConfig `yaml:"debug"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Output OutputConfig `yaml:"output"`

	Pool PoolConfig `yaml:"pool"`
}

type BenchmarksConfig struct {
	ExperimentalNumaBind bool `yaml:"experimental-numa-bind"`

	Runs int64 `yaml:"runs"`

	Warmup bool `yaml:"warmup"`
}

type DebugConfig struct {
	ExitOnInvariantViolation bool `yaml:"exit-on-invariant-violation"`

	LogMutex bool `yaml:"log-mutex"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format string `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type OutputConfig struct {
	ResultsDir ResolvedPath `yaml:"results-dir"`
}

type PoolConfig struct {
	TaskCount int64 `yaml:"task-count"`

	WorkerCount int64 `yaml:"worker-count"`
}

func BindFlags(flagSet *pflag.FlagSet) (*viper.Viper, error) {
	var err error
	v := viper.New()

	flagSet.BoolP("debug_invariants", "", false, "Exit when internal invariants are violated.")

	err = v.BindPFlag("debug.exit-on-invariant-violation", flagSet.Lookup("debug_invariants"))
	if err != nil {
		return nil, err
	}

	flagSet.BoolP("debug_mutex", "", false, "Print debug messages when a mutex is held too long.")

	err = v.BindPFlag("debug.log-mutex", flagSet.Lookup("debug_mutex"))
	if err != nil {
		return nil, err
	}

	flagSet.BoolP("experimental-numa-bind", "", false, "Experimental: Bind the process to a single NUMA node before running benchmarks.")

	err = v.BindPFlag("benchmarks.experimental-numa-bind", flagSet.Lookup("experimental-numa-bind"))
	if err != nil {
		return nil, err
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stdout.")

	err = v.BindPFlag("logging.file-path", flagSet.Lookup("log-file"))
	if err != nil {
		return nil, err
	}

	flagSet.StringP("log-format", "", "json", "The format of the log file: 'text' or 'json'.")

	err = v.BindPFlag("logging.format", flagSet.Lookup("log-format"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. The default value is 10. When value is set to 0, all backup files are retained.")

	err = v.BindPFlag("logging.log-rotate.backup-file-count", flagSet.Lookup("log-rotate-backup-file-count"))
	if err != nil {
		return nil, err
	}

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	err = v.BindPFlag("logging.log-rotate.compress", flagSet.Lookup("log-rotate-compress"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("log-rotate-max-log-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated. The default value is 512.")

	err = v.BindPFlag("logging.log-rotate.max-file-size-mb", flagSet.Lookup("log-rotate-max-log-file-size-mb"))
	if err != nil {
		return nil, err
	}

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	err = v.BindPFlag("logging.severity", flagSet.Lookup("log-severity"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port and a path of /metrics.")

	err = v.BindPFlag("metrics.prometheus-port", flagSet.Lookup("prometheus-port"))
	if err != nil {
		return nil, err
	}

	flagSet.StringP("results-dir", "", "results", "The directory for storing benchmark result files.")

	err = v.BindPFlag("output.results-dir", flagSet.Lookup("results-dir"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("runs", "", 5, "The number of timed runs executed for each benchmark.")

	err = v.BindPFlag("benchmarks.runs", flagSet.Lookup("runs"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("task-count", "", 100000, "The number of tasks submitted during the worker pool benchmark.")

	err = v.BindPFlag("pool.task-count", flagSet.Lookup("task-count"))
	if err != nil {
		return nil, err
	}

	flagSet.BoolP("warmup", "", true, "Run a smaller warm-up round before the timed runs of each benchmark.")

	err = v.BindPFlag("benchmarks.warmup", flagSet.Lookup("warmup"))
	if err != nil {
		return nil, err
	}

	flagSet.IntP("worker-count", "", 8, "The number of workers the pool spawns. A value of 0 means one worker per available CPU.")

	err = v.BindPFlag("pool.worker-count", flagSet.Lookup("worker-count"))
	if err != nil {
		return nil, err
	}

	return v, nil
}
