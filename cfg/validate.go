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
)

const (
	TaskCountInvalidValueError      = "task-count should be atleast 1"
	WorkerCountInvalidValueError    = "worker-count should be 0 (to spawn one worker per CPU) or a positive value"
	RunsInvalidValueError           = "runs should be atleast 1"
	PrometheusPortInvalidValueError = "prometheus-port should be 0 (to disable the Prometheus exporter) or a positive value"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLogSeverity(severity LogSeverity) error {
	switch severity {
	case TraceLogSeverity, DebugLogSeverity, InfoLogSeverity, WarningLogSeverity, ErrorLogSeverity, OffLogSeverity:
		return nil
	}
	return fmt.Errorf("invalid value of log-severity; can be one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]")
}

func isValidMetricsConfig(c *MetricsConfig) error {
	if c.PrometheusPort < 0 {
		return fmt.Errorf(PrometheusPortInvalidValueError)
	}
	return nil
}

func isValidBenchmarksConfig(c *BenchmarksConfig) error {
	if c.Runs < 1 {
		return fmt.Errorf(RunsInvalidValueError)
	}
	return nil
}

func isValidPoolConfig(c *PoolConfig) error {
	if c.TaskCount < 1 {
		return fmt.Errorf(TaskCountInvalidValueError)
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf(WorkerCountInvalidValueError)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidLogSeverity(config.Logging.Severity); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	if err = isValidMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("error parsing metrics config: %w", err)
	}

	if err = isValidBenchmarksConfig(&config.Benchmarks); err != nil {
		return fmt.Errorf("error parsing benchmarks config: %w", err)
	}

	if err = isValidPoolConfig(&config.Pool); err != nil {
		return fmt.Errorf("error parsing pool config: %w", err)
	}

	return nil
}
