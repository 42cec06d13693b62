// Copyright 2024 Google LLC
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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"

	"github.com/adityaanilraut/go-compute-bench/cfg"
	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/format"
	"github.com/adityaanilraut/go-compute-bench/internal/kernels"
	"github.com/adityaanilraut/go-compute-bench/internal/locker"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
	"github.com/adityaanilraut/go-compute-bench/internal/monitor"
	"github.com/adityaanilraut/go-compute-bench/internal/perf"
	"github.com/adityaanilraut/go-compute-bench/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// resultsFileName is the name of the JSON report written under the
// results directory after every suite run.
const resultsFileName = "benchmark_results.json"

func newRunCmd(config *cfg.Config, runSuite RunSuiteFn) *cobra.Command {
	return &cobra.Command{
		Use:   "run [benchmark ...]",
		Short: "Run all benchmarks, or only the named ones",
		Long: `Run executes each selected benchmark in a fixed order: an optional
warm-up round followed by the configured number of timed runs. Benchmarks are
selected by name; with no arguments the whole suite runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd.Context(), config, args, cmd.OutOrStdout())
		},
	}
}

// registerTerminatingSignalHandler cancels the suite context when the process
// receives SIGINT or SIGTERM. The runner finishes the run in flight and skips
// the rest.
func registerTerminatingSignalHandler(cancel context.CancelFunc) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, unix.SIGTERM)

	go func() {
		sig := <-signalChan
		logger.Infof("Received %v, stopping after the current run...", sig)
		cancel()
	}()
}

// runBenchmarkSuite is the production RunSuiteFn. It wires logging, metrics
// and the worker pool configuration together, executes the selected
// benchmarks and writes the JSON report and the summary table.
func runBenchmarkSuite(ctx context.Context, config *cfg.Config, benchmarks []string, out io.Writer) error {
	if err := logger.InitLogFile(config.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	defer logger.Close()

	if cfgString, err := util.Stringify(*config); err == nil {
		logger.Infof("Benchmark configuration: %s", cfgString)
	}

	// Enable invariant checking if requested.
	if config.Debug.ExitOnInvariantViolation {
		locker.EnableInvariantsCheck()
	}
	if config.Debug.LogMutex {
		locker.EnableDebugMessages()
	}

	var metricExporterShutdownFn common.ShutdownFn
	metricHandle := common.NewNoopMetrics()
	if cfg.IsPrometheusEnabled(config) {
		metricExporterShutdownFn = monitor.SetupOTelMetricExporters(ctx, config)
		var err error
		if metricHandle, err = common.NewOTelMetrics(); err != nil {
			logger.Warnf("Error while creating the metric handle: %v", err)
			metricHandle = common.NewNoopMetrics()
		}
	}
	shutdownFn := common.JoinShutdownFunc(metricExporterShutdownFn)

	if config.Benchmarks.ExperimentalNumaBind {
		perf.InitNuma()
	}

	workerCount := int64(cfg.ResolveWorkerCount(config))
	logger.Infof("Starting computebench/%s: %d workers, %d runs per benchmark", common.GetVersion(), workerCount, config.Benchmarks.Runs)

	registry := bench.NewRegistry()
	for _, b := range kernels.All(clock.RealClock{}, metricHandle, workerCount, config.Pool.TaskCount) {
		if err := registry.Register(b); err != nil {
			return fmt.Errorf("error while registering benchmark %q: %w", b.Name(), err)
		}
	}

	selected := registry.List()
	if len(benchmarks) > 0 {
		selected = make([]bench.Benchmark, 0, len(benchmarks))
		for _, name := range benchmarks {
			b, err := registry.Lookup(name)
			if err != nil {
				return err
			}
			selected = append(selected, b)
		}
	}

	progress := func(b bench.Benchmark, run int, result bench.Result, err error) {
		if err != nil {
			fmt.Fprintf(out, "%-20s run %2d/%d: failed: %v\n", b.Name(), run+1, config.Benchmarks.Runs, err)
			return
		}
		fmt.Fprintf(out, "%-20s run %2d/%d: %s\n", b.Name(), run+1, config.Benchmarks.Runs, format.Seconds(result.Elapsed))
	}
	runner, err := bench.NewRunner(clock.RealClock{}, metricHandle, config.Benchmarks.Runs, config.Benchmarks.Warmup, progress)
	if err != nil {
		return fmt.Errorf("error while creating the runner: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	registerTerminatingSignalHandler(cancel)

	results := runner.Run(runCtx, selected)

	report := bench.NewReport(clock.RealClock{}, common.GetVersion(), bench.RunConfig{
		Runs:        config.Benchmarks.Runs,
		Warmup:      config.Benchmarks.Warmup,
		WorkerCount: workerCount,
		TaskCount:   config.Pool.TaskCount,
	}, results)

	resultsPath := path.Join(string(config.Output.ResultsDir), resultsFileName)
	if err := report.WriteFile(resultsPath); err != nil {
		return fmt.Errorf("error while writing the results file: %w", err)
	}
	logger.Infof("Results written to %s", resultsPath)

	order := make([]string, 0, len(selected))
	for _, b := range selected {
		order = append(order, b.Name())
	}
	if err := report.WriteSummary(out, order); err != nil {
		return fmt.Errorf("error while writing the summary: %w", err)
	}

	if shutdownErr := shutdownFn(ctx); shutdownErr != nil {
		logger.Errorf("Error while shutting down the metric exporter: %v", shutdownErr)
	}

	return runCtx.Err()
}
