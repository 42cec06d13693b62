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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/adityaanilraut/go-compute-bench/cfg"
	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RunSuiteFn executes the benchmark suite with the resolved configuration.
// benchmarks holds the names selected on the command line, in order; an empty
// slice selects every registered benchmark. Per-run progress and the final
// summary are written to out.
type RunSuiteFn func(ctx context.Context, config *cfg.Config, benchmarks []string, out io.Writer) error

// NewRootCmd builds the computebench command tree. The configuration is
// resolved before any subcommand runs: flags set on the command line take
// precedence over values from --config-file, which take precedence over flag
// defaults.
func NewRootCmd(runSuite RunSuiteFn) (*cobra.Command, error) {
	var (
		cliViper, cfgViper *viper.Viper
		cfgFileObj, cfgObj cfg.Config
		cfgFile            string
		err                error
	)
	rootCmd := &cobra.Command{
		Use:   "computebench",
		Short: "Run a suite of CPU-bound benchmarks on a shared worker pool",
		Long: `Computebench times a fixed set of compute kernels, from matrix
multiplication to JSON parsing, and reports per-run times alongside an
aggregate summary. Results are written as JSON so that runs can be compared
across hosts and versions.`,
		Version: common.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				cfgViper.SetConfigFile(cfgFile)
				cfgViper.SetConfigType("yaml")
				if err := cfgViper.ReadInConfig(); err != nil {
					return fmt.Errorf("error while reading the config file: %w", err)
				}
				if err := cfgViper.Unmarshal(&cfgFileObj, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
					// The config structs carry yaml tags. Reject file keys
					// that do not map to a field.
					decoderConfig.TagName = "yaml"
					decoderConfig.ErrorUnused = true
				}); err != nil {
					return fmt.Errorf("error while unmarshaling the config-file params: %w", err)
				}
				// Hand the file values to the cli viper at config precedence,
				// beneath any flag set explicitly on the command line.
				if err := cliViper.MergeConfigMap(cfgViper.AllSettings()); err != nil {
					return fmt.Errorf("error while merging the config-file params: %w", err)
				}
			}
			if err := cliViper.Unmarshal(&cfgObj, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
				decoderConfig.TagName = "yaml"
			}); err != nil {
				return fmt.Errorf("error while unmarshaling the cli flags: %w", err)
			}
			return cfg.ValidateConfig(&cfgObj)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "The path to a YAML configuration file.")
	if cliViper, err = cfg.BindFlags(rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error while binding flags for cli-viper: %w", err)
	}
	cfgFlagset := flag.NewFlagSet("cfg-flagset", flag.ExitOnError)
	if cfgViper, err = cfg.BindFlags(cfgFlagset); err != nil {
		return nil, fmt.Errorf("error while binding flags for config-viper: %w", err)
	}

	rootCmd.AddCommand(newRunCmd(&cfgObj, runSuite))
	rootCmd.AddCommand(newListCmd(&cfgObj))

	return rootCmd, nil
}

// Execute runs the command tree and exits the process on failure.
func Execute() {
	rootCmd, err := NewRootCmd(runBenchmarkSuite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error while creating the root command: %v\n", err)
		os.Exit(1)
	}
	if err = rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
