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

package cmd

import (
	"fmt"

	"github.com/adityaanilraut/go-compute-bench/cfg"
	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/kernels"
	"github.com/spf13/cobra"
)

func newListCmd(config *cfg.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered benchmarks and their categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workerCount := int64(cfg.ResolveWorkerCount(config))
			for _, b := range kernels.All(clock.RealClock{}, common.NewNoopMetrics(), workerCount, config.Pool.TaskCount) {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", b.Name(), b.Category()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
