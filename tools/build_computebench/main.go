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

// A tool that builds a computebench release binary and writes it out to a
// destination directory.
//
// Usage:
//
//	build_computebench [flags] src_dir dst_dir version [build args]
//
// where src_dir is the root of the computebench git repository (or a tarball
// thereof). Writes bin/computebench to dst_dir, with the version stamped into
// the binary.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path"
	"runtime"

	"github.com/spf13/pflag"
)

// Build the binary according to the supplied settings.
//
// version is the computebench version being built (e.g. "0.11.1"), or a short
// git commit name if this is not for an official release.
func buildBinaries(dstDir, srcDir, version, arch string, buildArgs []string) (err error) {
	err = os.Mkdir(path.Join(dstDir, "bin"), 0755)
	if err != nil {
		err = fmt.Errorf("mkdir: %w", err)
		return
	}

	pathEnv, exists := os.LookupEnv("PATH")
	if !exists {
		err = fmt.Errorf("$PATH not found in OS")
		return
	}

	// Create a directory to become GOCACHE for our build below.
	var gocache string
	gocache, err = os.MkdirTemp("", "build_computebench_gocache")
	if err != nil {
		err = fmt.Errorf("TempDir: %w", err)
		return
	}
	defer os.RemoveAll(gocache)

	outputPath := path.Join(dstDir, "bin/computebench")
	log.Printf("Building computebench to %s", outputPath)

	// Set up arguments.
	cmd := exec.Command(
		"go",
		"build",
		"-C",
		srcDir,
		"-o",
		outputPath,
		"-ldflags",
		fmt.Sprintf("-X github.com/adityaanilraut/go-compute-bench/common.benchVersion=%s", version),
	)
	cmd.Args = append(cmd.Args, buildArgs...)
	cmd.Args = append(cmd.Args, "github.com/adityaanilraut/go-compute-bench")

	// Set up environment.
	cmd.Env = append(
		os.Environ(),
		fmt.Sprintf("PATH=%s", pathEnv),
		fmt.Sprintf("GOROOT=%s", runtime.GOROOT()),
		fmt.Sprintf("GOCACHE=%s", gocache),
		"CGO_ENABLED=0",
		fmt.Sprintf("GOARCH=%s", arch),
	)

	// Build.
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = fmt.Errorf("%v: %w\nOutput:\n%s", cmd, err, output)
		return
	}

	return
}

func run() (err error) {
	var arch = pflag.String("arch", runtime.GOARCH, "Target architecture (e.g., amd64, arm64). Defaults to host architecture.")
	pflag.Parse()

	// Extract arguments.
	args := pflag.Args()
	if len(args) < 3 {
		err = fmt.Errorf("usage: %s [flags] src_dir dst_dir version [build args]", os.Args[0])
		return
	}

	srcDir := args[0]
	dstDir := args[1]
	version := args[2]
	buildArgs := args[3:]

	// Build.
	err = buildBinaries(dstDir, srcDir, version, *arch, buildArgs)
	if err != nil {
		err = fmt.Errorf("buildBinaries: %w", err)
		return
	}

	return
}

func main() {
	log.SetFlags(log.Lmicroseconds)

	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
