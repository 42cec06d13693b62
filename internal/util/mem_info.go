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

package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	cgroupV1MemoryLimitFile = "/sys/fs/cgroup/memory/memory.limit_in_bytes"
	cgroupV2MountPoint      = "/sys/fs/cgroup"
	procSelfCgroup          = "/proc/self/cgroup"
)

// GetTotalMemory returns the memory available to this process in bytes: the
// cgroup limit when one is set, otherwise the physical memory of the machine.
// Reports record this so that results taken inside a container are not
// mistaken for bare-metal numbers.
func GetTotalMemory() (uint64, error) {
	physical, err := physicalMemory()
	if err != nil {
		return 0, err
	}

	limit, err := cgroupMemoryLimit()
	if err != nil || limit == 0 || limit >= physical {
		// No cgroup limit, an unlimited one, or a limit above physical memory
		// all mean the machine itself is the bound.
		return physical, nil
	}
	return limit, nil
}

func physicalMemory() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}

// cgroupMemoryLimit reads the memory limit of the cgroup this process runs
// in, preferring v2 over v1.
func cgroupMemoryLimit() (uint64, error) {
	if _, err := os.Stat(filepath.Join(cgroupV2MountPoint, "cgroup.controllers")); err == nil {
		return cgroupV2MemoryLimit()
	}
	return cgroupV1MemoryLimit()
}

func cgroupV1MemoryLimit() (uint64, error) {
	data, err := os.ReadFile(cgroupV1MemoryLimitFile)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}

func cgroupV2MemoryLimit() (uint64, error) {
	path, err := currentCgroupV2Path()
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(filepath.Join(cgroupV2MountPoint, path, "memory.max"))
	if err != nil {
		return 0, err
	}

	s := strings.TrimSpace(string(data))
	if s == "max" {
		return 0, fmt.Errorf("memory limit is max")
	}
	return strconv.ParseUint(s, 10, 64)
}

func currentCgroupV2Path() (string, error) {
	f, err := os.Open(procSelfCgroup)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		// Lines look like "hierarchy-ID:controller-list:path". The v2
		// hierarchy has ID 0 and an empty controller list.
		parts := strings.SplitN(scanner.Text(), ":", 3)
		if len(parts) == 3 && parts[0] == "0" && parts[1] == "" {
			return parts[2], nil
		}
	}
	return "", fmt.Errorf("cgroup v2 path not found in %s", procSelfCgroup)
}
