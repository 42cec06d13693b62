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

package kernels

import (
	"context"
	"math"
	"strconv"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/format"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
)

const (
	sieveLimit       = 100_000_000
	sieveWarmupLimit = 1_000_000
)

// sieveOfEratosthenes returns the primes up to and including limit. The
// workload is deliberately serial; it measures single-core marking speed.
func sieveOfEratosthenes(limit int) []int {
	if limit < 2 {
		return nil
	}

	isPrime := make([]bool, limit+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0] = false
	isPrime[1] = false

	sqrtLimit := int(math.Sqrt(float64(limit)))
	for i := 2; i <= sqrtLimit; i++ {
		if isPrime[i] {
			for j := i * i; j <= limit; j += i {
				isPrime[j] = false
			}
		}
	}

	var primes []int
	for i, p := range isPrime {
		if p {
			primes = append(primes, i)
		}
	}
	return primes
}

type primeSieve struct {
	clock       clock.Clock
	limit       int
	warmupLimit int
}

// NewPrimeSieve returns the sieve workload over the first hundred million
// integers.
func NewPrimeSieve(c clock.Clock) bench.Benchmark {
	return newPrimeSieve(c, sieveLimit, sieveWarmupLimit)
}

func newPrimeSieve(c clock.Clock, limit, warmupLimit int) *primeSieve {
	return &primeSieve{clock: c, limit: limit, warmupLimit: warmupLimit}
}

func (p *primeSieve) Name() string { return "prime_sieve" }

func (p *primeSieve) Category() bench.Category { return bench.CategoryHeavyCompute }

// Warmup runs the sieve at a reduced limit.
func (p *primeSieve) Warmup(ctx context.Context) error {
	sieveOfEratosthenes(p.warmupLimit)
	return nil
}

func (p *primeSieve) Run(ctx context.Context) (bench.Result, error) {
	start := p.clock.Now()
	primes := sieveOfEratosthenes(p.limit)
	elapsed := p.clock.Now().Sub(start)

	count := len(primes)
	logger.Debugf("prime_sieve: %s primes below %s", format.Count(int64(count)), format.Count(int64(p.limit)))

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: strconv.Itoa(count),
	}, nil
}
