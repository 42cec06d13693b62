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
	"encoding/binary"
	"encoding/hex"
	"math/bits"

	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/format"
	"github.com/adityaanilraut/go-compute-bench/internal/logger"
)

const (
	hashDataSize   = 100_000_000
	hashChunkSize  = 1024
	hashWarmupSize = 1_000_000
)

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr(x uint32, n int) uint32 { return bits.RotateLeft32(x, -n) }

// sha256Digest implements the FIPS 180-4 compression pipeline directly. The
// standard library hands hashing to SHA extensions where the CPU has them;
// this kernel must measure the same straight-line arithmetic on every host,
// so it carries its own implementation.
type sha256Digest struct {
	h       [8]uint32
	data    [64]byte
	datalen int
	bitlen  uint64
}

func newSha256Digest() *sha256Digest {
	return &sha256Digest{
		h: [8]uint32{0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19},
	}
}

// transform folds the current 64-byte block into the hash state.
func (s *sha256Digest) transform() {
	var m [64]uint32
	for i := 0; i < 16; i++ {
		j := 4 * i
		m[i] = uint32(s.data[j])<<24 | uint32(s.data[j+1])<<16 | uint32(s.data[j+2])<<8 | uint32(s.data[j+3])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr(m[i-15], 7) ^ rotr(m[i-15], 18) ^ (m[i-15] >> 3)
		s1 := rotr(m[i-2], 17) ^ rotr(m[i-2], 19) ^ (m[i-2] >> 10)
		m[i] = m[i-16] + s0 + m[i-7] + s1
	}

	a, b, c, d := s.h[0], s.h[1], s.h[2], s.h[3]
	e, f, g, h := s.h[4], s.h[5], s.h[6], s.h[7]

	for i := 0; i < 64; i++ {
		ch := (e & f) ^ (^e & g)
		maj := (a & b) ^ (a & c) ^ (b & c)
		sig0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
		sig1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
		t1 := h + sig1 + ch + sha256K[i] + m[i]
		t2 := sig0 + maj
		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
	s.h[5] += f
	s.h[6] += g
	s.h[7] += h
}

// Write absorbs p into the digest, folding each completed block.
func (s *sha256Digest) Write(p []byte) {
	for len(p) > 0 {
		n := copy(s.data[s.datalen:], p)
		s.datalen += n
		p = p[n:]
		if s.datalen == 64 {
			s.transform()
			s.bitlen += 512
			s.datalen = 0
		}
	}
}

// SumHex pads the final block, appends the message length and returns the
// lowercase hex digest. The digest must not be written to afterwards.
func (s *sha256Digest) SumHex() string {
	i := s.datalen
	s.data[i] = 0x80
	i++
	if s.datalen < 56 {
		for ; i < 56; i++ {
			s.data[i] = 0
		}
	} else {
		for ; i < 64; i++ {
			s.data[i] = 0
		}
		s.transform()
		for j := 0; j < 56; j++ {
			s.data[j] = 0
		}
	}

	s.bitlen += uint64(s.datalen) * 8
	binary.BigEndian.PutUint64(s.data[56:], s.bitlen)
	s.transform()

	var out [32]byte
	for j, v := range s.h {
		binary.BigEndian.PutUint32(out[4*j:], v)
	}
	return hex.EncodeToString(out[:])
}

// newHashInput builds n bytes of cycling byte values.
func newHashInput(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

// hashChunks digests data in fixed-size chunks and returns the hex digest.
func hashChunks(data []byte, chunkSize int) string {
	digest := newSha256Digest()
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		digest.Write(data[i:end])
	}
	return digest.SumHex()
}

type sha256Bench struct {
	clock     clock.Clock
	dataSize  int
	chunkSize int
}

// NewSHA256 returns the streaming hash workload over 100 MB of input.
func NewSHA256(c clock.Clock) bench.Benchmark {
	return newSHA256(c, hashDataSize, hashChunkSize)
}

func newSHA256(c clock.Clock, dataSize, chunkSize int) *sha256Bench {
	return &sha256Bench{clock: c, dataSize: dataSize, chunkSize: chunkSize}
}

func (s *sha256Bench) Name() string { return "sha256" }

func (s *sha256Bench) Category() bench.Category { return bench.CategoryHeavyCompute }

// Warmup digests a reduced prefix of the input in one shot.
func (s *sha256Bench) Warmup(ctx context.Context) error {
	size := hashWarmupSize
	if size > s.dataSize {
		size = s.dataSize
	}
	digest := newSha256Digest()
	digest.Write(newHashInput(size))
	digest.SumHex()
	return nil
}

func (s *sha256Bench) Run(ctx context.Context) (bench.Result, error) {
	data := newHashInput(s.dataSize)

	start := s.clock.Now()
	digestHex := hashChunks(data, s.chunkSize)
	elapsed := s.clock.Now().Sub(start)

	logger.Debugf("sha256: hashed %s in %d byte chunks", format.Bytes(float64(len(data))), s.chunkSize)

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: digestHex,
	}, nil
}
