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
	"testing"

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Operations(t *testing.T) {
	a := vec3{1, 2, 3}
	b := vec3{4, -5, 6}

	assert.Equal(t, vec3{5, -3, 9}, a.add(b))
	assert.Equal(t, vec3{-3, 7, -3}, a.sub(b))
	assert.Equal(t, vec3{2, 4, 6}, a.scale(2))
	assert.Equal(t, float64(12), a.dot(b))
	assert.Equal(t, float64(5), vec3{3, 4, 0}.length())
	assert.InDelta(t, 1.0, a.normalize().length(), 1e-12)
}

func TestSphereIntersect(t *testing.T) {
	s := sphere{center: vec3{0, 0, -5}, radius: 1, color: vec3{1, 0, 0}}

	ahead, hit := s.intersect(vec3{}, vec3{0, 0, -1})
	require.True(t, hit)
	assert.Equal(t, float64(4), ahead)

	_, hit = s.intersect(vec3{}, vec3{0, 1, 0})
	assert.False(t, hit)

	// A sphere behind the origin is not a hit.
	behind := sphere{center: vec3{0, 0, 5}, radius: 1}
	_, hit = behind.intersect(vec3{}, vec3{0, 0, -1})
	assert.False(t, hit)
}

func TestTraceRay_HitsNearestSphere(t *testing.T) {
	spheres := defaultScene()

	// Straight ahead: the red sphere, lit head-on, with diffuse factor
	// 1/sqrt(3).
	color := traceRay(vec3{}, vec3{0, 0, -1}, spheres)
	assert.InDelta(t, 1/math.Sqrt(3), color.x, 1e-12)
	assert.Equal(t, float64(0), color.y)
	assert.Equal(t, float64(0), color.z)

	// Angled down: only the gray ground sphere is in the way.
	color = traceRay(vec3{}, vec3{0, -1, -1}.normalize(), spheres)
	assert.Greater(t, color.x, float64(0))
	assert.Equal(t, color.x, color.y)
	assert.Equal(t, color.y, color.z)
}

func TestTraceRay_MissReturnsBackground(t *testing.T) {
	color := traceRay(vec3{}, vec3{0, 1, 0}, defaultScene())

	assert.Equal(t, vec3{0.2, 0.3, 0.4}, color)
}

func TestImageChecksum_ClampsToImageSize(t *testing.T) {
	image := []vec3{{1, 2, 3}, {4, 5, 6}}

	assert.Equal(t, float64(21), imageChecksum(image, 100))
	assert.Equal(t, float64(6), imageChecksum(image, 1))
}

func TestRayTracer_RenderMatchesSerial(t *testing.T) {
	k := newRayTracer(clock.RealClock{}, common.NewNoopMetrics(), 40, 30, 2)
	spheres := defaultScene()

	parallel := make([]vec3, k.width*k.height)
	require.NoError(t, k.render(parallel, spheres))

	serial := make([]vec3, k.width*k.height)
	for y := 0; y < k.height; y++ {
		k.renderRow(serial, spheres, y)
	}

	assert.Equal(t, serial, parallel)
}

func TestRayTracerBenchmark(t *testing.T) {
	k := newRayTracer(clock.RealClock{}, common.NewNoopMetrics(), 64, 32, 4)

	assert.Equal(t, "ray_tracer", k.Name())
	assert.Equal(t, bench.CategoryGraphics, k.Category())
	require.NoError(t, k.Warmup(context.Background()))
	result, err := k.Run(context.Background())
	require.NoError(t, err)

	// The top rows of the image only see sky, so the first 100 pixels are
	// all background and contribute 0.9 each.
	checksum, err := strconv.ParseFloat(result.Checksum, 64)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, checksum, 1e-9)

	again, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Checksum, again.Checksum)
}
