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

	"github.com/adityaanilraut/go-compute-bench/common"
	"github.com/adityaanilraut/go-compute-bench/internal/bench"
	"github.com/adityaanilraut/go-compute-bench/internal/clock"
	"github.com/adityaanilraut/go-compute-bench/internal/workerpool"
)

const (
	rayImageWidth  = 1920
	rayImageHeight = 1080
	raySamples     = 4

	// rayChecksumPixels is how many leading pixels of the image feed the
	// checksum.
	rayChecksumPixels = 100

	// rayWarmupRows is how many rows a warm-up shades serially.
	rayWarmupRows = 10
)

type vec3 struct {
	x, y, z float64
}

func (v vec3) add(o vec3) vec3 { return vec3{v.x + o.x, v.y + o.y, v.z + o.z} }

func (v vec3) sub(o vec3) vec3 { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }

func (v vec3) scale(s float64) vec3 { return vec3{v.x * s, v.y * s, v.z * s} }

func (v vec3) dot(o vec3) float64 { return v.x*o.x + v.y*o.y + v.z*o.z }

func (v vec3) length() float64 { return math.Sqrt(v.dot(v)) }

func (v vec3) normalize() vec3 { return v.scale(1 / v.length()) }

type sphere struct {
	center vec3
	radius float64
	color  vec3
}

// intersect reports the ray parameter of the nearer intersection of the ray
// with the sphere, if the ray hits it in front of the origin.
func (s sphere) intersect(origin, direction vec3) (float64, bool) {
	oc := origin.sub(s.center)
	a := direction.dot(direction)
	b := 2 * oc.dot(direction)
	c := oc.dot(oc) - s.radius*s.radius
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	return t, t > 0
}

// defaultScene is three unit spheres over a large ground sphere.
func defaultScene() []sphere {
	return []sphere{
		{center: vec3{0, 0, -5}, radius: 1, color: vec3{1, 0, 0}},
		{center: vec3{2, 0, -6}, radius: 1, color: vec3{0, 1, 0}},
		{center: vec3{-2, 0, -6}, radius: 1, color: vec3{0, 0, 1}},
		{center: vec3{0, -1001, -5}, radius: 1000, color: vec3{0.8, 0.8, 0.8}},
	}
}

// traceRay shades the closest sphere hit by the ray with simple diffuse
// lighting, or returns the background color on a miss.
func traceRay(origin, direction vec3, spheres []sphere) vec3 {
	closestT := math.Inf(1)
	var hit *sphere
	for i := range spheres {
		if t, ok := spheres[i].intersect(origin, direction); ok && t < closestT {
			closestT = t
			hit = &spheres[i]
		}
	}
	if hit == nil {
		return vec3{0.2, 0.3, 0.4}
	}

	hitPoint := origin.add(direction.scale(closestT))
	normal := hitPoint.sub(hit.center).normalize()
	lightDir := vec3{1, 1, 1}.normalize()
	diffuse := math.Max(0, normal.dot(lightDir))
	return hit.color.scale(diffuse)
}

// imageChecksum sums the color components of the leading pixels of the
// rendered image.
func imageChecksum(image []vec3, pixels int) float64 {
	if pixels > len(image) {
		pixels = len(image)
	}
	checksum := 0.0
	for _, c := range image[:pixels] {
		checksum += c.x + c.y + c.z
	}
	return checksum
}

type rayTracer struct {
	clock        clock.Clock
	metricHandle common.MetricHandle
	width        int
	height       int
	samples      int
}

// NewRayTracer returns the 1920x1080 diffuse sphere render.
func NewRayTracer(c clock.Clock, metricHandle common.MetricHandle) bench.Benchmark {
	return newRayTracer(c, metricHandle, rayImageWidth, rayImageHeight, raySamples)
}

func newRayTracer(c clock.Clock, metricHandle common.MetricHandle, width, height, samples int) *rayTracer {
	return &rayTracer{
		clock:        c,
		metricHandle: metricHandle,
		width:        width,
		height:       height,
		samples:      samples,
	}
}

func (r *rayTracer) Name() string { return "ray_tracer" }

func (r *rayTracer) Category() bench.Category { return bench.CategoryGraphics }

// renderRow shades one row of the image. Rows write disjoint slices, so
// concurrent calls for distinct rows need no locking.
func (r *rayTracer) renderRow(image []vec3, spheres []sphere, y int) {
	for x := 0; x < r.width; x++ {
		var color vec3
		for s := 0; s < r.samples; s++ {
			u := float64(x)/float64(r.width) - 0.5
			v := 0.5 - float64(y)/float64(r.height)
			direction := vec3{u * 2, v * 2, -1}.normalize()
			color = color.add(traceRay(vec3{}, direction, spheres))
		}
		image[y*r.width+x] = color.scale(1 / float64(r.samples))
	}
}

// render shades the whole image, one pool task per row. Stop is the barrier:
// once it returns every row task has completed and the image is fully
// written.
func (r *rayTracer) render(image []vec3, spheres []sphere) error {
	pool, err := workerpool.NewStaticWorkerPoolForCurrentCPU(r.metricHandle)
	if err != nil {
		return err
	}

	for y := 0; y < r.height; y++ {
		err := pool.Submit(workerpool.TaskFunc(func() {
			r.renderRow(image, spheres, y)
		}))
		if err != nil {
			pool.Stop()
			return err
		}
	}

	pool.Stop()
	return nil
}

// Warmup shades the top rows of the image serially.
func (r *rayTracer) Warmup(ctx context.Context) error {
	spheres := defaultScene()
	image := make([]vec3, r.width*r.height)
	rows := rayWarmupRows
	if rows > r.height {
		rows = r.height
	}
	for y := 0; y < rows; y++ {
		r.renderRow(image, spheres, y)
	}
	return nil
}

func (r *rayTracer) Run(ctx context.Context) (bench.Result, error) {
	spheres := defaultScene()
	image := make([]vec3, r.width*r.height)

	start := r.clock.Now()
	err := r.render(image, spheres)
	elapsed := r.clock.Now().Sub(start)
	if err != nil {
		return bench.Result{}, err
	}

	return bench.Result{
		Elapsed:  elapsed,
		Checksum: checksumFloat(imageChecksum(image, rayChecksumPixels)),
	}, nil
}
