package renderer

import (
	"math"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/geometry"
	"github.com/df07/go-multipass-raytracer/pkg/material"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// MergeSamplingConfig overlays the non-zero fields of override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetMaterials() *material.Arena
}

// Raytracer traces rays through a preprocessed scene. It holds no mutable
// state, so one Raytracer can serve every pass concurrently.
type Raytracer struct {
	world     geometry.Hittable
	materials *material.Arena
	camera    *Camera
	config    SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, camera *Camera, config SamplingConfig) *Raytracer {
	return &Raytracer{
		world:     scene.GetWorld(),
		materials: scene.GetMaterials(),
		camera:    camera,
		config:    config,
	}
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera { return rt.camera }

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig { return rt.config }

// backgroundGradient blends white at the horizon to sky blue overhead
func backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - a).Add(blue.Multiply(a))
}

// RayColor returns the radiance carried back along ray after at most depth bounces.
// The path is followed in a loop carrying the product of attenuations.
func (rt *Raytracer) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(ray))
		}

		scatter, didScatter := rt.materials.Get(hit.Material).Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Color{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Color{}
}

// RenderPass renders every pixel with samplesPerPixel samples, top row first.
// rowDone, if not nil, is called after each completed row.
func (rt *Raytracer) RenderPass(sampler core.Sampler, samplesPerPixel int, rowDone func()) *Frame {
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	frame := NewFrame(width, height)
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	scale := 1.0 / float64(samplesPerPixel)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			var colorAccum core.Color
			for sample := 0; sample < samplesPerPixel; sample++ {
				ray := rt.camera.GetRay(i, j, sampler)
				colorAccum = colorAccum.Add(rt.RayColor(ray, rt.config.MaxDepth, sampler))
			}
			frame.Set(i, j, colorAccum.Multiply(scale))
		}
		if rowDone != nil {
			rowDone()
		}
	}

	return frame
}
