package material

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Color, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: mgl64.Clamp(fuzz, 0, 1)}
}

func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.Normal)
	reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Fuzz pushed the ray below the surface
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
