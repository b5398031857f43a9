package material

import (
	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Color) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian sends the ray along normal + random unit vector. This is not
// cosine weighted sampling; the rendered images depend on this exact formula.
func (m Material) scatterLambertian(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: m.Albedo,
	}, true
}
