package material

import (
	"math"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// NewDielectric creates a clear material such as glass (1.5) or water (1.33)
func NewDielectric(refractionIndex float64) Material {
	return Material{Kind: KindDielectric, RefractionIndex: refractionIndex}
}

func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	var ri float64
	if hit.FrontFace {
		ri = 1.0 / m.RefractionIndex // entering the material
	} else {
		ri = m.RefractionIndex // leaving it
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := ri*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, ri) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, ri)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
