package material

import (
	"fmt"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// Kind identifies one of the supported scattering models
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material is a closed set of scattering models. Only the fields of the
// active Kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Color // Lambertian and Metal
	Fuzz            float64    // Metal: 0 = perfect mirror, 1 = very fuzzy
	RefractionIndex float64    // Dielectric
}

// Scatter produces the attenuation and outgoing ray for a ray hitting a surface
// made of m. It returns false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

func (m Material) String() string {
	switch m.Kind {
	case KindLambertian:
		return fmt.Sprintf("lambertian(albedo=%v)", m.Albedo)
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.RefractionIndex)
	default:
		return m.Kind.String()
	}
}
