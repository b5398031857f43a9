package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// A Sampler is owned by a single goroutine; it is never shared between render passes.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInRange returns a uniform value in [min, max)
func RandomInRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector uniformly distributed in the cube [min, max)³
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	u := sampler.Get3D()
	return NewVec3(
		min+(max-min)*u.X,
		min+(max-min)*u.Y,
		min+(max-min)*u.Z,
	)
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
// Points are rejection sampled from the cube and projected onto the sphere.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		lensq := p.LengthSquared()
		// tiny vectors would underflow when normalized
		if 1e-160 < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk in the XY plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		u := sampler.Get2D()
		p := NewVec3(2*u.X-1, 2*u.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
