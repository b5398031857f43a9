package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestVec3_CrossAndDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		cross    Vec3
		expected float64
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1), 0},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0), 0},
		{"Parallel", NewVec3(2, 0, 0), NewVec3(3, 0, 0), NewVec3(0, 0, 0), 6},
		{"General", NewVec3(1, 2, 3), NewVec3(4, 5, 6), NewVec3(-3, 6, -3), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); !got.Equals(tt.cross) {
				t.Errorf("Cross: expected %v, got %v", tt.cross, got)
			}
			if got := tt.a.Dot(tt.b); got != tt.expected {
				t.Errorf("Dot: expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	zero := Vec3{}
	if got := zero.Normalize(); !got.Equals(zero) {
		t.Errorf("Expected zero vector, got %v", got)
	}

	unit := NewVec3(3, 4, 0).Normalize()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Length())
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %v, want %v", tt.v, got, tt.expected)
			}
		})
	}
}

func TestReflect_PreservesLengthAndFlipsNormalComponent(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		n := RandomUnitVector(sampler)
		d := RandomVec3(sampler, -5, 5)

		r := Reflect(d, n)

		if math.Abs(r.Length()-d.Length()) > 1e-9 {
			t.Fatalf("Reflection changed length: |d|=%f |r|=%f", d.Length(), r.Length())
		}
		if math.Abs(r.Dot(n)+d.Dot(n)) > 1e-9 {
			t.Fatalf("Expected dot(r,n) = -dot(d,n): %f vs %f", r.Dot(n), -d.Dot(n))
		}
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	n := NewVec3(0, 1, 0)
	uv := NewVec3(0, -1, 0)

	got := Refract(uv, n, 1.0/1.5)
	if got.Subtract(uv).Length() > 1e-12 {
		t.Errorf("Normal incidence should pass straight through, got %v", got)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	uv := NewVec3(1, -1, 0).Normalize()
	eta := 1.0 / 1.5

	refracted := Refract(uv, n, eta)

	sinIn := math.Abs(uv.X)
	sinOut := math.Abs(refracted.Normalize().X)
	if math.Abs(sinOut-eta*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f, expected %f", sinOut, eta*sinIn)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", refracted.Length())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(2, 3, 4), 0.25)

	if got := ray.At(2); !got.Equals(NewVec3(5, 8, 11)) {
		t.Errorf("Expected (5, 8, 11), got %v", got)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
}
