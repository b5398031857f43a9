package scene

import (
	"math"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// sphereGridSeed fixes the layout so every render of the grid is the same scene
const sphereGridSeed = 42

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

func sphereGridCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0.6,
		FocusDistance: 10.0,
	}
}

// NewSphereGridScene creates a field of small random spheres around three large ones
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := NewScene(mergeCamera(sphereGridCamera(), cameraOverrides), renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})
	addSphereGrid(s, false)
	return s
}

// NewBouncingSpheresScene is the sphere grid with the diffuse spheres moving
// upwards during the exposure, rendered with motion blur
func NewBouncingSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := sphereGridCamera()
	cameraConfig.MotionBlur = true

	s := NewScene(mergeCamera(cameraConfig, cameraOverrides), renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})
	addSphereGrid(s, true)
	return s
}

func addSphereGrid(s *Scene, bouncing bool) {
	sampler := core.NewSeededSampler(sphereGridSeed)

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			// keep the space around the large metal sphere free
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// diffuse, colored evenly around the hue wheel
				hue := core.RandomInRange(sampler, 0, 360)
				chroma := core.RandomInRange(sampler, 0.05, 0.25)
				albedo := oklchToRGB(0.65, chroma, hue)
				mat := s.AddMaterial(material.NewLambertian(albedo.MultiplyVec(albedo)))

				if bouncing {
					center2 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
					s.AddMovingSphere(center, center2, 0.2, mat)
				} else {
					s.AddSphere(center, 0.2, mat)
				}
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				s.AddSphere(center, 0.2, s.AddMaterial(material.NewMetal(albedo, fuzz)))
			default:
				s.AddSphere(center, 0.2, s.AddMaterial(material.NewDielectric(1.5)))
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, s.AddMaterial(material.NewDielectric(1.5)))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))
}
