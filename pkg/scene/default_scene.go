package scene

import (
	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// NewDefaultScene creates a gray sphere resting on a large gray ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		FocusDistance: 1.0,
	}

	s := NewScene(mergeCamera(defaultCameraConfig, cameraOverrides), renderer.SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        50,
	})

	gray := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)

	return s
}

// NewMaterialsScene shows each material side by side on a yellow ground
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		FocusDistance: 1.0,
	}

	s := NewScene(mergeCamera(defaultCameraConfig, cameraOverrides), renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	addMaterialSpheres(s)
	return s
}

// NewFocusScene is the materials scene seen from above and to the side
// through a wide aperture focused on the centre sphere
func NewFocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  10.0,
		FocusDistance: 3.4,
	}

	s := NewScene(mergeCamera(defaultCameraConfig, cameraOverrides), renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	addMaterialSpheres(s)
	return s
}

func addMaterialSpheres(s *Scene) {
	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.AddMaterial(material.NewDielectric(1.50))
	bubble := s.AddMaterial(material.NewDielectric(1.00 / 1.50))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.4, bubble) // air bubble inside the glass
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)
}
