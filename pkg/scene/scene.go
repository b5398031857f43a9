package scene

import (
	"fmt"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/geometry"
	"github.com/df07/go-multipass-raytracer/pkg/material"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Objects        []geometry.Hittable // Objects in the scene, in insertion order
	Materials      *material.Arena     // Materials referenced by the objects
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
	BVH            *geometry.BVHNode // Acceleration structure, built by Preprocess
}

// NewScene creates an empty scene. Zero fields of the camera and sampling
// settings fall back to the renderer defaults.
func NewScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Objects:        make([]geometry.Hittable, 0),
		Materials:      material.NewArena(),
		SamplingConfig: renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), samplingConfig),
		CameraConfig:   renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), cameraConfig),
	}
}

// AddMaterial stores m in the scene's arena
func (s *Scene) AddMaterial(m material.Material) material.Handle {
	return s.Materials.Add(m)
}

// AddSphere adds a stationary sphere
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Handle) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Objects = append(s.Objects, sphere)
	return sphere
}

// AddMovingSphere adds a sphere moving from center1 at time 0 to center2 at time 1
func (s *Scene) AddMovingSphere(center1, center2 core.Point, radius float64, mat material.Handle) *geometry.Sphere {
	sphere := geometry.NewMovingSphere(center1, center2, radius, mat)
	s.Objects = append(s.Objects, sphere)
	return sphere
}

// Preprocess checks bounds and material references, then builds the BVH.
// The scene must not be modified afterwards.
func (s *Scene) Preprocess() error {
	for i, object := range s.Objects {
		if !object.BoundingBox().IsValid() {
			return fmt.Errorf("object %d: invalid bounding box %v", i, object.BoundingBox())
		}
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if int(sphere.Material) < 0 || int(sphere.Material) >= s.Materials.Len() {
			return fmt.Errorf("object %d: material handle %d out of range (%d materials)",
				i, sphere.Material, s.Materials.Len())
		}
	}

	s.BVH = geometry.NewBVH(s.Objects)
	return nil
}

// GetWorld returns the BVH if the scene was preprocessed, otherwise a flat list
func (s *Scene) GetWorld() geometry.Hittable {
	if s.BVH != nil {
		return s.BVH
	}
	return geometry.NewHittableList(s.Objects...)
}

// GetMaterials returns the scene's material arena
func (s *Scene) GetMaterials() *material.Arena {
	return s.Materials
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// MovingSphereCount returns how many spheres change position over the exposure
func (s *Scene) MovingSphereCount() int {
	count := 0
	for _, object := range s.Objects {
		if sphere, ok := object.(*geometry.Sphere); ok && sphere.IsMoving() {
			count++
		}
	}
	return count
}

// mergeCamera applies the first override, if any, to a scene's default camera
func mergeCamera(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
