package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type sceneEntry struct {
	info        SceneInfo
	constructor func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var registry = map[string]sceneEntry{
	"default": {
		info:        SceneInfo{Name: "default", Description: "Gray sphere on a gray ground sphere"},
		constructor: NewDefaultScene,
	},
	"materials": {
		info:        SceneInfo{Name: "materials", Description: "Diffuse, hollow glass and fuzzy metal spheres"},
		constructor: NewMaterialsScene,
	},
	"focus": {
		info:        SceneInfo{Name: "focus", Description: "Materials scene with depth of field"},
		constructor: NewFocusScene,
	},
	"spheregrid": {
		info:        SceneInfo{Name: "spheregrid", Description: "Random field of small spheres around three large ones"},
		constructor: NewSphereGridScene,
	},
	"bouncing": {
		info:        SceneInfo{Name: "bouncing", Description: "Sphere field with moving spheres and motion blur"},
		constructor: NewBouncingSpheresScene,
	},
}

// New builds and preprocesses the named scene
func New(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}

	s := entry.constructor(cameraOverrides...)
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocessing scene %q: %w", name, err)
	}
	return s, nil
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns information about every registered scene, sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}
