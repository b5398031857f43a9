package material

import "fmt"

// Handle refers to a material stored in an Arena
type Handle int

// Arena owns the materials of a scene. Many primitives may share one Handle.
// An Arena is filled while the scene is built and only read afterwards.
type Arena struct {
	materials []Material
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{}
}

// Add stores m and returns its handle
func (a *Arena) Add(m Material) Handle {
	a.materials = append(a.materials, m)
	return Handle(len(a.materials) - 1)
}

// Get returns the material for h. It panics on a handle not issued by this arena.
func (a *Arena) Get(h Handle) Material {
	if int(h) < 0 || int(h) >= len(a.materials) {
		panic(fmt.Sprintf("material: invalid handle %d (arena holds %d)", h, len(a.materials)))
	}
	return a.materials[h]
}

// Len returns the number of stored materials
func (a *Arena) Len() int {
	return len(a.materials)
}
