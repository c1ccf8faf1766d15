package material

// Handle addresses a material stored in an Arena
type Handle int

// Arena owns every material of a scene; surfaces refer to them by Handle
type Arena struct {
	materials []Material
}

// NewArena creates an empty material arena
func NewArena() *Arena {
	return &Arena{}
}

// Add stores a material and returns its handle
func (a *Arena) Add(m Material) Handle {
	a.materials = append(a.materials, m)
	return Handle(len(a.materials) - 1)
}

// Get returns the material for a handle. An unknown handle is a programming error.
func (a *Arena) Get(h Handle) Material {
	return a.materials[h]
}

// Contains reports whether h addresses a stored material
func (a *Arena) Contains(h Handle) bool {
	return h >= 0 && int(h) < len(a.materials)
}

// Len returns the number of stored materials
func (a *Arena) Len() int {
	return len(a.materials)
}
