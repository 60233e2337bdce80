package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Layer is a collision layer index (0..31). Bodies live on exactly one layer.
type Layer uint8

// Mask selects a set of layers for casts and triggers.
type Mask uint32

// AllLayers matches every layer.
const AllLayers Mask = ^Mask(0)

// Mask returns the single-layer mask for l.
func (l Layer) Mask() Mask {
	return 1 << (l & 31)
}

// Has reports whether l is part of the mask.
func (m Mask) Has(l Layer) bool {
	return m&l.Mask() != 0
}

// Body is a 3D rigid body with position, velocity, and AABB (from scale).
// Used for dynamic or static objects; static bodies do not move and are not affected by gravity.
// Owner is the game object the collider is attached to. A nil Owner is plain world geometry
// (ground, props) that casts can hit but that never resolves to an entity.
type Body struct {
	ID       uuid.UUID
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Scale    mgl32.Vec3
	Mass     float32
	Static   bool
	Layer    Layer
	Owner    any
}

// NewBody returns a body with the given position and scale. Velocity is zero.
// mass is used for collision response; use 1 for default. Static bodies ignore gravity and velocity.
func NewBody(position, scale mgl32.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		ID:       uuid.New(),
		Position: position,
		Scale:    scale,
		Mass:     mass,
		Static:   static,
	}
}

// Bounds returns the AABB for the body (center position, half extents from scale).
// A zero scale component counts as 1 so a body is never flat.
func (b *Body) Bounds() AABB {
	half := b.Scale
	for i := range half {
		if half[i] == 0 {
			half[i] = 1
		}
		half[i] *= 0.5
	}
	return AABB{Min: b.Position.Sub(half), Max: b.Position.Add(half)}
}
