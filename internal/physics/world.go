package physics

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// World holds a set of bodies and runs a simple 3D physics step: gravity, integration, AABB collision,
// then trigger overlap evaluation. It is driven by the game loop at a fixed step and is not safe for
// concurrent use.
type World struct {
	Gravity  mgl32.Vec3
	Bodies   []*Body
	triggers []*Trigger
	steps    uint64
}

// NewWorld returns a new physics world with default gravity (0, -9.8, 0).
// The scene uses Y-up, so "down" is -Y.
func NewWorld() *World {
	return &World{Gravity: mgl32.Vec3{0, -9.8, 0}}
}

// SetGravity sets the gravity vector (e.g. [0, -9.8, 0] for down in -Y).
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved for syncing with scene objects.
func (w *World) AddBody(b *Body) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody drops b from the world. Unknown bodies are ignored.
func (w *World) RemoveBody(b *Body) {
	if i := slices.Index(w.Bodies, b); i >= 0 {
		w.Bodies = slices.Delete(w.Bodies, i, i+1)
	}
	for _, t := range w.triggers {
		delete(t.inside, b)
	}
}

// Steps returns how many times Step has run.
func (w *World) Steps() uint64 {
	return w.steps
}

// Step advances the simulation by dt seconds: apply gravity, integrate, then AABB collisions.
// Triggers are evaluated last, against the resolved positions of this step.
// No global floor: dynamic bodies can fall until they hit another body (e.g. a static plane).
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	// AABB collision: resolve overlapping pairs (push apart along minimum penetration axis)
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		boxI := bi.Bounds()
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			depth, axis := penetrationAxis(boxI, bj.Bounds())
			if axis < 0 {
				continue
			}
			resolve(bi, bj, depth, axis)
			boxI = bi.Bounds()
		}
	}

	w.steps++
	w.evaluateTriggers()
}

// resolve pushes bi and bj apart along axis. Static bodies don't move.
func resolve(bi, bj *Body, depth float32, axis int) {
	var moveI, moveJ float32
	switch {
	case bi.Static:
		moveJ = depth
	case bj.Static:
		moveI = -depth
	default:
		total := bi.Mass + bj.Mass
		moveI = -depth * (bj.Mass / total)
		moveJ = depth * (bi.Mass / total)
	}
	// Push toward the side each body is already on.
	if bi.Position[axis] > bj.Position[axis] {
		moveI, moveJ = -moveI, -moveJ
	}
	bi.Position[axis] += moveI
	bj.Position[axis] += moveJ
	if !bi.Static {
		bi.Velocity[axis] = 0
	}
	if !bj.Static {
		bj.Velocity[axis] = 0
	}
}
