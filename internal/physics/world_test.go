package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groundLayer Layer = 0
	unitLayer   Layer = 3
)

func ground() *Body {
	g := NewBody(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100}, 1, true)
	g.Layer = groundLayer
	return g
}

func unit(x, z float32) *Body {
	b := NewBody(mgl32.Vec3{x, 0.5, z}, mgl32.Vec3{1, 1, 1}, 1, true)
	b.Layer = unitLayer
	return b
}

func down(x, z float32) Ray {
	return Ray{Origin: mgl32.Vec3{x, 50, z}, Direction: mgl32.Vec3{0, -1, 0}}
}

func boxHull(min, max mgl32.Vec3) (Hull, bool) {
	verts := []mgl32.Vec3{
		{min[0], min[1], min[2]}, {max[0], min[1], min[2]}, {min[0], min[1], max[2]}, {max[0], min[1], max[2]},
		{min[0], max[1], min[2]}, {max[0], max[1], min[2]}, {min[0], max[1], max[2]}, {max[0], max[1], max[2]},
	}
	return NewHull(verts, boxTriangles)
}

var boxTriangles = []int{
	0, 1, 2, 2, 1, 3, 4, 6, 0, 0, 6, 2, 6, 7, 2, 2, 7, 3,
	7, 5, 3, 3, 5, 1, 5, 0, 1, 1, 4, 0, 4, 5, 6, 6, 5, 7,
}

func TestMaskHas(t *testing.T) {
	m := unitLayer.Mask() | groundLayer.Mask()
	assert.True(t, m.Has(unitLayer))
	assert.True(t, m.Has(groundLayer))
	assert.False(t, m.Has(Layer(5)))
	assert.True(t, AllLayers.Has(Layer(31)))
}

func TestStepGravityLandsOnStaticGround(t *testing.T) {
	w := NewWorld()
	w.AddBody(ground())
	box := NewBody(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(box)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60)
	}

	assert.InDelta(t, 0.5, box.Position.Y(), 0.05, "box should rest on top of the ground")
	assert.Equal(t, uint64(240), w.Steps())
}

func TestRaycastAllOrdersByDistance(t *testing.T) {
	w := NewWorld()
	w.AddBody(ground())
	near := unit(0, 0)
	near.Position[1] = 5
	far := unit(0, 0)
	w.AddBody(far)
	w.AddBody(near)

	hits := w.RaycastAll(down(0, 0), 100, AllLayers)
	require.Len(t, hits, 3)
	assert.Same(t, near, hits[0].Body)
	assert.Same(t, far, hits[1].Body)
	assert.InDelta(t, 44.5, hits[0].Distance, 1e-4)
	assert.InDelta(t, 0, hits[2].Point.Y(), 1e-4)
}

func TestRaycastRespectsMaskAndDistance(t *testing.T) {
	w := NewWorld()
	w.AddBody(ground())
	w.AddBody(unit(0, 0))

	hit, ok := w.Raycast(down(0, 0), 100, groundLayer.Mask())
	require.True(t, ok)
	assert.Equal(t, groundLayer, hit.Body.Layer)

	_, ok = w.Raycast(down(0, 0), 10, AllLayers)
	assert.False(t, ok, "bodies beyond maxDist must not be hit")

	_, ok = w.Raycast(down(5, 5), 100, unitLayer.Mask())
	assert.False(t, ok)
}

func TestCapsuleCastRadius(t *testing.T) {
	w := NewWorld()
	w.AddBody(unit(1.2, 0))

	assert.Empty(t, w.CapsuleCastAll(down(0, 0), 0, 100, AllLayers))
	assert.Len(t, w.CapsuleCastAll(down(0, 0), 0.8, 100, AllLayers), 1)
	assert.Equal(t, w.RaycastAll(down(1.2, 0), 100, AllLayers), w.CapsuleCastAll(down(1.2, 0), 0, 100, AllLayers))
}

func TestHullRejectsFlatInput(t *testing.T) {
	_, ok := boxHull(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 0, 4})
	assert.False(t, ok)

	h, ok := boxHull(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 3, 4})
	require.True(t, ok)
	assert.InDelta(t, 24, h.Volume(), 1e-3)
	assert.True(t, h.Contains(mgl32.Vec3{1, 1, 1}))
	assert.False(t, h.Contains(mgl32.Vec3{3, 1, 1}))
}

func TestHullOverlapsAABB(t *testing.T) {
	h, ok := boxHull(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 4})
	require.True(t, ok)

	assert.True(t, h.OverlapsAABB(AABB{Min: mgl32.Vec3{3, 3, 3}, Max: mgl32.Vec3{5, 5, 5}}))
	assert.True(t, h.OverlapsAABB(AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{2, 2, 2}}))
	assert.False(t, h.OverlapsAABB(AABB{Min: mgl32.Vec3{5, 0, 0}, Max: mgl32.Vec3{6, 1, 1}}))
}

func TestHullCoversFoldedBottom(t *testing.T) {
	// Three bottom corners at 1.2 and one at 0: the mesh dips towards (20, 20) and is not convex.
	verts := []mgl32.Vec3{
		{0, 1.2, 0}, {20, 1.2, 0}, {0, 1.2, 20}, {20, 0, 20},
		{0, 100, 0}, {20, 100, 0}, {0, 100, 20}, {20, 100, 20},
	}
	h, ok := NewHull(verts, boxTriangles)
	require.True(t, ok)

	assert.True(t, h.Contains(mgl32.Vec3{15, 0.5, 15}))
	assert.True(t, h.OverlapsAABB(AABB{Min: mgl32.Vec3{14.5, 0, 14.5}, Max: mgl32.Vec3{15.5, 1, 15.5}}))
	assert.True(t, h.Contains(mgl32.Vec3{5, 1.5, 5}))
	assert.False(t, h.Contains(mgl32.Vec3{15, 0.1, 15}))
	assert.False(t, h.Contains(mgl32.Vec3{25, 50, 10}))
	assert.False(t, h.Contains(mgl32.Vec3{10, 101, 10}))
}

func TestTriggerReportsOnNextStep(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	w.AddBody(ground())
	inside := unit(1, 1)
	outside := unit(10, 10)
	w.AddBody(inside)
	w.AddBody(outside)

	h, ok := boxHull(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 10, 3})
	require.True(t, ok)

	var entered []*Body
	trig := &Trigger{Hull: h, Mask: unitLayer.Mask(), OnEnter: func(b *Body) { entered = append(entered, b) }}
	w.Attach(trig)
	assert.True(t, trig.Attached())
	assert.False(t, trig.Evaluated())
	assert.Empty(t, entered, "attaching alone must not report overlaps")

	w.Step(1.0 / 60)
	assert.True(t, trig.Evaluated())
	require.Len(t, entered, 1)
	assert.Same(t, inside, entered[0])

	w.Step(1.0 / 60)
	assert.Len(t, entered, 1, "overlap begin fires once per body")

	w.Detach(trig)
	w.Detach(trig)
	assert.False(t, trig.Attached())
	w.Step(1.0 / 60)
	assert.Len(t, entered, 1)
}

func TestTriggerDetachDuringCallback(t *testing.T) {
	w := NewWorld()
	w.AddBody(unit(1, 1))
	w.AddBody(unit(2, 2))
	h, ok := boxHull(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{3, 10, 3})
	require.True(t, ok)

	calls := 0
	trig := &Trigger{Hull: h, Mask: AllLayers}
	trig.OnEnter = func(*Body) {
		calls++
		w.Detach(trig)
	}
	w.Attach(trig)
	w.Step(1.0 / 60)
	assert.Equal(t, 1, calls)
	assert.False(t, trig.Evaluated())
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld()
	b := unit(0, 0)
	w.AddBody(b)
	w.RemoveBody(b)
	w.RemoveBody(b)
	assert.Empty(t, w.Bodies)
}
