package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterRayLooksAtTarget(t *testing.T) {
	c := New(800, 600)
	r := c.ScreenPointToRay(mgl32.Vec2{400, 300})

	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	assert.True(t, r.Direction.ApproxEqualThreshold(want, 5e-3), "direction %v", r.Direction)
	assert.InDelta(t, 1, r.Direction.Len(), 1e-3)
	// Origin sits on the near plane, just in front of the camera.
	assert.InDelta(t, c.Near, r.Origin.Sub(c.Position).Len(), 1e-3)
}

func TestScreenYGrowsDownward(t *testing.T) {
	c := New(800, 600)
	top := c.ScreenPointToRay(mgl32.Vec2{400, 0})
	bottom := c.ScreenPointToRay(mgl32.Vec2{400, 600})
	assert.Greater(t, top.Direction.Y(), bottom.Direction.Y())
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := New(1024, 768)
	p, ok := c.WorldToScreen(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 512, p.X(), 0.5)
	assert.InDelta(t, 384, p.Y(), 0.5)

	point := mgl32.Vec3{2, 0, -3}
	s, ok := c.WorldToScreen(point)
	require.True(t, ok)
	r := c.ScreenPointToRay(s)
	// Distance from point to the ray must be ~0.
	toPoint := point.Sub(r.Origin)
	closest := r.At(toPoint.Dot(r.Direction))
	assert.Less(t, closest.Sub(point).Len(), float32(0.05))

	_, ok = c.WorldToScreen(mgl32.Vec3{20, 20, 20})
	assert.False(t, ok)
}

func TestPanMovesTarget(t *testing.T) {
	c := New(640, 480)
	c.Pan(mgl32.Vec3{1, 0, 2})
	assert.Equal(t, mgl32.Vec3{11, 10, 12}, c.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, c.Target)

	c.SetViewport(0, 10)
	assert.Equal(t, 640, c.Width)
}
