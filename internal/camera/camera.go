package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"rts-select/internal/physics"
)

const (
	defaultFovy = 45
	defaultNear = 0.01
	defaultFar  = 1000
)

// Camera is a perspective camera in screen space with the origin at the top-left corner and Y
// growing downward, matching the window's mouse coordinates.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32 // vertical field of view in degrees
	Near     float32
	Far      float32
	Width    int
	Height   int
}

// New returns a camera looking at the origin from (10, 10, 10), up (0,1,0), fovy 45°, for a
// viewport of the given size.
func New(width, height int) *Camera {
	return &Camera{
		Position: mgl32.Vec3{10, 10, 10},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     defaultFovy,
		Near:     defaultNear,
		Far:      defaultFar,
		Width:    width,
		Height:   height,
	}
}

// SetViewport updates the screen size used for projection. Non-positive sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Width, c.Height = width, height
	}
}

// FarClip returns the far clip distance.
func (c *Camera) FarClip() float32 {
	return c.Far
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ScreenPointToRay returns the world-space ray through screen point p. The origin lies on the near
// plane and the direction is normalized. If the projection cannot be inverted the ray runs along
// the view direction from the camera position.
func (c *Camera) ScreenPointToRay(p mgl32.Vec2) physics.Ray {
	view, proj := c.View(), c.Projection()
	winY := float32(c.Height) - p.Y()
	near, errNear := mgl32.UnProject(mgl32.Vec3{p.X(), winY, 0}, view, proj, 0, 0, c.Width, c.Height)
	far, errFar := mgl32.UnProject(mgl32.Vec3{p.X(), winY, 1}, view, proj, 0, 0, c.Width, c.Height)
	dir := far.Sub(near)
	if errNear != nil || errFar != nil || dir.Len() == 0 {
		return physics.Ray{Origin: c.Position, Direction: c.Forward()}
	}
	return physics.Ray{Origin: near, Direction: dir.Normalize()}
}

// WorldToScreen projects p to screen coordinates. ok is false when p is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	if p.Sub(c.Position).Dot(c.Forward()) <= 0 {
		return mgl32.Vec2{}, false
	}
	win := mgl32.Project(p, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	return mgl32.Vec2{win.X(), float32(c.Height) - win.Y()}, true
}

// Pan moves position and target together by delta.
func (c *Camera) Pan(delta mgl32.Vec3) {
	c.Position = c.Position.Add(delta)
	c.Target = c.Target.Add(delta)
}
