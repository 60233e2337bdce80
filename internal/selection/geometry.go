package selection

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"rts-select/internal/physics"
)

// MinimumBoxSize is the default smallest width and height of a drag rectangle, in screen units.
// Thinner rectangles produce a volume too flat to triangulate.
const MinimumBoxSize = 2

// Triangles is the index table of the selection volume: 12 triangles over the far corners
// (0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right) and the matching near corners 4-7.
var Triangles = []int{
	0, 1, 2, 2, 1, 3, 4, 6, 0, 0, 6, 2, 6, 7, 2, 2, 7, 3,
	7, 5, 3, 3, 5, 1, 5, 0, 1, 1, 4, 0, 4, 5, 6, 6, 5, 7,
}

// Rect is a screen-space rectangle with Min at the top-left.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

func (r Rect) Width() float32  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float32 { return r.Max.Y() - r.Min.Y() }
func (r Rect) Area() float32   { return r.Width() * r.Height() }

func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Corners returns top-left, top-right, bottom-left, bottom-right.
func (r Rect) Corners() [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		{r.Min.X(), r.Min.Y()},
		{r.Max.X(), r.Min.Y()},
		{r.Min.X(), r.Max.Y()},
		{r.Max.X(), r.Max.Y()},
	}
}

// CorrectRect returns the rectangle spanned by p1 and p2 in either drag direction, grown
// symmetrically about its center on any axis shorter than minSize.
func CorrectRect(p1, p2 mgl32.Vec2, minSize float32) Rect {
	r := Rect{
		Min: mgl32.Vec2{math32.Min(p1.X(), p2.X()), math32.Min(p1.Y(), p2.Y())},
		Max: mgl32.Vec2{math32.Max(p1.X(), p2.X()), math32.Max(p1.Y(), p2.Y())},
	}
	if w := r.Width(); w < minSize {
		d := (minSize - w) * 0.5
		r.Min[0] -= d
		r.Max[0] += d
	}
	if h := r.Height(); h < minSize {
		d := (minSize - h) * 0.5
		r.Min[1] -= d
		r.Max[1] += d
	}
	return r
}

// BoxOverlay returns the center and size to draw the drag rectangle between start and current.
// Each dimension is clamped to at least minSize.
func BoxOverlay(start, current mgl32.Vec2, minSize float32) (center, size mgl32.Vec2) {
	d := current.Sub(start)
	center = start.Add(d.Mul(0.5))
	size = mgl32.Vec2{
		math32.Max(math32.Abs(d.X()), minSize),
		math32.Max(math32.Abs(d.Y()), minSize),
	}
	return center, size
}

// Volume is the world-space hexahedron swept by a drag rectangle.
type Volume struct {
	Rect     Rect
	Vertices [8]mgl32.Vec3
}

// Hull returns the collision hull of v. ok is false for a volume that encloses no space.
func (v *Volume) Hull() (physics.Hull, bool) {
	return physics.NewHull(v.Vertices[:], Triangles)
}

// Raycaster finds the first body on mask along a ray.
type Raycaster interface {
	Raycast(r physics.Ray, maxDist float32, mask physics.Mask) (physics.Hit, bool)
}

// BuildVolume fills dst with the volume under rect. Each corner is cast from the camera up to
// far against mask; the far vertex is the hit point or, on a miss, the end of the ray. The near
// vertex is the far vertex moved back by (origin - far), which puts it on the ray origin.
// lines, if not nil, receives every corner ray. It reports false when rect has no area.
func BuildVolume(dst *Volume, cam Camera, world Raycaster, rect Rect, far float32, mask physics.Mask, lines LineDrawer) bool {
	dst.Rect = rect
	if !(rect.Area() > 0) {
		return false
	}
	for i, corner := range rect.Corners() {
		ray := cam.ScreenPointToRay(corner)
		end := ray.At(far)
		hit, ok := world.Raycast(ray, far, mask)
		if ok {
			end = hit.Point
		}
		dst.Vertices[i] = end
		dst.Vertices[i+4] = end.Add(ray.Origin.Sub(end))
		if lines != nil {
			lines.DrawLine(ray.Origin, end, ok)
		}
	}
	return true
}

// BuildRay returns the camera ray through p.
func BuildRay(cam Camera, p mgl32.Vec2) physics.Ray {
	return cam.ScreenPointToRay(p)
}

// scratch hands out the single volume buffer a selector needs, tagged with the gesture that owns it.
type scratch struct {
	buf   Volume
	owner uint64
}

// acquire returns the zeroed buffer for gesture. The previous owner, if any, loses it.
func (s *scratch) acquire(gesture uint64) *Volume {
	s.buf = Volume{}
	s.owner = gesture
	return &s.buf
}

// release frees the buffer if gesture still owns it. Releasing twice is a no-op.
func (s *scratch) release(gesture uint64) bool {
	if s.owner == 0 || s.owner != gesture {
		return false
	}
	s.buf = Volume{}
	s.owner = 0
	return true
}

func (s *scratch) inUse() bool {
	return s.owner != 0
}
