package physics

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is one body intersected by a cast.
type Hit struct {
	Body     *Body
	Point    mgl32.Vec3
	Distance float32
}

// RaycastAll returns every body on mask that r enters within maxDist, nearest first.
func (w *World) RaycastAll(r Ray, maxDist float32, mask Mask) []Hit {
	return w.sweep(r, 0, maxDist, mask)
}

// Raycast returns the nearest body on mask hit by r within maxDist.
func (w *World) Raycast(r Ray, maxDist float32, mask Mask) (Hit, bool) {
	hits := w.sweep(r, 0, maxDist, mask)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// CapsuleCastAll sweeps a sphere of the given radius along r and returns every body on mask it
// touches within maxDist, nearest first. Each box is inflated by radius, which is exact on the faces
// and slightly generous on edges and corners. A radius of 0 is the same query as RaycastAll.
func (w *World) CapsuleCastAll(r Ray, radius, maxDist float32, mask Mask) []Hit {
	if radius < 0 {
		radius = 0
	}
	return w.sweep(r, radius, maxDist, mask)
}

func (w *World) sweep(r Ray, radius, maxDist float32, mask Mask) []Hit {
	var hits []Hit
	for _, b := range w.Bodies {
		if !mask.Has(b.Layer) {
			continue
		}
		box := b.Bounds()
		if radius > 0 {
			box = box.Expand(radius)
		}
		t, ok := box.intersect(r, maxDist)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Body: b, Point: r.At(t), Distance: t})
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}
