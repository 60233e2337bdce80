package physics

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minHullVolume is the smallest enclosed volume a hull may have before it is treated as flat.
const minHullVolume = 1e-6

type plane struct {
	normal mgl32.Vec3
	offset float32 // points p with normal·p <= offset are inside
}

// Hull is the convex hull of a closed triangle mesh. A mesh that is not convex, such as a selection
// volume whose far face follows uneven ground, is covered entirely by its hull. Face orientation in
// the index table does not matter.
type Hull struct {
	planes []plane
	bounds AABB
	volume float32
}

// NewHull builds a hull from vertices and a triangle index table (three indices per triangle).
// The triangles only measure the enclosed volume; the bounding planes come from the vertices.
// ok is false when the mesh encloses no volume, which is the case for flat or collapsed input.
func NewHull(vertices []mgl32.Vec3, triangles []int) (h Hull, ok bool) {
	if len(vertices) < 4 || len(triangles) < 12 || len(triangles)%3 != 0 {
		return Hull{}, false
	}
	var centroid mgl32.Vec3
	h.bounds = AABB{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices {
		if !finite(v) {
			return Hull{}, false
		}
		centroid = centroid.Add(v)
		for i := 0; i < 3; i++ {
			h.bounds.Min[i] = math32.Min(h.bounds.Min[i], v[i])
			h.bounds.Max[i] = math32.Max(h.bounds.Max[i], v[i])
		}
	}
	centroid = centroid.Mul(1 / float32(len(vertices)))

	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := vertices[triangles[i]], vertices[triangles[i+1]], vertices[triangles[i+2]]
		h.volume += math32.Abs(a.Sub(centroid).Dot(b.Sub(centroid).Cross(c.Sub(centroid)))) / 6
	}
	if h.volume < minHullVolume {
		return Hull{}, false
	}
	h.planes = hullPlanes(vertices, h.bounds)
	if len(h.planes) < 4 {
		return Hull{}, false
	}
	return h, true
}

// hullPlanes returns the supporting planes of the vertices' convex hull: every plane through three
// vertices that has all other vertices on its inner side. Duplicate planes are dropped.
func hullPlanes(vertices []mgl32.Vec3, bounds AABB) []plane {
	eps := 1e-5 * (1 + bounds.Max.Sub(bounds.Min).Len())
	var planes []plane
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			for k := j + 1; k < len(vertices); k++ {
				a := vertices[i]
				n := vertices[j].Sub(a).Cross(vertices[k].Sub(a))
				if n.Len() < 1e-9 {
					continue
				}
				n = n.Normalize()
				offset := n.Dot(a)
				var above, below int
				for _, v := range vertices {
					switch d := n.Dot(v) - offset; {
					case d > eps:
						above++
					case d < -eps:
						below++
					}
				}
				if above > 0 && below > 0 {
					continue
				}
				if above > 0 {
					n, offset = n.Mul(-1), -offset
				}
				if !hasPlane(planes, n, offset, eps) {
					planes = append(planes, plane{normal: n, offset: offset})
				}
			}
		}
	}
	return planes
}

func hasPlane(planes []plane, n mgl32.Vec3, offset, eps float32) bool {
	for _, pl := range planes {
		if pl.normal.Sub(n).Len() < 1e-4 && math32.Abs(pl.offset-offset) < eps {
			return true
		}
	}
	return false
}

// Volume returns the enclosed volume.
func (h Hull) Volume() float32 {
	return h.volume
}

// Bounds returns the hull's axis-aligned bounds.
func (h Hull) Bounds() AABB {
	return h.bounds
}

// Contains reports whether p is inside or on the hull.
func (h Hull) Contains(p mgl32.Vec3) bool {
	if len(h.planes) == 0 {
		return false
	}
	for _, pl := range h.planes {
		if pl.normal.Dot(p) > pl.offset+1e-5 {
			return false
		}
	}
	return true
}

// OverlapsAABB reports whether the hull and box intersect. The box is rejected when it lies fully
// outside a hull face or outside the hull bounds; boxes grazing an edge diagonally can be reported
// as overlapping.
func (h Hull) OverlapsAABB(b AABB) bool {
	if len(h.planes) == 0 || !h.bounds.Overlaps(b) {
		return false
	}
	for _, pl := range h.planes {
		// Corner of the box furthest into the hull along -normal.
		var p mgl32.Vec3
		for i := 0; i < 3; i++ {
			if pl.normal[i] >= 0 {
				p[i] = b.Min[i]
			} else {
				p[i] = b.Max[i]
			}
		}
		if pl.normal.Dot(p) > pl.offset+1e-5 {
			return false
		}
	}
	return true
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Trigger is a query volume attached to a World. It reports every body on Mask whose bounds begin
// overlapping the hull. Overlaps are only produced by Step, so a trigger attached between two steps
// reports on the following step.
type Trigger struct {
	Hull    Hull
	Mask    Mask
	OnEnter func(*Body)

	attached  bool
	evaluated bool
	inside    map[*Body]struct{}
}

// Attached reports whether the trigger is currently installed in a world.
func (t *Trigger) Attached() bool {
	return t.attached
}

// Evaluated reports whether at least one Step has run since the trigger was attached.
func (t *Trigger) Evaluated() bool {
	return t.evaluated
}

// Attach installs t. Re-attaching an installed trigger resets its overlap state.
func (w *World) Attach(t *Trigger) {
	t.evaluated = false
	t.inside = make(map[*Body]struct{})
	if !t.attached {
		w.triggers = append(w.triggers, t)
		t.attached = true
	}
}

// Detach removes t. Detaching a trigger that is not attached is a no-op.
func (w *World) Detach(t *Trigger) {
	if !t.attached {
		return
	}
	if i := slices.Index(w.triggers, t); i >= 0 {
		w.triggers = slices.Delete(w.triggers, i, i+1)
	}
	t.attached = false
	t.inside = nil
}

func (w *World) evaluateTriggers() {
	// OnEnter may detach triggers; iterate over a snapshot.
	for _, t := range slices.Clone(w.triggers) {
		if !t.attached {
			continue
		}
		for _, b := range w.Bodies {
			if !t.attached {
				break
			}
			if !t.Mask.Has(b.Layer) {
				continue
			}
			_, was := t.inside[b]
			now := t.Hull.OverlapsAABB(b.Bounds())
			switch {
			case now && !was:
				t.inside[b] = struct{}{}
				if t.OnEnter != nil {
					t.OnEnter(b)
				}
			case !now && was:
				delete(t.inside, b)
			}
		}
		if t.attached {
			t.evaluated = true
		}
	}
}
