package selection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"rts-select/internal/input"
	"rts-select/internal/physics"
)

const (
	groundLayer physics.Layer = 0
	unitLayer   physics.Layer = 1
	fixedStep                 = 1.0 / 50
)

// topDown looks straight down the -Y axis; screen (x, y) maps to world (x, z).
type topDown struct{}

func (topDown) ScreenPointToRay(p mgl32.Vec2) physics.Ray {
	return physics.Ray{Origin: mgl32.Vec3{p.X(), 100, p.Y()}, Direction: mgl32.Vec3{0, -1, 0}}
}

func (topDown) FarClip() float32 { return 200 }

// unit counts raw capability calls on top of a Receiver.
type unit struct {
	*Receiver
	name          string
	selectCalls   int
	deselectCalls int
}

func (u *unit) Select() {
	u.selectCalls++
	u.Receiver.Select()
}

func (u *unit) Deselect() {
	u.deselectCalls++
	u.Receiver.Deselect()
}

type fakeOverlay struct {
	visible bool
	center  mgl32.Vec2
	size    mgl32.Vec2
	shows   int
}

func (o *fakeOverlay) Show(center, size mgl32.Vec2) {
	o.visible, o.center, o.size = true, center, size
	o.shows++
}

func (o *fakeOverlay) Hide() { o.visible = false }

type fakeCursor struct{ hidden bool }

func (c *fakeCursor) SetVisible(v bool) { c.hidden = !v }

type line struct {
	from, to mgl32.Vec3
	hit      bool
}

type fakeLines struct{ lines []line }

func (l *fakeLines) DrawLine(from, to mgl32.Vec3, hit bool) {
	l.lines = append(l.lines, line{from, to, hit})
}

type harness struct {
	t       *testing.T
	world   *physics.World
	sel     *Selector
	overlay *fakeOverlay
	cursor  *fakeCursor
	lines   *fakeLines
	events  []string
}

func newHarness(t *testing.T, mutate ...func(*Settings)) *harness {
	t.Helper()
	settings := DefaultSettings()
	settings.UnitMask = unitLayer.Mask()
	settings.GroundMask = groundLayer.Mask()
	for _, m := range mutate {
		m(&settings)
	}

	w := physics.NewWorld()
	w.SetGravity(mgl32.Vec3{})
	g := physics.NewBody(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{400, 1, 400}, 1, true)
	g.Layer = groundLayer
	w.AddBody(g)

	h := &harness{t: t, world: w, overlay: &fakeOverlay{}, cursor: &fakeCursor{}, lines: &fakeLines{}}
	h.sel = New(settings, WithOverlay(h.overlay), WithCursor(h.cursor), WithLines(h.lines))
	return h
}

// spawn adds a unit with a 1x1x1 collider standing on the ground at screen point (x, z).
func (h *harness) spawn(name string, team int, x, z float32) *unit {
	u := &unit{Receiver: NewReceiver(team), name: name}
	u.Subscribe(ListenerFuncs{
		Select:     func() { h.events = append(h.events, name+":select") },
		Deselect:   func() { h.events = append(h.events, name+":deselect") },
		HoverEnter: func() { h.events = append(h.events, name+":enter") },
		HoverExit:  func() { h.events = append(h.events, name+":exit") },
	})
	h.collider(u, x, z)
	return u
}

func (h *harness) collider(owner any, x, z float32) *physics.Body {
	b := physics.NewBody(mgl32.Vec3{x, 0.5, z}, mgl32.Vec3{1, 1, 1}, 1, true)
	b.Layer = unitLayer
	b.Owner = owner
	h.world.AddBody(b)
	return b
}

func (h *harness) frame(in input.Snapshot) {
	in.CursorVisible = !h.cursor.hidden
	h.sel.Update(&Context{Input: in, Camera: topDown{}, World: h.world})
}

func (h *harness) step() {
	h.world.Step(fixedStep)
	h.sel.PhysicsTick()
}

func withMod(in input.Snapshot, mod Modifier) input.Snapshot {
	in.Additive = mod == Additive
	in.Subtractive = mod == Subtractive
	return in
}

func (h *harness) press(p mgl32.Vec2, mod Modifier) {
	h.frame(withMod(input.Snapshot{Pointer: p, Down: true, Held: true}, mod))
}

func (h *harness) move(p mgl32.Vec2) {
	h.frame(input.Snapshot{Pointer: p, Held: true})
}

func (h *harness) release(p mgl32.Vec2) {
	h.frame(input.Snapshot{Pointer: p, Up: true})
}

func (h *harness) click(p mgl32.Vec2, mod Modifier) {
	h.press(p, mod)
	h.release(p)
	require.Equal(h.t, StateIdle, h.sel.State())
}

// drag runs a full drag gesture including the physics step that confirms it.
func (h *harness) drag(from, to mgl32.Vec2, mod Modifier) {
	h.press(from, mod)
	h.move(to)
	h.release(to)
	require.Equal(h.t, StateAwaitingPhysics, h.sel.State())
	h.step()
	require.Equal(h.t, StateIdle, h.sel.State())
}

func (h *harness) selected() []Selectable {
	return h.sel.Selection()
}

// platform adds a ground-layer box spanning [minX,maxX]x[minZ,maxZ] with its top at y = top.
func (h *harness) platform(minX, minZ, maxX, maxZ, top float32) *physics.Body {
	center := mgl32.Vec3{(minX + maxX) / 2, top - 0.5, (minZ + maxZ) / 2}
	b := physics.NewBody(center, mgl32.Vec3{maxX - minX, 1, maxZ - minZ}, 1, true)
	b.Layer = groundLayer
	h.world.AddBody(b)
	return b
}
