// Package units holds the demo entities that take part in selection. A Unit is a Receiver with one
// or more physics colliders and a tint that follows its selection and hover state.
package units

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"rts-select/internal/physics"
	"rts-select/internal/selection"
)

// Default tints.
var (
	DefaultColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	SelectedColor = color.RGBA{R: 230, G: 41, B: 55, A: 255}
	HoverColor    = color.RGBA{R: 253, G: 249, B: 0, A: 255}
)

// Shape names the primitive a unit is drawn with.
type Shape string

const (
	Cube     Shape = "cube"
	Cylinder Shape = "cylinder"
)

// Unit is a selectable entity.
type Unit struct {
	*selection.Receiver
	ID     uuid.UUID
	Name   string
	Shape  Shape
	Bodies []*physics.Body
	Tint   color.RGBA
}

// Spawn adds a unit of the given team to w with one static 1x1x1 collider centered at position.
func Spawn(w *physics.World, layer physics.Layer, name string, team int, position mgl32.Vec3) *Unit {
	u := &Unit{
		Receiver: selection.NewReceiver(team),
		ID:       uuid.New(),
		Name:     name,
		Shape:    Cube,
		Tint:     DefaultColor,
	}
	u.AddCollider(w, layer, position, mgl32.Vec3{1, 1, 1})
	return u
}

// AddCollider attaches another collider. A drag that covers several colliders still selects the unit once.
func (u *Unit) AddCollider(w *physics.World, layer physics.Layer, position, scale mgl32.Vec3) *physics.Body {
	b := physics.NewBody(position, scale, 1, true)
	b.Layer = layer
	b.Owner = u
	w.AddBody(b)
	u.Bodies = append(u.Bodies, b)
	return b
}

// Position is the center of the first collider.
func (u *Unit) Position() mgl32.Vec3 {
	if len(u.Bodies) == 0 {
		return mgl32.Vec3{}
	}
	return u.Bodies[0].Position
}

// Despawn removes every collider of u from w. The unit keeps its selection state.
func (u *Unit) Despawn(w *physics.World) {
	for _, b := range u.Bodies {
		w.RemoveBody(b)
	}
	u.Bodies = nil
}

// ColorListener keeps Tint in step with the unit state. Selection wins over hover.
type ColorListener struct {
	unit     *Unit
	Default  color.RGBA
	Selected color.RGBA
	Hover    color.RGBA
}

// Colorize subscribes a ColorListener with the default tints to u.
func Colorize(u *Unit) (*ColorListener, func()) {
	l := &ColorListener{unit: u, Default: DefaultColor, Selected: SelectedColor, Hover: HoverColor}
	u.Tint = l.current()
	return l, u.Subscribe(l)
}

func (l *ColorListener) OnSelect()     { l.unit.Tint = l.current() }
func (l *ColorListener) OnDeselect()   { l.unit.Tint = l.current() }
func (l *ColorListener) OnHoverEnter() { l.unit.Tint = l.current() }
func (l *ColorListener) OnHoverExit()  { l.unit.Tint = l.current() }

func (l *ColorListener) current() color.RGBA {
	switch {
	case l.unit.Selected():
		return l.Selected
	case l.unit.Hovering():
		return l.Hover
	default:
		return l.Default
	}
}

// Roster is the set of units in a scene, in spawn order.
type Roster struct {
	units []*Unit
}

func (r *Roster) Add(u *Unit) { r.units = append(r.units, u) }

func (r *Roster) All() []*Unit { return r.units }

// Team returns the units of one team.
func (r *Roster) Team(team int) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Team() == team {
			out = append(out, u)
		}
	}
	return out
}

// Find returns the unit with the given name.
func (r *Roster) Find(name string) (*Unit, bool) {
	for _, u := range r.units {
		if u.Name == name {
			return u, true
		}
	}
	return nil, false
}

// GroundFunc returns the ground height at (x, z).
type GroundFunc func(x, z float32) float32

// SpawnGrid fills a rows x cols block starting at origin, spacing apart, alternating teams per row
// between the given teams. With ground set, each unit stands on the ground height under it and
// origin.Y is ignored.
func SpawnGrid(w *physics.World, layer physics.Layer, r *Roster, origin mgl32.Vec3, rows, cols int, spacing float32, ground GroundFunc, teams ...int) {
	if len(teams) == 0 {
		teams = []int{1}
	}
	for row := 0; row < rows; row++ {
		team := teams[row%len(teams)]
		for col := 0; col < cols; col++ {
			p := origin.Add(mgl32.Vec3{float32(col) * spacing, 0, float32(row) * spacing})
			if ground != nil {
				p[1] = ground(p.X(), p.Z()) + 0.5
			}
			u := Spawn(w, layer, unitName(team, row, col), team, p)
			Colorize(u)
			r.Add(u)
		}
	}
}

func unitName(team, row, col int) string {
	return fmt.Sprintf("t%d-%d-%d", team, row, col)
}
