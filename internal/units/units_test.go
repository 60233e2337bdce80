package units

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rts-select/internal/input"
	"rts-select/internal/physics"
	"rts-select/internal/selection"
)

const unitLayer physics.Layer = 1

type overhead struct{}

func (overhead) ScreenPointToRay(p mgl32.Vec2) physics.Ray {
	return physics.Ray{Origin: mgl32.Vec3{p.X(), 50, p.Y()}, Direction: mgl32.Vec3{0, -1, 0}}
}

func (overhead) FarClip() float32 { return 100 }

func TestColorListener(t *testing.T) {
	w := physics.NewWorld()
	u := Spawn(w, unitLayer, "a", 1, mgl32.Vec3{})
	_, cancel := Colorize(u)
	assert.Equal(t, DefaultColor, u.Tint)

	u.HoverEnter()
	assert.Equal(t, HoverColor, u.Tint)
	u.Select()
	assert.Equal(t, SelectedColor, u.Tint)
	u.HoverExit()
	assert.Equal(t, SelectedColor, u.Tint, "selection wins over hover")
	u.HoverEnter()
	u.Deselect()
	assert.Equal(t, HoverColor, u.Tint)
	u.HoverExit()
	assert.Equal(t, DefaultColor, u.Tint)

	cancel()
	u.Select()
	assert.Equal(t, DefaultColor, u.Tint)
}

func TestSpawnRegistersOwnedCollider(t *testing.T) {
	w := physics.NewWorld()
	u := Spawn(w, unitLayer, "a", 2, mgl32.Vec3{3, 0.5, 4})
	require.Len(t, u.Bodies, 1)
	assert.Same(t, u, u.Bodies[0].Owner)
	assert.Equal(t, unitLayer, u.Bodies[0].Layer)
	assert.Equal(t, mgl32.Vec3{3, 0.5, 4}, u.Position())
	assert.Equal(t, 2, u.Team())
	assert.Len(t, w.Bodies, 1)

	u.Despawn(w)
	assert.Empty(t, w.Bodies)
	assert.Equal(t, mgl32.Vec3{}, u.Position())
}

func TestDragOverMultiColliderUnitSelectsOnce(t *testing.T) {
	w := physics.NewWorld()
	w.SetGravity(mgl32.Vec3{})
	u := Spawn(w, unitLayer, "tank", 1, mgl32.Vec3{10, 0.5, 10})
	u.AddCollider(w, unitLayer, mgl32.Vec3{12, 0.5, 10}, mgl32.Vec3{1, 1, 1})
	var selects int
	u.Subscribe(selection.ListenerFuncs{Select: func() { selects++ }})

	settings := selection.DefaultSettings()
	settings.UnitMask = unitLayer.Mask()
	sel := selection.New(settings)
	frame := func(in input.Snapshot) {
		in.CursorVisible = true
		sel.Update(&selection.Context{Input: in, Camera: overhead{}, World: w})
	}

	frame(input.Snapshot{Pointer: mgl32.Vec2{5, 5}, Down: true, Held: true})
	frame(input.Snapshot{Pointer: mgl32.Vec2{15, 15}, Held: true})
	frame(input.Snapshot{Pointer: mgl32.Vec2{15, 15}, Up: true})
	w.Step(1.0 / 50)
	sel.PhysicsTick()

	assert.Equal(t, []selection.Selectable{u}, sel.Selection())
	assert.Equal(t, 1, selects)
}

func TestRoster(t *testing.T) {
	w := physics.NewWorld()
	var r Roster
	SpawnGrid(w, unitLayer, &r, mgl32.Vec3{0, 0.5, 0}, 2, 3, 2, nil, 1, 2)

	require.Len(t, r.All(), 6)
	assert.Len(t, r.Team(1), 3)
	assert.Len(t, r.Team(2), 3)
	u, ok := r.Find("t2-1-2")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{4, 0.5, 2}, u.Position())
	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestSpawnGridStandsOnGround(t *testing.T) {
	w := physics.NewWorld()
	var r Roster
	hill := func(x, z float32) float32 { return x / 2 }
	SpawnGrid(w, unitLayer, &r, mgl32.Vec3{0, 99, 0}, 1, 3, 2, hill)

	require.Len(t, r.All(), 3)
	for i, u := range r.All() {
		assert.Equal(t, float32(i)+0.5, u.Position().Y())
		assert.Equal(t, 1, u.Team())
	}
}
