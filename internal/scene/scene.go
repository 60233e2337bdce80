package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"rts-select/internal/camera"
	"rts-select/internal/mapgen"
	"rts-select/internal/primitives"
	"rts-select/internal/units"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220

	panSpeed  = 20 // world units per second
	dragSpeed = 0.05
	zoomStep  = 1.5
	minZoom   = 4
	maxZoom   = 120
)

// Scene draws the battlefield: ground grid and units, seen through an RTS camera that pans on the
// XZ plane with WASD/arrows or a mouse drag and zooms with the wheel.
type Scene struct {
	Camera      *camera.Camera
	GridVisible bool
	Terrain     *mapgen.Terrain // optional
	prims       *primitives.Registry
}

var terrainColor = rl.NewColor(86, 110, 70, 255)

// New returns a scene viewed through cam. Grid is visible by default.
func New(cam *camera.Camera) *Scene {
	return &Scene{
		Camera:      cam,
		GridVisible: true,
		prims:       primitives.NewRegistry(),
	}
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update moves the camera. panHeld reports whether the pan mouse button is down; keyboard panning
// is skipped while typing (keys false).
func (s *Scene) Update(dt float32, keys, panHeld bool) {
	s.Camera.SetViewport(rl.GetScreenWidth(), rl.GetScreenHeight())

	fwd := s.Camera.Forward()
	ground := mgl32.Vec3{fwd.X(), 0, fwd.Z()}
	if ground.Len() == 0 {
		ground = mgl32.Vec3{0, 0, -1}
	}
	ground = ground.Normalize()
	right := ground.Cross(mgl32.Vec3{0, 1, 0})

	var move mgl32.Vec3
	if keys {
		if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
			move = move.Add(ground)
		}
		if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
			move = move.Sub(ground)
		}
		if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
			move = move.Add(right)
		}
		if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
			move = move.Sub(right)
		}
	}
	if move.Len() > 0 {
		s.Camera.Pan(move.Normalize().Mul(panSpeed * dt))
	}
	if panHeld {
		d := rl.GetMouseDelta()
		s.Camera.Pan(right.Mul(-d.X * dragSpeed).Add(ground.Mul(d.Y * dragSpeed)))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		offset := s.Camera.Position.Sub(s.Camera.Target)
		dist := offset.Len() - wheel*zoomStep
		dist = mgl32.Clamp(dist, minZoom, maxZoom)
		s.Camera.Position = s.Camera.Target.Add(offset.Normalize().Mul(dist))
	}
}

// Camera3D converts the camera for raylib's 3D mode.
func (s *Scene) Camera3D() rl.Camera3D {
	c := s.Camera
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the grid, the terrain and every unit of roster with its current tint, then calls extra (e.g.
// diagnostic lines) inside the same 3D pass.
func (s *Scene) Draw(roster *units.Roster, extra func()) {
	rl.BeginMode3D(s.Camera3D())
	if s.GridVisible {
		drawEditorGrid()
	}
	s.prims.SetView(s.Camera.Position, mgl32.Vec3{0.5, 1, 0.5})
	if s.Terrain != nil {
		for _, b := range s.Terrain.Tiles {
			s.prims.Draw("cube", b.Position, b.Scale, terrainColor)
		}
	}
	for _, u := range roster.All() {
		for _, b := range u.Bodies {
			s.prims.Draw(string(u.Shape), b.Position, b.Scale, u.Tint)
			if u.Hovering() {
				primitives.DrawWires(b.Position, b.Scale.Mul(1.05), units.HoverColor)
			}
		}
	}
	if extra != nil {
		extra()
	}
	rl.EndMode3D()
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = -gridExtent, float32(i)
		end.X, end.Z = gridExtent, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = -gridExtent, 0.01, 0
	end.X, end.Y, end.Z = gridExtent, 0.01, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Z = 0, -gridExtent
	end.X, end.Z = 0, gridExtent
	rl.DrawLine3D(start, end, axisZ)
}
