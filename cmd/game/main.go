package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"rts-select/internal/camera"
	"rts-select/internal/commands"
	"rts-select/internal/config"
	"rts-select/internal/debug"
	"rts-select/internal/graphics"
	"rts-select/internal/input"
	"rts-select/internal/logger"
	"rts-select/internal/mapgen"
	"rts-select/internal/physics"
	"rts-select/internal/scene"
	"rts-select/internal/selection"
	"rts-select/internal/terminal"
	"rts-select/internal/ui"
	"rts-select/internal/units"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func main() {
	cfg, cfgErr := config.Load(config.Path)
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Close()
	if cfgErr != nil {
		log.Warn("using default config", zap.Error(cfgErr))
	}
	for _, msg := range cfg.Normalize() {
		log.Warn(msg)
	}

	unitLayer := physics.Layer(cfg.Selection.UnitLayer)
	groundLayer := physics.Layer(cfg.Selection.GroundLayer)

	world := physics.NewWorld()
	ground := physics.NewBody(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100}, 0, true)
	ground.Layer = groundLayer
	world.AddBody(ground)

	var terrain *mapgen.Terrain
	var groundAt units.GroundFunc
	if cfg.Scene.Terrain {
		opts := mapgen.DefaultHeightMapOptions()
		opts.Seed = cfg.Scene.TerrainSeed
		terrain = mapgen.Generate(world, groundLayer, opts)
		groundAt = terrain.HeightAt
		log.Info("terrain generated", zap.Int64("seed", terrain.Seed()), zap.Int("tiles", len(terrain.Tiles)))
	}
	heightAt := func(x, z float32) float32 {
		if groundAt == nil {
			return 0
		}
		return groundAt(x, z)
	}

	var roster units.Roster
	units.SpawnGrid(world, unitLayer, &roster, mgl32.Vec3{-8, 0.5, -6}, 4, 6, 3, groundAt, 1, 2)
	tank := units.Spawn(world, unitLayer, "tank", 1, mgl32.Vec3{12, heightAt(12, 0) + 0.5, 0})
	tank.AddCollider(world, unitLayer, mgl32.Vec3{12, heightAt(12, 1.5) + 0.5, 1.5}, mgl32.Vec3{1.5, 1, 1.5})
	units.Colorize(tank)
	roster.Add(tank)
	scout := units.Spawn(world, unitLayer, "scout", 1, mgl32.Vec3{-12, 6, 0})
	scout.Shape = units.Cylinder
	scout.Bodies[0].Static = false
	units.Colorize(scout)
	roster.Add(scout)

	cam := camera.New(windowWidth, windowHeight)
	cam.Position = mgl32.Vec3{0, 28, 24}
	scn := scene.New(cam)
	scn.SetGridVisible(cfg.Scene.GridVisible)
	scn.Terrain = terrain

	dbg := debug.New(cfg.Debug.RayLifetime)
	dbg.SetShowFPS(cfg.Debug.ShowFPS)
	dbg.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
	dbg.Lines.Enabled = cfg.Debug.DrawRays

	box := ui.NewSelectionBox()
	dev := &graphics.Device{}
	sel := selection.New(cfg.SelectionSettings(),
		selection.WithOverlay(box),
		selection.WithLines(dbg.Lines),
		selection.WithCursor(dev),
		selection.WithLogger(log.Named("selection")))

	reg := commands.NewRegistry()
	term := terminal.New(log, reg)
	term.OnToggle = func(open bool) {
		if open {
			sel.Disable()
		} else {
			sel.Enable()
		}
	}
	commands.RegisterSelection(reg, sel, commands.Toggles{
		Grid: scn.SetGridVisible,
		FPS:  dbg.SetShowFPS,
		Rays: func(on bool) { dbg.Lines.Enabled = on },
		Save: func() error {
			s := sel.Settings()
			cfg.Selection.Team = s.Team
			cfg.Selection.ClickRadius = s.ClickRadius
			cfg.Scene.GridVisible = scn.GridVisible
			cfg.Debug.ShowFPS = dbg.ShowFPS
			cfg.Debug.DrawRays = dbg.Lines.Enabled
			return config.Save(config.Path, cfg)
		},
	}, log.Log)

	log.Info("scene ready",
		zap.Int("units", len(roster.All())),
		zap.Int("team", cfg.Selection.Team),
		zap.Uint32("unit_mask", uint32(unitLayer.Mask())))

	insp := ui.NewInspector()
	var nodes []*ui.Node

	graphics.Run("RTS selection", windowWidth, windowHeight, graphics.Loop{
		Update: func(dt float32) {
			term.Update()
			scn.Update(dt, !term.IsOpen(), dev.ButtonDown(cfg.Input.PanCamera))
			sel.Update(&selection.Context{
				Input:  input.Poll(dev, cfg.Input),
				Camera: cam,
				World:  world,
			})
		},
		Step: func(dt float32) {
			world.Step(dt)
			sel.PhysicsTick()
		},
		Draw: func() {
			scn.Draw(&roster, dbg.Draw3D)
			box.Draw()
			nodes = insp.AppendNodes(nodes[:0], true, inspect(sel))
			ui.DrawNodes(nodes)
			term.Draw()
			dbg.Draw()
		},
	})
}

func inspect(sel *selection.Selector) ui.Selection {
	out := ui.Selection{Team: sel.Settings().Team, State: sel.State().String()}
	for _, s := range sel.Selection() {
		out.Names = append(out.Names, nameOf(s))
	}
	if h := sel.Hovered(); h != nil {
		out.Hovered = fmt.Sprintf("%s (team %d)", nameOf(h), h.Team())
	}
	return out
}

func nameOf(s selection.Selectable) string {
	if u, ok := s.(*units.Unit); ok {
		return u.Name
	}
	return "?"
}
