package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// FixedStep is the physics step, 50 Hz.
const FixedStep = 1.0 / 50

// maxStepsPerFrame bounds the catch-up after a long frame.
const maxStepsPerFrame = 5

// Loop is what Run drives each frame. Update sees the frame time, Step runs once per fixed physics
// step after Update and Draw renders between BeginDrawing and EndDrawing.
type Loop struct {
	Update func(dt float32)
	Step   func(dt float32)
	Draw   func()
}

// Run opens the window and runs the loop until the window is closed.
// ESC toggles the console rather than quitting; close via the window button.
func Run(title string, width, height int32, loop Loop) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	var acc Accumulator
	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		if loop.Update != nil {
			loop.Update(dt)
		}
		steps := acc.Advance(dt)
		for range steps {
			if loop.Step != nil {
				loop.Step(FixedStep)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 36, 255))
		if loop.Draw != nil {
			loop.Draw()
		}
		rl.EndDrawing()
	}
}

// Accumulator turns variable frame times into a whole number of fixed steps.
type Accumulator struct {
	rest float32
}

// Advance adds dt and returns how many FixedStep steps are due. Time beyond maxStepsPerFrame
// steps is dropped.
func (a *Accumulator) Advance(dt float32) int {
	if dt < 0 {
		dt = 0
	}
	a.rest += dt
	n := 0
	for a.rest >= FixedStep && n < maxStepsPerFrame {
		a.rest -= FixedStep
		n++
	}
	if n == maxStepsPerFrame && a.rest >= FixedStep {
		a.rest = 0
	}
	return n
}
