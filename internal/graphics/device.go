package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"rts-select/internal/input"
)

var buttons = map[string]rl.MouseButton{
	input.ButtonLeft:   rl.MouseButtonLeft,
	input.ButtonRight:  rl.MouseButtonRight,
	input.ButtonMiddle: rl.MouseButtonMiddle,
}

var keys = map[string]int32{
	input.KeyLeftShift:    rl.KeyLeftShift,
	input.KeyLeftControl:  rl.KeyLeftControl,
	input.KeyRightShift:   rl.KeyRightShift,
	input.KeyRightControl: rl.KeyRightControl,
	input.KeyLeftAlt:      rl.KeyLeftAlt,
	input.KeyEscape:       rl.KeyEscape,
}

// Device reads the mouse and keyboard through raylib. Unknown names read as not pressed.
// A button name is also accepted by KeyDown and the other way round.
type Device struct {
	hidden bool
}

var _ input.Device = (*Device)(nil)

func (d *Device) MousePosition() mgl32.Vec2 {
	p := rl.GetMousePosition()
	return mgl32.Vec2{p.X, p.Y}
}

func (d *Device) ButtonPressed(name string) bool {
	b, ok := buttons[name]
	return ok && rl.IsMouseButtonPressed(b)
}

func (d *Device) ButtonReleased(name string) bool {
	b, ok := buttons[name]
	return ok && rl.IsMouseButtonReleased(b)
}

func (d *Device) ButtonDown(name string) bool {
	if b, ok := buttons[name]; ok {
		return rl.IsMouseButtonDown(b)
	}
	return d.keyDown(name)
}

func (d *Device) KeyDown(name string) bool {
	if b, ok := buttons[name]; ok {
		return rl.IsMouseButtonDown(b)
	}
	return d.keyDown(name)
}

func (d *Device) keyDown(name string) bool {
	k, ok := keys[name]
	return ok && rl.IsKeyDown(k)
}

func (d *Device) CursorHidden() bool {
	return d.hidden
}

// SetVisible shows or hides the system pointer. The pointer keeps moving while hidden.
func (d *Device) SetVisible(visible bool) {
	if visible == !d.hidden {
		return
	}
	d.hidden = !visible
	if visible {
		rl.ShowCursor()
	} else {
		rl.HideCursor()
	}
}
