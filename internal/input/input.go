package input

import "github.com/go-gl/mathgl/mgl32"

// Default binding names, matching a PC mouse and keyboard.
const (
	ButtonLeft       = "left"
	ButtonRight      = "right"
	ButtonMiddle     = "middle"
	KeyLeftShift     = "left_shift"
	KeyLeftControl   = "left_control"
	KeyRightShift    = "right_shift"
	KeyRightControl  = "right_control"
	KeyLeftAlt       = "left_alt"
	KeyEscape        = "escape"
	defaultSelect    = ButtonLeft
	defaultAdditive  = KeyLeftShift
	defaultSubtract  = KeyLeftControl
	defaultPanCamera = ButtonMiddle
)

// Snapshot is the state of the input signals for one frame.
// Down and Up are edge events and are true for exactly one frame; Held is the level.
type Snapshot struct {
	Pointer       mgl32.Vec2
	Down          bool
	Up            bool
	Held          bool
	Additive      bool
	Subtractive   bool
	CursorVisible bool
}

// Bindings names the buttons and keys used for unit selection.
type Bindings struct {
	Select      string `yaml:"select_button"`
	Additive    string `yaml:"additive_key"`
	Subtractive string `yaml:"subtractive_key"`
	PanCamera   string `yaml:"pan_button"`
}

// DefaultBindings returns left mouse to select, left shift to add and left control to subtract.
func DefaultBindings() Bindings {
	return Bindings{
		Select:      defaultSelect,
		Additive:    defaultAdditive,
		Subtractive: defaultSubtract,
		PanCamera:   defaultPanCamera,
	}
}

// Device is the platform input backend. Names are the binding names above.
type Device interface {
	MousePosition() mgl32.Vec2
	ButtonPressed(name string) bool
	ButtonReleased(name string) bool
	ButtonDown(name string) bool
	KeyDown(name string) bool
	CursorHidden() bool
}

// Poll reads one frame of selection input from dev.
func Poll(dev Device, b Bindings) Snapshot {
	return Snapshot{
		Pointer:       dev.MousePosition(),
		Down:          dev.ButtonPressed(b.Select),
		Up:            dev.ButtonReleased(b.Select),
		Held:          dev.ButtonDown(b.Select),
		Additive:      dev.KeyDown(b.Additive),
		Subtractive:   dev.KeyDown(b.Subtractive),
		CursorVisible: !dev.CursorHidden(),
	}
}
