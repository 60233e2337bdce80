package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	boxFill   = rl.NewColor(80, 160, 255, 50)
	boxBorder = rl.NewColor(120, 190, 255, 220)
)

// SelectionBox is the drag rectangle drawn over the scene while a box selection is in progress.
type SelectionBox struct {
	visible bool
	center  mgl32.Vec2
	size    mgl32.Vec2
}

func NewSelectionBox() *SelectionBox {
	return &SelectionBox{}
}

// Show places the box at center with size, in screen pixels.
func (b *SelectionBox) Show(center, size mgl32.Vec2) {
	b.visible = true
	b.center = center
	b.size = size
}

func (b *SelectionBox) Hide() {
	b.visible = false
}

func (b *SelectionBox) Visible() bool {
	return b.visible
}

// Draw draws the box when visible. Call in the 2D pass after the scene.
func (b *SelectionBox) Draw() {
	if !b.visible {
		return
	}
	r := rl.Rectangle{
		X:      b.center.X() - b.size.X()/2,
		Y:      b.center.Y() - b.size.Y()/2,
		Width:  b.size.X(),
		Height: b.size.Y(),
	}
	rl.DrawRectangleRec(r, boxFill)
	rl.DrawRectangleLinesEx(r, 1, boxBorder)
}
