package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

// Style is how a node is painted. A zero Background alpha skips the fill; HasBorder draws a 1px outline.
type Style struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Padding    int32
	FontSize   int32
}

// Node is a single UI element: panel, label, etc. Bounds are in screen pixels.
type Node struct {
	Type   string // "panel", "label", etc.
	Bounds rl.Rectangle
	Text   string // for label-type nodes
	Style  Style
}

// NewNode creates a node with type, text and style.
func NewNode(typ, text string, style Style) *Node {
	return &Node{Type: typ, Text: text, Style: style}
}

// DrawNodes draws nodes in order: background, border, then text.
func DrawNodes(nodes []*Node) {
	for _, n := range nodes {
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		st := n.Style
		if st.Background.A > 0 && w > 0 && h > 0 {
			rl.DrawRectangle(x, y, w, h, st.Background)
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, st.Border)
		}
		if n.Text != "" {
			size := st.FontSize
			if size <= 0 {
				size = defaultFontSize
			}
			pad := st.Padding
			if pad <= 0 {
				pad = 4
			}
			rl.DrawText(n.Text, x+pad, y+pad, size, st.Color)
		}
	}
}
