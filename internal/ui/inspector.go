package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	inspectorWidth  = 300
	inspectorMargin = 12
	inspectorLine   = 24
	maxListedUnits  = 8
)

var (
	panelStyle = Style{Background: rl.NewColor(24, 24, 24, 220), Border: rl.NewColor(80, 80, 80, 255), HasBorder: true}
	titleStyle = Style{Color: rl.White, Padding: 8}
	labelStyle = Style{Color: rl.LightGray, Padding: 8, FontSize: 18}
)

// Inspector is a left-side panel that shows the player's team, the selection and the hovered unit.
// It owns its nodes and updates their text when AppendNodes is called with visible true.
type Inspector struct {
	panel    *Node
	title    *Node
	team     *Node
	count    *Node
	hovered  *Node
	selected *Node
}

func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "", panelStyle),
		title:    NewNode("label", "Selection", titleStyle),
		team:     NewNode("label", "", labelStyle),
		count:    NewNode("label", "", labelStyle),
		hovered:  NewNode("label", "", labelStyle),
		selected: NewNode("label", "", labelStyle),
	}
}

// Selection holds the data shown in the inspector. Pass this from the game layer; ui does not
// depend on units.
type Selection struct {
	Team    int
	Names   []string
	Hovered string
	State   string
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels and
// layout from sel. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.team.Text = fmt.Sprintf("Team: %d", sel.Team)
	in.count.Text = fmt.Sprintf("Selected: %d (%s)", len(sel.Names), sel.State)
	if sel.Hovered != "" {
		in.hovered.Text = "Hover: " + sel.Hovered
	} else {
		in.hovered.Text = "Hover: -"
	}
	names := sel.Names
	if len(names) > maxListedUnits {
		names = append(names[:maxListedUnits:maxListedUnits], fmt.Sprintf("+%d more", len(sel.Names)-maxListedUnits))
	}
	in.selected.Text = strings.Join(names, "\n")

	rows := []*Node{in.title, in.team, in.count, in.hovered, in.selected}
	y := float32(inspectorMargin)
	for _, n := range rows {
		n.Bounds = rl.Rectangle{X: inspectorMargin, Y: y, Width: inspectorWidth, Height: inspectorLine}
		y += inspectorLine
	}
	listed := len(names)
	if listed > 0 {
		y += float32(listed-1) * inspectorLine
	}
	in.panel.Bounds = rl.Rectangle{X: inspectorMargin, Y: inspectorMargin, Width: inspectorWidth, Height: y - inspectorMargin + 8}
	return append(dst, in.panel, in.title, in.team, in.count, in.hovered, in.selected)
}
