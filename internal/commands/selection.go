package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"rts-select/internal/selection"
)

// Selector is the part of selection.Selector the console drives.
type Selector interface {
	Settings() selection.Settings
	SetTeam(team int)
	SetClickRadius(r float32)
	ClearSelection()
	Selection() []selection.Selectable
	State() selection.State
}

// Toggles are the scene and debug switches the console can flip.
type Toggles struct {
	Grid func(visible bool)
	FPS  func(show bool)
	Rays func(draw bool)
	Save func() error
}

// RegisterSelection adds the selection and view commands to r. Output lines go to out.
//
//	cmd team -id N        select units of team N from now on
//	cmd radius -r F       click pick radius; 0 picks with a thin ray
//	cmd clear             deselect everything
//	cmd status            print team, radius and selection size
//	cmd grid -visible     show or hide the grid (-visible=false hides)
//	cmd fps -on           FPS overlay
//	cmd rays -on          diagnostic selection rays
//	cmd save              write the current settings to the config file
//	cmd help              list commands
func RegisterSelection(r *Registry, sel Selector, t Toggles, out func(string)) {
	team := flag.NewFlagSet("team", flag.ContinueOnError)
	teamID := team.Int("id", 1, "team id")
	r.Register("team", "team -id N", team, func() error {
		sel.SetTeam(*teamID)
		out(fmt.Sprintf("team set to %d", *teamID))
		return nil
	})

	radius := flag.NewFlagSet("radius", flag.ContinueOnError)
	radiusR := radius.Float64("r", 0, "pick radius")
	r.Register("radius", "radius -r F", radius, func() error {
		if *radiusR < 0 {
			return errors.Errorf("radius must not be negative, got %g", *radiusR)
		}
		sel.SetClickRadius(float32(*radiusR))
		out(fmt.Sprintf("click radius set to %g", *radiusR))
		return nil
	})

	r.Register("clear", "clear", flag.NewFlagSet("clear", flag.ContinueOnError), func() error {
		if sel.State() != selection.StateIdle {
			return errors.New("a gesture is in progress")
		}
		sel.ClearSelection()
		out("selection cleared")
		return nil
	})

	r.Register("status", "status", flag.NewFlagSet("status", flag.ContinueOnError), func() error {
		s := sel.Settings()
		out(fmt.Sprintf("team %d, click radius %g, selected %d, state %s",
			s.Team, s.ClickRadius, len(sel.Selection()), sel.State()))
		return nil
	})

	registerToggle(r, "grid", "visible", t.Grid, out)
	registerToggle(r, "fps", "on", t.FPS, out)
	registerToggle(r, "rays", "on", t.Rays, out)

	if t.Save != nil {
		r.Register("save", "save", flag.NewFlagSet("save", flag.ContinueOnError), func() error {
			if err := t.Save(); err != nil {
				return err
			}
			out("settings saved")
			return nil
		})
	}

	r.Register("help", "help", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		var usages []string
		for _, n := range r.Names() {
			u, _ := r.Usage(n)
			usages = append(usages, u)
		}
		out("commands: " + strings.Join(usages, ", "))
		return nil
	})
}

func registerToggle(r *Registry, name, flagName string, set func(bool), out func(string)) {
	if set == nil {
		return
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	on := fs.Bool(flagName, true, name)
	r.Register(name, fmt.Sprintf("%s -%s[=false]", name, flagName), fs, func() error {
		set(*on)
		out(fmt.Sprintf("%s %v", name, *on))
		return nil
	})
}
