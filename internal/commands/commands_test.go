package commands

import (
	"flag"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rts-select/internal/selection"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd team -id 2")
	require.True(t, ok)
	assert.Equal(t, []string{"team", "-id", "2"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
	_, ok = Parse("CMD team")
	assert.False(t, ok)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	err := r.Execute(nil)
	assert.True(t, errors.Is(err, ErrMissingSubcommand))

	err = r.Execute([]string{"warp"})
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Contains(t, err.Error(), "warp")

	fs := flag.NewFlagSet("n", flag.ContinueOnError)
	fs.Int("n", 0, "")
	r.Register("n", "n -n N", fs, func() error { return errors.New("boom") })
	err = r.Execute([]string{"n", "-n", "x"})
	assert.ErrorContains(t, err, "usage: n -n N")
	assert.EqualError(t, r.Execute([]string{"n"}), "n: boom")
}

func TestExecuteResetsFlags(t *testing.T) {
	r := NewRegistry()
	var seen []bool
	registerToggle(r, "grid", "visible", func(v bool) { seen = append(seen, v) }, func(string) {})

	require.NoError(t, r.Execute([]string{"grid", "-visible=false"}))
	require.NoError(t, r.Execute([]string{"grid"}))
	assert.Equal(t, []bool{false, true}, seen)
}

type fakeSelector struct {
	settings selection.Settings
	selected []selection.Selectable
	state    selection.State
	cleared  int
}

func (f *fakeSelector) Settings() selection.Settings      { return f.settings }
func (f *fakeSelector) SetTeam(team int)                  { f.settings.Team = team }
func (f *fakeSelector) SetClickRadius(r float32)          { f.settings.ClickRadius = r }
func (f *fakeSelector) ClearSelection()                   { f.cleared++ }
func (f *fakeSelector) Selection() []selection.Selectable { return f.selected }
func (f *fakeSelector) State() selection.State            { return f.state }

func TestSelectionCommands(t *testing.T) {
	r := NewRegistry()
	sel := &fakeSelector{settings: selection.DefaultSettings()}
	var out []string
	var fps bool
	saved := 0
	RegisterSelection(r, sel, Toggles{
		FPS:  func(on bool) { fps = on },
		Save: func() error { saved++; return nil },
	}, func(s string) { out = append(out, s) })

	run := func(line string) error {
		args, ok := Parse(line)
		require.True(t, ok)
		return r.Execute(args)
	}

	require.NoError(t, run("cmd team -id 2"))
	assert.Equal(t, 2, sel.settings.Team)

	require.NoError(t, run("cmd radius -r 0.5"))
	assert.Equal(t, float32(0.5), sel.settings.ClickRadius)
	assert.ErrorContains(t, run("cmd radius -r -1"), "must not be negative")

	require.NoError(t, run("cmd clear"))
	assert.Equal(t, 1, sel.cleared)
	sel.state = selection.StateDragPending
	assert.Error(t, run("cmd clear"))
	assert.Equal(t, 1, sel.cleared)
	sel.state = selection.StateIdle

	require.NoError(t, run("cmd fps"))
	assert.True(t, fps)
	require.NoError(t, run("cmd save"))
	assert.Equal(t, 1, saved)

	require.NoError(t, run("cmd status"))
	assert.Equal(t, "team 2, click radius 0.5, selected 0, state idle", out[len(out)-1])

	assert.True(t, errors.Is(run("cmd grid"), ErrUnknownCommand), "nil toggles are not registered")

	require.NoError(t, run("cmd help"))
	assert.Contains(t, out[len(out)-1], "team -id N")
}
