package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiverGuardsTransitions(t *testing.T) {
	r := NewReceiver(2)
	var events []string
	r.Subscribe(ListenerFuncs{
		Select:     func() { events = append(events, "select") },
		Deselect:   func() { events = append(events, "deselect") },
		HoverEnter: func() { events = append(events, "enter") },
		HoverExit:  func() { events = append(events, "exit") },
	})

	r.Deselect()
	r.HoverExit()
	r.Select()
	r.Select()
	r.HoverEnter()
	r.HoverEnter()
	r.HoverExit()
	r.Deselect()

	assert.Equal(t, []string{"select", "enter", "exit", "deselect"}, events)
	assert.Equal(t, 2, r.Team())
	assert.False(t, r.Selected())
	assert.False(t, r.Hovering())
}

func TestReceiverSubscribeCancel(t *testing.T) {
	r := NewReceiver(1)
	var a, b int
	cancelA := r.Subscribe(ListenerFuncs{Select: func() { a++ }})
	r.Subscribe(ListenerFuncs{Select: func() { b++ }})

	r.Select()
	cancelA()
	cancelA()
	r.Deselect()
	r.Select()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestReceiverListenerMayUnsubscribeItself(t *testing.T) {
	r := NewReceiver(1)
	var calls int
	var cancel func()
	cancel = r.Subscribe(ListenerFuncs{Select: func() {
		calls++
		cancel()
	}})
	var other int
	r.Subscribe(ListenerFuncs{Select: func() { other++ }})

	r.Select()
	r.Deselect()
	r.Select()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestReceiverSetTeamKeepsSelection(t *testing.T) {
	r := NewReceiver(1)
	r.Select()
	r.SetTeam(3)
	assert.Equal(t, 3, r.Team())
	assert.True(t, r.Selected())
}

func TestSetOrderAndDedupe(t *testing.T) {
	m := members(3)
	s := NewSet(m[2], m[0], m[2], nil, m[1])
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []Selectable{m[2], m[0], m[1]}, s.Items())

	assert.True(t, s.Remove(m[0]))
	assert.False(t, s.Remove(m[0]))
	assert.Equal(t, []Selectable{m[2], m[1]}, s.Items())
	assert.True(t, s.Contains(m[1]))

	assert.True(t, s.Add(m[0]))
	assert.Equal(t, []Selectable{m[2], m[1], m[0]}, s.Items())
	assert.True(t, s.Remove(m[2]))
	assert.True(t, s.Remove(m[0]), "indices stay valid after removal")
	assert.Equal(t, []Selectable{m[1]}, s.Items())
}

func TestSetCloneIsIndependent(t *testing.T) {
	m := members(2)
	s := NewSet(m[0])
	c := s.Clone()
	c.Add(m[1])
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, c.Len())

	s.Clear()
	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(m[0]))
	assert.True(t, c.Contains(m[0]))
}

func TestNilSetReads(t *testing.T) {
	var s *Set
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Items())
	assert.False(t, s.Contains(NewReceiver(1)))
	assert.Zero(t, s.Clone().Len())
}
