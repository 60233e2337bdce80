package selection

import "slices"

// Selectable is the capability an entity implements to take part in selection and hover.
// State only changes through the four operations, so listeners always see a matching event.
// Implementations must not call back into the Selector from those operations.
type Selectable interface {
	Selected() bool
	Hovering() bool
	Team() int
	Select()
	Deselect()
	HoverEnter()
	HoverExit()
}

// Listener receives state changes of a Receiver, typically to drive visual feedback.
type Listener interface {
	OnSelect()
	OnDeselect()
	OnHoverEnter()
	OnHoverExit()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Select     func()
	Deselect   func()
	HoverEnter func()
	HoverExit  func()
}

func (f ListenerFuncs) OnSelect() {
	if f.Select != nil {
		f.Select()
	}
}

func (f ListenerFuncs) OnDeselect() {
	if f.Deselect != nil {
		f.Deselect()
	}
}

func (f ListenerFuncs) OnHoverEnter() {
	if f.HoverEnter != nil {
		f.HoverEnter()
	}
}

func (f ListenerFuncs) OnHoverExit() {
	if f.HoverExit != nil {
		f.HoverExit()
	}
}

// Receiver is the stock Selectable implementation. Embed it in an entity and register listeners
// for feedback. Transitions that would not change state are dropped without notifying.
type Receiver struct {
	team      int
	selected  bool
	hovering  bool
	listeners []*subscription
}

type subscription struct {
	l Listener
}

// NewReceiver returns a receiver on the given team.
func NewReceiver(team int) *Receiver {
	return &Receiver{team: team}
}

func (r *Receiver) Team() int      { return r.team }
func (r *Receiver) Selected() bool { return r.selected }
func (r *Receiver) Hovering() bool { return r.hovering }

// SetTeam moves the receiver to another team. Current selection is not affected.
func (r *Receiver) SetTeam(team int) {
	r.team = team
}

func (r *Receiver) Select() {
	if r.selected {
		return
	}
	r.selected = true
	r.notify(Listener.OnSelect)
}

func (r *Receiver) Deselect() {
	if !r.selected {
		return
	}
	r.selected = false
	r.notify(Listener.OnDeselect)
}

func (r *Receiver) HoverEnter() {
	if r.hovering {
		return
	}
	r.hovering = true
	r.notify(Listener.OnHoverEnter)
}

func (r *Receiver) HoverExit() {
	if !r.hovering {
		return
	}
	r.hovering = false
	r.notify(Listener.OnHoverExit)
}

// Subscribe registers l and returns a function that removes it. Calling cancel more than once is safe.
func (r *Receiver) Subscribe(l Listener) (cancel func()) {
	sub := &subscription{l: l}
	r.listeners = append(r.listeners, sub)
	return func() {
		if i := slices.Index(r.listeners, sub); i >= 0 {
			r.listeners = slices.Delete(r.listeners, i, i+1)
		}
	}
}

func (r *Receiver) notify(event func(Listener)) {
	// Listeners may unsubscribe while being notified.
	for _, sub := range slices.Clone(r.listeners) {
		event(sub.l)
	}
}
