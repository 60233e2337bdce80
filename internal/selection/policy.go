package selection

import "rts-select/internal/input"

// Modifier decides how the candidates of a gesture combine with the current selection.
type Modifier uint8

const (
	// None replaces the selection with the candidates.
	None Modifier = iota
	// Additive adds candidates to the selection.
	Additive
	// Subtractive removes candidates from the selection.
	Subtractive
)

func (m Modifier) String() string {
	switch m {
	case Additive:
		return "additive"
	case Subtractive:
		return "subtractive"
	default:
		return "none"
	}
}

// ModifierOf reads the modifier held in s. Subtractive wins when both keys are down.
func ModifierOf(s input.Snapshot) Modifier {
	switch {
	case s.Subtractive:
		return Subtractive
	case s.Additive:
		return Additive
	default:
		return None
	}
}

// Plan is the outcome of Reconcile: the next selection and the capability calls needed to reach it.
// Deselect calls are applied before Select calls.
type Plan struct {
	Next     *Set
	Select   []Selectable
	Deselect []Selectable
}

// Reconcile combines the candidates of one gesture with the current selection. It does not touch
// the entities; the caller applies the returned plan. Neither input set is modified.
//
//   - None: the next selection is exactly the candidates. Members not re-selected are deselected,
//     candidates not yet selected are selected.
//   - Additive: candidates not yet selected are added and selected.
//   - Subtractive: candidates that are selected are removed and deselected; others are ignored.
func Reconcile(mod Modifier, candidates, current *Set) Plan {
	var plan Plan
	switch mod {
	case Additive:
		plan.Next = current.Clone()
		for _, c := range candidates.Items() {
			if plan.Next.Add(c) {
				plan.Select = append(plan.Select, c)
			}
		}
	case Subtractive:
		plan.Next = current.Clone()
		for _, c := range candidates.Items() {
			if plan.Next.Remove(c) {
				plan.Deselect = append(plan.Deselect, c)
			}
		}
	default:
		plan.Next = NewSet()
		for _, c := range candidates.Items() {
			if plan.Next.Add(c) && !current.Contains(c) {
				plan.Select = append(plan.Select, c)
			}
		}
		for _, s := range current.Items() {
			if !plan.Next.Contains(s) {
				plan.Deselect = append(plan.Deselect, s)
			}
		}
	}
	return plan
}
