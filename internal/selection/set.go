package selection

import "slices"

// Set is a duplicate-free collection of selectables that iterates in insertion order.
// A nil *Set behaves as an empty set for reads.
type Set struct {
	items []Selectable
	index map[Selectable]int
}

// NewSet returns a set holding items, duplicates dropped.
func NewSet(items ...Selectable) *Set {
	s := &Set{index: make(map[Selectable]int, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts x and reports whether it was not already present. Nil entries are ignored.
func (s *Set) Add(x Selectable) bool {
	if x == nil {
		return false
	}
	if s.index == nil {
		s.index = make(map[Selectable]int)
	}
	if _, ok := s.index[x]; ok {
		return false
	}
	s.index[x] = len(s.items)
	s.items = append(s.items, x)
	return true
}

// Remove deletes x and reports whether it was present.
func (s *Set) Remove(x Selectable) bool {
	i, ok := s.index[x]
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, x)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *Set) Contains(x Selectable) bool {
	if s == nil || x == nil {
		return false
	}
	_, ok := s.index[x]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the members in insertion order.
func (s *Set) Items() []Selectable {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	if s == nil {
		return NewSet()
	}
	return NewSet(s.items...)
}

// Clear empties the set, keeping its storage.
func (s *Set) Clear() {
	s.items = s.items[:0]
	clear(s.index)
}
