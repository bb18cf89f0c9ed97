package behavior

import "slices"

// Set holds at most one behavior per Kind and iterates them in
// registration order. The zero value is ready to use.
type Set struct {
	slots map[Kind]Behavior
	order []Kind
}

// NewSet builds a set from list; later entries replace earlier ones of
// the same kind.
func NewSet(list ...Behavior) *Set {
	s := &Set{}
	s.Replace(list)
	return s
}

// Put inserts b, replacing any behavior of the same kind. A replaced
// behavior's slot moves to the end of the iteration order.
func (s *Set) Put(b Behavior) {
	if b == nil {
		return
	}
	if s.slots == nil {
		s.slots = make(map[Kind]Behavior)
	}
	k := b.Kind()
	if _, ok := s.slots[k]; ok {
		s.order = slices.DeleteFunc(s.order, func(o Kind) bool { return o == k })
	}
	s.slots[k] = b
	s.order = append(s.order, k)
}

// Remove drops every behavior whose kind is listed.
func (s *Set) Remove(kinds ...Kind) {
	for _, k := range kinds {
		if _, ok := s.slots[k]; !ok {
			continue
		}
		delete(s.slots, k)
		s.order = slices.DeleteFunc(s.order, func(o Kind) bool { return o == k })
	}
}

// Replace discards the current contents and inserts list in order.
func (s *Set) Replace(list []Behavior) {
	s.slots = make(map[Kind]Behavior, len(list))
	s.order = s.order[:0]
	for _, b := range list {
		s.Put(b)
	}
}

func (s *Set) Get(k Kind) (Behavior, bool) {
	b, ok := s.slots[k]
	return b, ok
}

func (s *Set) Len() int { return len(s.order) }

// Each calls fn for every behavior in registration order.
func (s *Set) Each(fn func(Behavior)) {
	for _, k := range s.order {
		fn(s.slots[k])
	}
}

// List returns the behaviors in registration order.
func (s *Set) List() []Behavior {
	out := make([]Behavior, 0, len(s.order))
	s.Each(func(b Behavior) { out = append(out, b) })
	return out
}

// UpdateAll advances every behavior by dt.
func (s *Set) UpdateAll(dt float64) {
	s.Each(func(b Behavior) { b.Update(dt) })
}

// ContributeAll adds every behavior's current value into acc, once each.
func (s *Set) ContributeAll(acc *Accumulator) {
	s.Each(func(b Behavior) { b.Contribute(acc) })
}
