// Package structs holds the small ordered containers the physics world is
// built on. Iteration order is always insertion order so that a simulation
// replays identically from the same inputs.
package structs

// Set is an insertion-ordered set.
type Set[T comparable] struct {
	items []T
	index map[T]int
}

// NewSet creates a set with the given initial members.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{index: make(map[T]int)}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item. Returns false if it was already present.
func (s *Set[T]) Add(item T) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = len(s.items)
	s.items = append(s.items, item)
	return true
}

// Delete removes item, keeping the order of the remaining members.
func (s *Set[T]) Delete(item T) bool {
	i, ok := s.index[item]
	if !ok {
		return false
	}
	delete(s.index, item)
	copy(s.items[i:], s.items[i+1:])
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Contains reports whether item is a member.
func (s *Set[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Clear removes every member.
func (s *Set[T]) Clear() {
	s.items = nil
	s.index = make(map[T]int)
}

// Items returns the members in insertion order. The slice is shared with
// the set and must not be modified; use Snapshot when the set may change
// while iterating.
func (s *Set[T]) Items() []T {
	return s.items
}

// Snapshot returns a copy of the members in insertion order.
func (s *Set[T]) Snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Each calls fn for every member until fn returns false. Iterates a copy,
// so fn may add or delete members.
func (s *Set[T]) Each(fn func(T) bool) {
	for _, item := range s.Snapshot() {
		if !fn(item) {
			return
		}
	}
}
