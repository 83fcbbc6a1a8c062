package structs

import "slices"

// ProcessQueue buffers additions and removals so that a list can be changed
// while it is being iterated. Changes become visible on the next Update.
type ProcessQueue[T comparable] struct {
	pending []T
	active  []T
	destroy []T
}

// NewProcessQueue creates an empty queue.
func NewProcessQueue[T comparable]() *ProcessQueue[T] {
	return &ProcessQueue[T]{}
}

// Add schedules item for activation on the next Update.
func (q *ProcessQueue[T]) Add(item T) T {
	q.pending = append(q.pending, item)
	return item
}

// Remove schedules item for removal on the next Update. Pending additions
// of item are dropped immediately.
func (q *ProcessQueue[T]) Remove(item T) T {
	q.pending = slices.DeleteFunc(q.pending, func(p T) bool { return p == item })
	if indexOf(q.active, item) >= 0 && indexOf(q.destroy, item) < 0 {
		q.destroy = append(q.destroy, item)
	}
	return item
}

// Update applies queued removals then queued additions and returns the
// active list.
func (q *ProcessQueue[T]) Update() []T {
	if len(q.pending) == 0 && len(q.destroy) == 0 {
		return q.active
	}

	for _, item := range q.destroy {
		if i := indexOf(q.active, item); i >= 0 {
			q.active = append(q.active[:i], q.active[i+1:]...)
		}
	}
	q.destroy = q.destroy[:0]

	for _, item := range q.pending {
		if indexOf(q.active, item) < 0 {
			q.active = append(q.active, item)
		}
	}
	q.pending = q.pending[:0]

	return q.active
}

// Active returns the current active list. Do not modify.
func (q *ProcessQueue[T]) Active() []T {
	return q.active
}

// Len returns the number of active items.
func (q *ProcessQueue[T]) Len() int {
	return len(q.active)
}

// Clear drops every active and queued item.
func (q *ProcessQueue[T]) Clear() {
	q.pending = nil
	q.active = nil
	q.destroy = nil
}

func indexOf[T comparable](items []T, item T) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return -1
}
