package structs

import "testing"

func TestSetOrder(t *testing.T) {
	s := NewSet(3, 1, 2)
	if s.Add(1) {
		t.Error("Add() of existing member = true, expected false")
	}
	s.Add(5)
	s.Delete(1)

	expected := []int{3, 2, 5}
	items := s.Items()
	if len(items) != len(expected) {
		t.Fatalf("Items() = %v, expected %v", items, expected)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("Items()[%d] = %d, expected %d", i, items[i], expected[i])
		}
	}
	if !s.Contains(5) || s.Contains(1) {
		t.Error("Contains() does not reflect membership")
	}
	if s.Delete(42) {
		t.Error("Delete() of missing member = true, expected false")
	}
}

func TestSetEachAllowsMutation(t *testing.T) {
	s := NewSet("a", "b", "c")
	var seen []string
	s.Each(func(v string) bool {
		seen = append(seen, v)
		s.Delete(v)
		return true
	})
	if len(seen) != 3 {
		t.Errorf("Each() visited %d members, expected 3", len(seen))
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestProcessQueue(t *testing.T) {
	tests := []struct {
		name     string
		run      func(q *ProcessQueue[string])
		expected []string
	}{
		{
			name: "adds are deferred until update",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Add("b")
			},
			expected: []string{"a", "b"},
		},
		{
			name: "remove of pending item cancels it",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Add("b")
				q.Remove("a")
			},
			expected: []string{"b"},
		},
		{
			name: "remove of active item is deferred",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Add("b")
				q.Update()
				q.Remove("a")
				if len(q.Active()) != 2 {
					t.Errorf("Active() before update = %d items, expected 2", len(q.Active()))
				}
			},
			expected: []string{"b"},
		},
		{
			name: "remove of re-added active item drops both",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Add("b")
				q.Update()
				q.Add("a")
				q.Remove("a")
			},
			expected: []string{"b"},
		},
		{
			name: "remove drops every pending add",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Add("a")
				q.Add("b")
				q.Remove("a")
			},
			expected: []string{"b"},
		},
		{
			name: "duplicate add ignored",
			run: func(q *ProcessQueue[string]) {
				q.Add("a")
				q.Update()
				q.Add("a")
			},
			expected: []string{"a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := NewProcessQueue[string]()
			tc.run(q)
			active := q.Update()
			if len(active) != len(tc.expected) {
				t.Fatalf("Update() = %v, expected %v", active, tc.expected)
			}
			for i := range active {
				if active[i] != tc.expected[i] {
					t.Errorf("Update()[%d] = %q, expected %q", i, active[i], tc.expected[i])
				}
			}
		})
	}
}
