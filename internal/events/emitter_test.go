package events

import "testing"

func TestEmitOrder(t *testing.T) {
	e := NewEmitter()
	var got []int
	e.On("hit", func(any) { got = append(got, 1) })
	e.On("hit", func(any) { got = append(got, 2) })
	e.On("other", func(any) { got = append(got, 99) })

	if !e.Emit("hit", nil) {
		t.Error("Emit() = false, expected true")
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("handlers ran as %v, expected [1 2]", got)
	}
	if e.Emit("nobody", nil) {
		t.Error("Emit() with no listeners = true, expected false")
	}
}

func TestOnceAndOff(t *testing.T) {
	e := NewEmitter()
	count := 0
	e.Once("tick", func(any) { count++ })
	id := e.On("tick", func(any) { count += 10 })

	e.Emit("tick", nil)
	e.Emit("tick", nil)
	if count != 21 {
		t.Errorf("count = %d, expected 21", count)
	}

	if !e.Off("tick", id) {
		t.Error("Off() = false, expected true")
	}
	if e.Off("tick", id) {
		t.Error("Off() twice = true, expected false")
	}
	if e.ListenerCount("tick") != 0 {
		t.Errorf("ListenerCount() = %d, expected 0", e.ListenerCount("tick"))
	}
}

func TestPayloadAndReentrantRegistration(t *testing.T) {
	e := NewEmitter()
	var payloads []any
	e.On("x", func(p any) {
		payloads = append(payloads, p)
		e.On("x", func(any) { payloads = append(payloads, "late") })
	})

	e.Emit("x", 7)
	if len(payloads) != 1 || payloads[0] != 7 {
		t.Errorf("payloads = %v, expected [7]", payloads)
	}

	e.RemoveAll()
	if e.ListenerCount("x") != 0 {
		t.Errorf("ListenerCount() after RemoveAll = %d, expected 0", e.ListenerCount("x"))
	}
}
