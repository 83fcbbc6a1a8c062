// Package events provides the synchronous publish/subscribe emitter used by
// the physics world and by game objects.
package events

import "sync"

// Topic names an event stream (for example "collide" or "worldbounds").
type Topic string

// Handler receives the payload of an emitted event.
type Handler func(payload any)

type listener struct {
	id      uint64
	handler Handler
	once    bool
}

// Emitter dispatches events to listeners in registration order.
// Dispatch is synchronous: Emit returns after every handler has run.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[Topic][]listener
	nextID    uint64
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[Topic][]listener)}
}

// On registers handler for topic and returns an id for Off.
func (e *Emitter) On(topic Topic, handler Handler) uint64 {
	return e.add(topic, handler, false)
}

// Once registers handler for a single delivery of topic.
func (e *Emitter) Once(topic Topic, handler Handler) uint64 {
	return e.add(topic, handler, true)
}

func (e *Emitter) add(topic Topic, handler Handler, once bool) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.listeners[topic] = append(e.listeners[topic], listener{id: e.nextID, handler: handler, once: once})
	return e.nextID
}

// Off removes the listener with the given id. Returns false if not found.
func (e *Emitter) Off(topic Topic, id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ls := e.listeners[topic]
	for i, l := range ls {
		if l.id == id {
			e.listeners[topic] = append(ls[:i:i], ls[i+1:]...)
			return true
		}
	}
	return false
}

// Emit delivers payload to every listener of topic. Handlers may register or
// remove listeners; such changes apply to the next Emit.
func (e *Emitter) Emit(topic Topic, payload any) bool {
	e.mu.Lock()
	ls := e.listeners[topic]
	if len(ls) == 0 {
		e.mu.Unlock()
		return false
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)

	// drop once-listeners before dispatch so re-entrant emits skip them
	kept := ls[:0:0]
	for _, l := range ls {
		if !l.once {
			kept = append(kept, l)
		}
	}
	e.listeners[topic] = kept
	e.mu.Unlock()

	for _, l := range snapshot {
		l.handler(payload)
	}
	return true
}

// ListenerCount returns the number of listeners for topic.
func (e *Emitter) ListenerCount(topic Topic) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[topic])
}

// RemoveAll drops every listener of the given topics, or of all topics when
// none are given.
func (e *Emitter) RemoveAll(topics ...Topic) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(topics) == 0 {
		e.listeners = make(map[Topic][]listener)
		return
	}
	for _, t := range topics {
		delete(e.listeners, t)
	}
}
