package arcade

import (
	"reflect"

	"github.com/vovakirdan/arcade-physics/internal/tilemap"
)

type targetKind int

const (
	targetNone targetKind = iota
	targetObject
	targetGroup
	targetLayer
	targetList
)

// Target is one side of a collide or overlap query: a single game object, a
// group, a tilemap layer, or a list of those. The zero Target is absent.
type Target struct {
	kind  targetKind
	obj   GameObject
	group *Group
	layer *tilemap.Layer
	list  []Target
}

// Obj wraps a single game object. A nil object, including a nil pointer
// stored in the interface, yields the zero Target.
func Obj(o GameObject) Target {
	if isNil(o) {
		return Target{}
	}
	return Target{kind: targetObject, obj: o}
}

// isNil reports whether o is nil or holds a nil pointer.
func isNil(o GameObject) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// GroupTarget wraps a group.
func GroupTarget(g *Group) Target {
	if g == nil {
		return Target{}
	}
	return Target{kind: targetGroup, group: g}
}

// LayerTarget wraps a tilemap layer.
func LayerTarget(l *tilemap.Layer) Target {
	if l == nil {
		return Target{}
	}
	return Target{kind: targetLayer, layer: l}
}

// List combines several targets. Nested lists are flattened when the query
// runs.
func List(targets ...Target) Target {
	return Target{kind: targetList, list: targets}
}

// Objects wraps each game object and combines them into a list.
func Objects(objs ...GameObject) Target {
	list := make([]Target, 0, len(objs))
	for _, o := range objs {
		list = append(list, Obj(o))
	}
	return List(list...)
}

// IsZero reports whether the target is absent.
func (t Target) IsZero() bool {
	return t.kind == targetNone
}

// flatten returns the non-list members of t in order, dropping absent ones.
func (t Target) flatten() []Target {
	switch t.kind {
	case targetNone:
		return nil
	case targetList:
		var out []Target
		for _, item := range t.list {
			out = append(out, item.flatten()...)
		}
		return out
	default:
		return []Target{t}
	}
}

// objects returns every game object the target refers to. Layers contribute
// nothing.
func (t Target) objects() []GameObject {
	var out []GameObject
	for _, item := range t.flatten() {
		switch item.kind {
		case targetObject:
			out = append(out, item.obj)
		case targetGroup:
			out = append(out, item.group.Children()...)
		}
	}
	return out
}

// Pair is passed to collide and process callbacks. For tile contacts B is
// nil and Tile is set.
type Pair struct {
	A    GameObject
	B    GameObject
	Tile *tilemap.Tile
}

// CollideFunc is called for every separated or overlapping pair.
type CollideFunc func(p Pair)

// ProcessFunc vetoes a candidate pair before separation by returning false.
type ProcessFunc func(p Pair) bool

// CollisionEvent is the payload of EventCollide and EventOverlap.
type CollisionEvent struct {
	A, B         GameObject
	BodyA, BodyB Collidable
	Tile         *tilemap.Tile
}

// WorldBoundsEvent is the payload of EventWorldBounds.
type WorldBoundsEvent struct {
	Body                  *Body
	Up, Down, Left, Right bool
}
