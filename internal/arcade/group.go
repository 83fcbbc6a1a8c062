package arcade

import "github.com/vovakirdan/arcade-physics/internal/structs"

// Group is an ordered collection of game objects that share a body type.
// A group created by the world enables a body on each member as it is added.
type Group struct {
	name    string
	kind    BodyType
	world   *World
	members *structs.Set[GameObject]
}

// NewGroup creates a group that is not bound to a world. Members keep
// whatever bodies they already have.
func NewGroup(name string, kind BodyType) *Group {
	return &Group{name: name, kind: kind, members: structs.NewSet[GameObject]()}
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Kind returns the body type of the group's members.
func (g *Group) Kind() BodyType { return g.kind }

// IsStatic reports whether the group holds static bodies.
func (g *Group) IsStatic() bool { return g.kind == Static }

// Add appends objects to the group. When the group belongs to a world, each
// member gets a body of the group's kind, replacing a body of the other kind.
func (g *Group) Add(objs ...GameObject) {
	for _, obj := range objs {
		if isNil(obj) || !g.members.Add(obj) || g.world == nil {
			continue
		}
		if body := obj.Body(); body != nil && body.Type() != g.kind {
			g.world.DisableBody(body)
			obj.SetBody(nil)
		}
		if obj.Body() == nil {
			g.world.EnableBody(obj, g.kind)
		}
	}
}

// Remove drops objects from the group. Their bodies are left untouched.
func (g *Group) Remove(objs ...GameObject) {
	for _, obj := range objs {
		g.members.Delete(obj)
	}
}

// Contains reports whether obj is a member.
func (g *Group) Contains(obj GameObject) bool {
	return g.members.Contains(obj)
}

// Children returns a copy of the members in insertion order.
func (g *Group) Children() []GameObject {
	return g.members.Snapshot()
}

// Len returns the number of members.
func (g *Group) Len() int {
	return g.members.Len()
}

// Clear removes every member.
func (g *Group) Clear() {
	g.members.Clear()
}
