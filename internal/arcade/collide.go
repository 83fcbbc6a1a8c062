package arcade

import "github.com/vovakirdan/arcade-physics/internal/tilemap"

// collideRun carries the callbacks and the contact count of a single collide
// or overlap query.
type collideRun struct {
	w           *World
	collide     CollideFunc
	process     ProcessFunc
	overlapOnly bool
	total       int
}

// collideObjects tests every member of a against every member of b. An
// absent b with a group a collides the group with itself.
func (w *World) collideObjects(a, b Target, collide CollideFunc, process ProcessFunc, overlapOnly bool) bool {
	r := &collideRun{w: w, collide: collide, process: process, overlapOnly: overlapOnly}

	left := a.flatten()
	if b.IsZero() {
		for _, item := range left {
			r.handle(item, Target{})
		}
		return r.total > 0
	}

	right := b.flatten()
	for _, x := range left {
		for _, y := range right {
			r.handle(x, y)
		}
	}
	return r.total > 0
}

// handle dispatches one pair of non-list targets.
func (r *collideRun) handle(a, b Target) {
	if b.IsZero() && a.kind == targetGroup {
		r.collideGroupVsGroup(a.group, a.group)
		return
	}
	if a.IsZero() || b.IsZero() {
		return
	}

	switch a.kind {
	case targetObject:
		switch b.kind {
		case targetObject:
			r.collideSpriteVsSprite(a.obj, b.obj)
		case targetGroup:
			r.collideSpriteVsGroup(a.obj, b.group)
		case targetLayer:
			r.collideSpriteVsTilemapLayer(a.obj, b.layer)
		}
	case targetGroup:
		switch b.kind {
		case targetObject:
			r.collideSpriteVsGroup(b.obj, a.group)
		case targetGroup:
			r.collideGroupVsGroup(a.group, b.group)
		case targetLayer:
			r.collideGroupVsTilemapLayer(a.group, b.layer)
		}
	case targetLayer:
		switch b.kind {
		case targetObject:
			r.collideSpriteVsTilemapLayer(b.obj, a.layer)
		case targetGroup:
			r.collideGroupVsTilemapLayer(b.group, a.layer)
		}
	}
}

func (r *collideRun) collideSpriteVsSprite(s1, s2 GameObject) {
	b1, b2 := s1.Body(), s2.Body()
	if b1 == nil || b2 == nil {
		return
	}
	if r.w.separate(b1.state(), b2.state(), r.process, r.overlapOnly) {
		if r.collide != nil {
			r.collide(Pair{A: s1, B: s2})
		}
		r.total++
	}
}

func (r *collideRun) collideSpriteVsGroup(sprite GameObject, g *Group) {
	body := sprite.Body()
	if g.Len() == 0 || body == nil || !body.state().Enable {
		return
	}
	a := body.state()

	for _, c := range r.candidates(a, g) {
		b := c.state()
		if a == b || !b.Enable || b.CheckCollision.None || !g.Contains(b.gameObject) {
			continue
		}
		if r.w.separate(a, b, r.process, r.overlapOnly) {
			if r.collide != nil {
				r.collide(Pair{A: a.gameObject, B: b.gameObject})
			}
			r.total++
		}
	}
}

// candidates returns the bodies of g that may touch a. Static groups and
// tree-enabled worlds use the spatial indexes; otherwise every member is
// returned.
func (r *collideRun) candidates(a *bodyState, g *Group) []Collidable {
	var out []Collidable
	switch {
	case g.IsStatic():
		for _, s := range r.w.staticTree.Search(treeBounds(a.self)) {
			out = append(out, s)
		}
	case r.w.UseTree:
		for _, b := range r.w.tree.Search(treeBounds(a.self)) {
			out = append(out, b)
		}
	default:
		for _, child := range g.Children() {
			if c := child.Body(); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (r *collideRun) collideGroupVsGroup(g1, g2 *Group) {
	if g1.Len() == 0 || g2.Len() == 0 {
		return
	}
	for _, child := range g1.Children() {
		r.collideSpriteVsGroup(child, g2)
	}
}

func (r *collideRun) collideGroupVsTilemapLayer(g *Group, layer *tilemap.Layer) {
	for _, child := range g.Children() {
		r.collideSpriteVsTilemapLayer(child, layer)
	}
}
