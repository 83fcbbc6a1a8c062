package arcade

import (
	"testing"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/geom"
)

func rectState(x, y, w, h float64) *bodyState {
	b := &bodyState{Position: geom.V(x, y)}
	b.resize(w, h)
	return b
}

func circleState(x, y, r float64) *bodyState {
	b := rectState(x, y, r*2, r*2)
	b.IsCircle = true
	b.Radius = r
	return b
}

func TestIntersects(t *testing.T) {
	shared := rectState(0, 0, 10, 10)

	tests := []struct {
		name     string
		a, b     *bodyState
		expected bool
	}{
		{"rects overlapping", rectState(0, 0, 10, 10), rectState(5, 5, 10, 10), true},
		{"rects sharing an edge", rectState(0, 0, 10, 10), rectState(10, 0, 10, 10), false},
		{"circles touching", circleState(0, 0, 5), circleState(10, 0, 5), true},
		{"circles apart", circleState(0, 0, 5), circleState(11, 0, 5), false},
		{"circle beside rect corner", circleState(0, 0, 5), rectState(9, 9, 10, 10), false},
		{"circle over rect side", circleState(0, 0, 5), rectState(8, 0, 10, 10), true},
		{"rect over circle", rectState(8, 0, 10, 10), circleState(0, 0, 5), true},
		{"same body", shared, shared, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := intersects(tc.a, tc.b); got != tc.expected {
				t.Errorf("intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSeparateXExchangesVelocity(t *testing.T) {
	p := newTestPhysics(t, nil)
	a := p.AddSprite("a", 0, 0, 32, 32)
	b := p.AddSprite("b", 40, 0, 32, 32)
	a.Dynamic().SetVelocity(100, 0)
	b.Dynamic().SetVelocity(-100, 0)
	a.Dynamic().SetBounce(1, 1)
	b.Dynamic().SetBounce(1, 1)

	hits := 0
	p.World.AddCollider(Obj(a), Obj(b), func(Pair) { hits++ }, nil)
	stepN(p.World, 10)

	if hits == 0 {
		t.Fatal("bodies never collided")
	}
	if v := a.Dynamic().Velocity.X; v != -100 {
		t.Errorf("a.Velocity.X = %v, expected -100", v)
	}
	if v := b.Dynamic().Velocity.X; v != 100 {
		t.Errorf("b.Velocity.X = %v, expected 100", v)
	}
	if a.X+a.Width > b.X+epsilon {
		t.Errorf("bodies overlap: a.right = %v, b.x = %v", a.X+a.Width, b.X)
	}
}

func TestImmovableBodyNeverMoves(t *testing.T) {
	p := newTestPhysics(t, func(c *config.WorldConfig) {
		c.Gravity = geom.V(0, 600)
	})
	box := p.AddSprite("box", 10, 0, 16, 16)
	platform := p.AddSprite("platform", 0, 100, 100, 16)
	pb := platform.Dynamic()
	pb.Immovable = true
	pb.AllowGravity = false

	p.World.AddCollider(Obj(box), Obj(platform), nil, nil)
	stepN(p.World, 120)

	if platform.Y != 100 || pb.Velocity != (geom.Vec2{}) {
		t.Errorf("platform moved: y = %v, velocity = %v", platform.Y, pb.Velocity)
	}
	if !almostEqual(box.Y, 84) {
		t.Errorf("box.Y = %v, expected 84", box.Y)
	}
	if !box.Dynamic().OnFloor() {
		t.Error("box OnFloor() = false, expected true")
	}
}

func TestContactEvents(t *testing.T) {
	p := newTestPhysics(t, nil)
	a := p.AddSprite("a", 0, 0, 16, 16)
	b := p.AddSprite("b", 8, 0, 16, 16)

	var collides, overlaps int
	p.World.Events().On(EventCollide, func(any) { collides++ })
	p.World.Events().On(EventOverlap, func(any) { overlaps++ })

	a.Dynamic().OnCollide = true
	if !p.Overlap(Obj(a), Obj(b), nil, nil) {
		t.Fatal("Overlap() = false, expected true")
	}
	if collides != 0 || overlaps != 0 {
		t.Errorf("events = %d collide / %d overlap, expected none", collides, overlaps)
	}

	a.Dynamic().OnOverlap = true
	p.Overlap(Obj(a), Obj(b), nil, nil)
	if collides != 0 || overlaps != 1 {
		t.Errorf("events = %d collide / %d overlap, expected 0 / 1", collides, overlaps)
	}

	p.Collide(Obj(a), Obj(b), nil, nil)
	if collides != 1 {
		t.Errorf("collide events = %d, expected 1", collides)
	}
}

func TestProcessVeto(t *testing.T) {
	p := newTestPhysics(t, nil)
	a := p.AddSprite("a", 0, 0, 16, 16)
	b := p.AddSprite("b", 8, 0, 16, 16)

	called := false
	got := p.Collide(Obj(a), Obj(b),
		func(Pair) { called = true },
		func(pair Pair) bool { return pair.A != a },
	)
	if got || called {
		t.Errorf("Collide() = %v, callback called = %v, expected neither", got, called)
	}
}

func TestCircleHeadOnSwap(t *testing.T) {
	p := newTestPhysics(t, nil)
	a := p.AddSprite("a", 0, 0, 20, 20)
	b := p.AddSprite("b", 50, 0, 20, 20)
	for _, s := range []*Sprite{a, b} {
		s.Dynamic().SetCircle(10, 0, 0)
		s.Dynamic().SetBounce(1, 1)
	}
	a.Dynamic().SetVelocity(120, 0)
	b.Dynamic().SetVelocity(-120, 0)

	p.World.AddCollider(Obj(a), Obj(b), nil, nil)
	stepN(p.World, 20)

	if v := a.Dynamic().Velocity; v.X != -120 || v.Y != 0 {
		t.Errorf("a.Velocity = %v, expected (-120, 0)", v)
	}
	if v := b.Dynamic().Velocity; v.X != 120 || v.Y != 0 {
		t.Errorf("b.Velocity = %v, expected (120, 0)", v)
	}
}

func TestSetCircleNonPositiveRevertsToRect(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 0, 0, 20, 20)
	b := s.Dynamic()

	b.SetCircle(8, 2, 2)
	if !b.IsCircle || b.Width != 16 || b.HalfWidth != 8 {
		t.Errorf("SetCircle(8) = circle %v width %v, expected circle of width 16", b.IsCircle, b.Width)
	}
	b.SetCircle(0, 0, 0)
	if b.IsCircle {
		t.Error("SetCircle(0) should revert to a rectangle")
	}
	if err := b.SetSize(-1, 4); err == nil {
		t.Error("SetSize() with negative width should fail")
	}
}
