package arcade

import (
	"math"
	"testing"
	"time"
)

func TestMoveTo(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 0, 0, 8, 8)

	tests := []struct {
		name          string
		x, y, speed   float64
		maxTime       time.Duration
		expectedAngle float64
		expectedSpeed float64
	}{
		{"right at default speed", 100, 0, 0, 0, 0, DefaultSpeed},
		{"down at given speed", 0, 50, 200, 0, math.Pi / 2, 200},
		{"max time overrides speed", 30, 40, 10, 500 * time.Millisecond, math.Atan2(40, 30), 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			angle := p.MoveTo(s, tc.x, tc.y, tc.speed, tc.maxTime)
			if !almostEqual(angle, tc.expectedAngle) {
				t.Errorf("MoveTo() angle = %v, expected %v", angle, tc.expectedAngle)
			}
			if speed := s.Dynamic().Velocity.Length(); !almostEqual(speed, tc.expectedSpeed) {
				t.Errorf("speed = %v, expected %v", speed, tc.expectedSpeed)
			}
		})
	}
}

func TestAccelerateToObject(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 0, 0, 8, 8)
	target := NewSprite("target", 0, -10, 8, 8)

	angle := p.AccelerateToObject(s, target, 120, 50, 60)

	if !almostEqual(angle, -math.Pi/2) {
		t.Errorf("angle = %v, expected -pi/2", angle)
	}
	b := s.Dynamic()
	if !almostEqual(b.Acceleration.X, 0) || !almostEqual(b.Acceleration.Y, -120) {
		t.Errorf("Acceleration = %v, expected (0, -120)", b.Acceleration)
	}
	if b.MaxVelocity.X != 50 || b.MaxVelocity.Y != 60 {
		t.Errorf("MaxVelocity = %v, expected (50, 60)", b.MaxVelocity)
	}
}

func TestClosestAndFurthest(t *testing.T) {
	p := newTestPhysics(t, nil)
	source := p.AddSprite("source", 0, 0, 8, 8)
	near := p.AddSprite("near", 10, 0, 8, 8)
	p.AddSprite("mid", 50, 0, 8, 8)
	far := p.AddSprite("far", 0, 300, 8, 8)

	if got := p.Closest(source); got != near.Dynamic() {
		t.Errorf("Closest() = %v, expected near", got.GameObject())
	}
	if got := p.Furthest(source); got != far.Dynamic() {
		t.Errorf("Furthest() = %v, expected far", got.GameObject())
	}

	empty := newTestPhysics(t, nil)
	if empty.Closest(NewSprite("lonely", 0, 0, 1, 1)) != nil {
		t.Error("Closest() in an empty world should be nil")
	}
}

func TestVelocityFromAngle(t *testing.T) {
	p := newTestPhysics(t, nil)

	v := p.VelocityFromAngle(90, 100)
	if !almostEqual(v.X, 0) || !almostEqual(v.Y, 100) {
		t.Errorf("VelocityFromAngle(90, 100) = %v, expected (0, 100)", v)
	}

	v = p.VelocityFromRotation(math.Pi, 0)
	if !almostEqual(v.X, -DefaultSpeed) || !almostEqual(v.Y, 0) {
		t.Errorf("VelocityFromRotation(pi, 0) = %v, expected (-60, 0)", v)
	}
}

func TestStaticGroupMembersAreStatic(t *testing.T) {
	p := newTestPhysics(t, nil)
	g := p.AddStaticGroup("walls", NewSprite("w1", 0, 0, 8, 8))
	late := NewSprite("w2", 20, 0, 8, 8)
	g.Add(late)

	if !g.IsStatic() || g.Len() != 2 {
		t.Fatalf("group static = %v, len = %d, expected static with 2 members", g.IsStatic(), g.Len())
	}
	if late.Static() == nil {
		t.Error("member added later should get a static body")
	}
	if len(p.World.StaticBodies()) != 2 {
		t.Errorf("StaticBodies() = %d, expected 2", len(p.World.StaticBodies()))
	}

	g.Remove(late)
	if g.Contains(late) || late.Static() == nil {
		t.Error("Remove() should drop membership but keep the body")
	}
}
