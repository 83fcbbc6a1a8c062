package arcade

import (
	"testing"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/geom"
)

func TestComputeVelocity(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Body)
		delta    float64
		expected geom.Vec2
	}{
		{
			name:     "gravity",
			setup:    func(b *Body) {},
			delta:    0.5,
			expected: geom.V(0, 50),
		},
		{
			name: "gravity disabled",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Velocity = geom.V(3, 4)
			},
			delta:    0.5,
			expected: geom.V(3, 4),
		},
		{
			name: "acceleration wins over drag",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Acceleration = geom.V(10, 0)
				b.Drag = geom.V(1000, 0)
			},
			delta:    1,
			expected: geom.V(10, 0),
		},
		{
			name: "linear drag",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Velocity = geom.V(100, -100)
				b.Drag = geom.V(60, 60)
			},
			delta:    0.5,
			expected: geom.V(70, -70),
		},
		{
			name: "linear drag snaps to zero",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Velocity = geom.V(10, -5)
				b.Drag = geom.V(600, 600)
			},
			delta:    0.5,
			expected: geom.V(0, 0),
		},
		{
			name: "damping",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.UseDamping = true
				b.Velocity = geom.V(100, 0)
				b.Drag = geom.V(0.5, 0.5)
			},
			delta:    1,
			expected: geom.V(50, 0),
		},
		{
			name: "max velocity",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Velocity = geom.V(500, -500)
				b.MaxVelocity = geom.V(100, 200)
			},
			delta:    0.1,
			expected: geom.V(100, -200),
		},
		{
			name: "max speed",
			setup: func(b *Body) {
				b.AllowGravity = false
				b.Velocity = geom.V(300, 400)
				b.MaxSpeed = 100
			},
			delta:    0.1,
			expected: geom.V(60, 80),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPhysics(t, func(c *config.WorldConfig) {
				c.Gravity = geom.V(0, 100)
			})
			b := p.AddSprite("s", 0, 0, 8, 8).Dynamic()
			tc.setup(b)

			p.World.computeVelocity(b, tc.delta)

			if !almostEqual(b.Velocity.X, tc.expected.X) || !almostEqual(b.Velocity.Y, tc.expected.Y) {
				t.Errorf("Velocity = %v, expected %v", b.Velocity, tc.expected)
			}
			if !almostEqual(b.Speed, b.Velocity.Length()) {
				t.Errorf("Speed = %v, expected %v", b.Speed, b.Velocity.Length())
			}
		})
	}
}

func TestAngularVelocity(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("spinner", 0, 0, 8, 8)
	b := s.Dynamic()
	b.AngularVelocity = 90
	b.AngularDrag = 30

	stepN(p.World, 60)

	if !almostEqual(b.AngularVelocity, 60) {
		t.Errorf("AngularVelocity = %v, expected 60", b.AngularVelocity)
	}
	if s.Deg <= 60 || s.Deg >= 90 {
		t.Errorf("sprite angle = %v, expected between 60 and 90", s.Deg)
	}

	b.AngularVelocity = 5000
	b.AngularDrag = 0
	stepN(p.World, 1)
	if b.AngularVelocity != b.MaxAngular {
		t.Errorf("AngularVelocity = %v, expected clamp to %v", b.AngularVelocity, b.MaxAngular)
	}
}

func TestFacingAndDeltaMax(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 100, 100, 8, 8)
	b := s.Dynamic()
	b.SetVelocity(-600, 0)
	b.DeltaMax = geom.V(4, 4)

	stepN(p.World, 1)

	if b.Facing != FacingLeft {
		t.Errorf("Facing = %v, expected FacingLeft", b.Facing)
	}
	if !almostEqual(s.X, 96) {
		t.Errorf("x = %v, expected 96 after DeltaMax clamp", s.X)
	}
}
