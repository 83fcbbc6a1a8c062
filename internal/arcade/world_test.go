package arcade

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/geom"
)

const epsilon = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// newTestPhysics builds a facade over the default world config adjusted by
// mutate.
func newTestPhysics(t *testing.T, mutate func(c *config.WorldConfig)) *Physics {
	t.Helper()
	cfg := config.DefaultWorldConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := NewPhysics(cfg)
	if err != nil {
		t.Fatalf("NewPhysics() error: %v", err)
	}
	return p
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(w.FrameTime())
	}
}

func TestBoxRestsOnLedge(t *testing.T) {
	p := newTestPhysics(t, func(c *config.WorldConfig) {
		c.Gravity = geom.V(0, 980)
		c.Bounds = geom.NewRect(0, 0, 320, 240)
	})

	box := p.AddSprite("box", 0, 0, 32, 32)
	ledge := p.AddStaticSprite("ledge", 0, 100, 320, 32)
	p.World.AddCollider(Obj(box), Obj(ledge), nil, nil)

	for i := 0; i < 120; i++ {
		p.Update(time.Duration(i)*time.Second/60, time.Second/60)
	}

	if !almostEqual(box.Y, 68) {
		t.Errorf("box.Y = %v, expected 68", box.Y)
	}
	body := box.Dynamic()
	if body.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %v, expected 0", body.Velocity.Y)
	}
	if !body.OnFloor() {
		t.Error("OnFloor() = false, expected true")
	}
	if ledge.Y != 100 || ledge.Static().Y() != 100 {
		t.Errorf("static ledge moved to %v", ledge.Y)
	}
}

func TestUpdateStepCount(t *testing.T) {
	tests := []struct {
		name     string
		deltas   []time.Duration
		expected int
	}{
		{"just under one step", []time.Duration{16600 * time.Microsecond}, 0},
		{"two halves under one step", []time.Duration{8300 * time.Microsecond, 8300 * time.Microsecond}, 0},
		{"exactly one step", []time.Duration{time.Second / 60}, 1},
		{"catch up", []time.Duration{time.Second / 10}, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPhysics(t, nil)
			p.AddSprite("s", 10, 10, 8, 8)

			total := 0
			for _, d := range tc.deltas {
				p.World.Update(0, d)
				total += p.World.StepsLastFrame()
			}
			if total != tc.expected {
				t.Errorf("steps = %d, expected %d", total, tc.expected)
			}
		})
	}
}

func TestUpdateChunkingInvariance(t *testing.T) {
	run := func(chunk time.Duration, frames int) (*Sprite, int) {
		p := newTestPhysics(t, func(c *config.WorldConfig) {
			c.Gravity = geom.V(0, 300)
		})
		s := p.AddSprite("s", 10, 10, 8, 8)
		s.Dynamic().SetVelocity(50, 0)

		steps := 0
		for i := 0; i < frames; i++ {
			p.Update(0, chunk)
			steps += p.World.StepsLastFrame()
		}
		return s, steps
	}

	a, stepsA := run(time.Second/60, 60)
	b, stepsB := run(time.Second/120, 120)

	if stepsA != stepsB {
		t.Fatalf("steps = %d and %d, expected equal", stepsA, stepsB)
	}
	if a.X != b.X || a.Y != b.Y {
		t.Errorf("positions differ: (%v, %v) vs (%v, %v)", a.X, a.Y, b.X, b.Y)
	}
}

func TestUpdateSkippedWithoutBodiesOrWhilePaused(t *testing.T) {
	p := newTestPhysics(t, nil)
	p.World.Update(0, time.Second)
	if p.World.StepsLastFrame() != 0 {
		t.Errorf("StepsLastFrame() = %d without bodies, expected 0", p.World.StepsLastFrame())
	}

	s := p.AddSprite("s", 0, 0, 4, 4)
	s.Dynamic().SetVelocity(60, 0)

	paused := 0
	p.World.Events().On(EventPause, func(any) { paused++ })
	p.Pause()
	p.Update(0, time.Second)
	if s.X != 0 {
		t.Errorf("sprite moved while paused: x = %v", s.X)
	}
	if paused != 1 {
		t.Errorf("pause events = %d, expected 1", paused)
	}

	p.Resume()
	p.Update(0, time.Second/60)
	if !almostEqual(s.X, 1) {
		t.Errorf("x = %v after resume, expected 1", s.X)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []geom.Vec2 {
		p := newTestPhysics(t, func(c *config.WorldConfig) {
			c.Gravity = geom.V(0, 400)
			c.Bounds = geom.NewRect(0, 0, 200, 200)
		})
		g := p.AddGroup("boxes")
		for i := 0; i < 6; i++ {
			s := NewSprite("b", float64(10+i*25), float64(i*7), 16, 16)
			g.Add(s)
			b := s.Dynamic()
			b.CollideWorldBounds = true
			b.SetBounce(0.5, 0.5)
			b.SetVelocity(float64(40*(i%3)-40), 0)
		}
		p.World.AddCollider(GroupTarget(g), Target{}, nil, nil)
		stepN(p.World, 240)

		var out []geom.Vec2
		for _, b := range p.World.Bodies() {
			out = append(out, b.Position, b.Velocity)
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestWorldValidation(t *testing.T) {
	cfg := config.DefaultWorldConfig()
	cfg.FPS = 0
	if _, err := NewWorld(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewWorld() error = %v, expected ErrInvalid", err)
	}

	p := newTestPhysics(t, nil)
	if err := p.World.SetFPS(-1); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("SetFPS(-1) error = %v, expected ErrInvalidFPS", err)
	}
	if err := p.World.SetFPS(30); err != nil {
		t.Fatalf("SetFPS(30) error: %v", err)
	}
	if !almostEqual(p.World.FrameTime(), 1.0/30) {
		t.Errorf("FrameTime() = %v, expected 1/30", p.World.FrameTime())
	}
}

func TestWorldBounds(t *testing.T) {
	p := newTestPhysics(t, func(c *config.WorldConfig) {
		c.Bounds = geom.NewRect(0, 0, 100, 100)
	})
	s := p.AddSprite("s", 90, 50, 8, 8)
	b := s.Dynamic()
	b.CollideWorldBounds = true
	b.OnWorldBounds = true
	b.SetVelocity(600, 0)
	b.SetBounce(1, 1)

	var got []WorldBoundsEvent
	p.World.Events().On(EventWorldBounds, func(payload any) {
		got = append(got, payload.(WorldBoundsEvent))
	})

	stepN(p.World, 1)

	if !almostEqual(s.X, 92) {
		t.Errorf("x = %v, expected 92", s.X)
	}
	if b.Velocity.X != -600 {
		t.Errorf("Velocity.X = %v, expected -600", b.Velocity.X)
	}
	if len(got) != 1 || !got[0].Right || got[0].Left {
		t.Errorf("worldbounds events = %+v, expected one right hit", got)
	}
}

func TestDestroyReleasesBody(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 0, 0, 8, 8)
	st := p.AddStaticSprite("wall", 20, 0, 8, 8)

	s.Dynamic().Destroy()
	st.Static().Destroy()
	if len(p.World.Bodies()) != 1 {
		t.Error("body removed before PostUpdate")
	}

	p.World.PostUpdate()

	if len(p.World.Bodies()) != 0 || len(p.World.StaticBodies()) != 0 {
		t.Errorf("bodies = %d/%d after PostUpdate, expected none",
			len(p.World.Bodies()), len(p.World.StaticBodies()))
	}
	if s.Body() != nil || st.Body() != nil {
		t.Error("game objects still reference destroyed bodies")
	}
	if got := p.World.SearchStatic(geom.NewRect(0, 0, 100, 100)); len(got) != 0 {
		t.Errorf("SearchStatic() = %d, expected 0", len(got))
	}
}

func TestDisableAndEnable(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddSprite("s", 0, 0, 8, 8)
	body := s.Dynamic()

	p.World.Disable(Obj(s))
	if body.Enable || len(p.World.Bodies()) != 0 {
		t.Error("Disable() left the body active")
	}

	p.World.Enable(Obj(s), Dynamic)
	if !body.Enable || len(p.World.Bodies()) != 1 {
		t.Error("Enable() did not restore the body")
	}
	if s.Dynamic() != body {
		t.Error("Enable() replaced an existing body")
	}
}

func TestStaticIndexPersistence(t *testing.T) {
	p := newTestPhysics(t, nil)
	s := p.AddStaticSprite("wall", 40, 40, 16, 16)
	body := s.Static()
	covering := geom.NewRect(32, 32, 32, 32)

	tests := []struct {
		name     string
		apply    func()
		expected int
	}{
		{"created", func() {}, 1},
		{"disabled", func() { p.World.Disable(Obj(s)) }, 0},
		{"disabled after step", func() { stepN(p.World, 2) }, 0},
		{"enabled", func() { p.World.Enable(Obj(s), Static) }, 1},
		{"enabled twice", func() { p.World.Enable(Obj(s), Static) }, 1},
		{"enabled after step", func() { stepN(p.World, 2) }, 1},
		{"removed", func() { p.World.Remove(body) }, 0},
		{"removed after step", func() { stepN(p.World, 2) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			got := p.World.SearchStatic(covering)
			if len(got) != tt.expected {
				t.Fatalf("SearchStatic() = %d bodies, expected %d", len(got), tt.expected)
			}
			if tt.expected == 1 && got[0] != body {
				t.Errorf("SearchStatic() = %v, expected the wall body", got[0])
			}
			if n := len(p.World.StaticBodies()); n != tt.expected {
				t.Errorf("StaticBodies() = %d, expected %d", n, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	p := newTestPhysics(t, func(c *config.WorldConfig) {
		c.Bounds = geom.NewRect(0, 0, 100, 100)
	})
	s := p.AddSprite("s", 105, -3, 4, 4)

	p.World.Wrap(Obj(s), 0)

	if !almostEqual(s.X, 5) || !almostEqual(s.Y, 97) {
		t.Errorf("Wrap() = (%v, %v), expected (5, 97)", s.X, s.Y)
	}
}

func TestShutdown(t *testing.T) {
	p := newTestPhysics(t, nil)
	a := p.AddSprite("a", 0, 0, 8, 8)
	p.AddStaticSprite("b", 0, 0, 8, 8)
	p.World.AddCollider(Obj(a), Target{}, nil, nil)
	p.World.Events().On(EventStep, func(any) {})

	p.Shutdown()

	if len(p.World.Bodies()) != 0 || len(p.World.StaticBodies()) != 0 {
		t.Error("Shutdown() left bodies behind")
	}
	if p.World.Events().ListenerCount(EventStep) != 0 {
		t.Error("Shutdown() left listeners behind")
	}
}
