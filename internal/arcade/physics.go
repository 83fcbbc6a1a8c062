package arcade

import (
	"math"
	"time"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// DefaultSpeed is the speed used by the move and accelerate helpers when
// the caller passes zero.
const DefaultSpeed = 60

// Physics is the scene-facing entry point: it owns a World and offers
// factories and steering helpers on top of it.
type Physics struct {
	World *World
}

// NewPhysics creates a facade around a new world.
func NewPhysics(cfg config.WorldConfig, opts ...Option) (*Physics, error) {
	w, err := NewWorld(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Physics{World: w}, nil
}

// Update advances the world and then runs its post-update.
func (p *Physics) Update(now, delta time.Duration) {
	p.World.Update(now, delta)
	p.World.PostUpdate()
}

// Collide separates a from b immediately.
func (p *Physics) Collide(a, b Target, collide CollideFunc, process ProcessFunc) bool {
	return p.World.Collide(a, b, collide, process)
}

// Overlap tests a against b without separating them.
func (p *Physics) Overlap(a, b Target, collide CollideFunc, process ProcessFunc) bool {
	return p.World.Overlap(a, b, collide, process)
}

// Pause suspends the world.
func (p *Physics) Pause() { p.World.Pause() }

// Resume restarts the world.
func (p *Physics) Resume() { p.World.Resume() }

// Shutdown releases everything the world holds.
func (p *Physics) Shutdown() { p.World.Shutdown() }

// AddSprite creates a sprite with a dynamic body.
func (p *Physics) AddSprite(name string, x, y, width, height float64) *Sprite {
	s := NewSprite(name, x, y, width, height)
	p.World.EnableBody(s, Dynamic)
	return s
}

// AddStaticSprite creates a sprite with a static body.
func (p *Physics) AddStaticSprite(name string, x, y, width, height float64) *Sprite {
	s := NewSprite(name, x, y, width, height)
	p.World.EnableBody(s, Static)
	return s
}

// AddGroup creates a group bound to the world whose members get dynamic
// bodies.
func (p *Physics) AddGroup(name string, objs ...GameObject) *Group {
	return p.addGroup(name, Dynamic, objs)
}

// AddStaticGroup creates a group bound to the world whose members get static
// bodies.
func (p *Physics) AddStaticGroup(name string, objs ...GameObject) *Group {
	return p.addGroup(name, Static, objs)
}

func (p *Physics) addGroup(name string, kind BodyType, objs []GameObject) *Group {
	g := NewGroup(name, kind)
	g.world = p.World
	g.Add(objs...)
	return g
}

// MoveTo sets obj's velocity towards (x, y) and returns the heading in
// radians. A positive maxTime overrides speed so the point is reached in
// that time.
func (p *Physics) MoveTo(obj GameObject, x, y, speed float64, maxTime time.Duration) float64 {
	if speed == 0 {
		speed = DefaultSpeed
	}
	ox, oy := obj.Position()
	angle := math.Atan2(y-oy, x-ox)

	if maxTime > 0 {
		speed = geom.Distance(ox, oy, x, y) / maxTime.Seconds()
	}
	if b, ok := obj.Body().(*Body); ok {
		b.Velocity = geom.Polar(angle, speed)
	}
	return angle
}

// MoveToObject is MoveTo with another object's position as the target.
func (p *Physics) MoveToObject(obj, dest GameObject, speed float64, maxTime time.Duration) float64 {
	x, y := dest.Position()
	return p.MoveTo(obj, x, y, speed, maxTime)
}

// AccelerateTo sets obj's acceleration towards (x, y) and returns the heading
// in radians. Non-zero maxX and maxY replace the body's MaxVelocity.
func (p *Physics) AccelerateTo(obj GameObject, x, y, speed, maxX, maxY float64) float64 {
	if speed == 0 {
		speed = DefaultSpeed
	}
	ox, oy := obj.Position()
	angle := math.Atan2(y-oy, x-ox)

	if b, ok := obj.Body().(*Body); ok {
		b.Acceleration = geom.Polar(angle, speed)
		if maxX != 0 && maxY != 0 {
			b.MaxVelocity = geom.V(maxX, maxY)
		}
	}
	return angle
}

// AccelerateToObject is AccelerateTo with another object's position as the
// target.
func (p *Physics) AccelerateToObject(obj, dest GameObject, speed, maxX, maxY float64) float64 {
	x, y := dest.Position()
	return p.AccelerateTo(obj, x, y, speed, maxX, maxY)
}

// Closest returns the dynamic body nearest to source, ignoring source's own
// body, or nil.
func (p *Physics) Closest(source GameObject) *Body {
	return p.pick(source, func(d, best float64) bool { return d < best }, math.MaxFloat64)
}

// Furthest returns the dynamic body furthest from source, ignoring source's
// own body, or nil.
func (p *Physics) Furthest(source GameObject) *Body {
	return p.pick(source, func(d, best float64) bool { return d > best }, -1)
}

func (p *Physics) pick(source GameObject, better func(d, best float64) bool, start float64) *Body {
	x, y := source.Position()
	own := source.Body()
	bodies := p.World.bodies.Items()

	var found *Body
	best := start
	for i := len(bodies) - 1; i >= 0; i-- {
		b := bodies[i]
		if Collidable(b) == own {
			continue
		}
		d := geom.Distance(x, y, b.X(), b.Y())
		if better(d, best) {
			found = b
			best = d
		}
	}
	return found
}

// VelocityFromAngle converts an angle in degrees and a speed into a velocity.
func (p *Physics) VelocityFromAngle(deg, speed float64) geom.Vec2 {
	if speed == 0 {
		speed = DefaultSpeed
	}
	return geom.Polar(geom.DegToRad(deg), speed)
}

// VelocityFromRotation converts an angle in radians and a speed into a
// velocity.
func (p *Physics) VelocityFromRotation(rad, speed float64) geom.Vec2 {
	if speed == 0 {
		speed = DefaultSpeed
	}
	return geom.Polar(rad, speed)
}
