package arcade

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// separateCircle resolves a pair where at least one body is a circle, using
// an elastic exchange along the line between the centres.
func (w *World) separateCircle(b1, b2 *bodyState, overlapOnly bool) bool {
	// Only the touching flags are wanted here.
	w.getOverlapX(b1, b2, false)
	w.getOverlapY(b1, b2, false)

	c1, c2 := b1.Center(), b2.Center()
	angle := math.Atan2(c2.Y-c1.Y, c2.X-c1.X)

	var overlap float64
	if b1.IsCircle != b2.IsCircle {
		rect, circle := b1, b2
		if b1.IsCircle {
			rect, circle = b2, b1
		}
		overlap = -cornerOverlap(rect.Bounds(), circle.Center(), circle.HalfWidth)
	} else {
		overlap = b1.HalfWidth + b2.HalfWidth - geom.Distance(c1.X, c1.Y, c2.X, c2.Y)
	}

	if overlapOnly || overlap == 0 || (b1.Immovable && b2.Immovable) ||
		b1.CustomSeparateX || b2.CustomSeparateX {
		if overlap != 0 && (b1.OnOverlap || b2.OnOverlap) {
			w.emit(EventOverlap, CollisionEvent{A: b1.gameObject, B: b2.gameObject, BodyA: b1.self, BodyB: b2.self})
		}
		return overlap != 0
	}

	cos, sin := math.Cos(angle), math.Sin(angle)

	b1vx, b1vy, m1 := b1.Velocity.X, b1.Velocity.Y, b1.Mass
	b2vx, b2vy, m2 := b2.Velocity.X, b2.Velocity.Y, b2.Mass

	// Velocities in the frame aligned with the impact normal.
	v1x, v1y := b1vx*cos+b1vy*sin, b1vx*sin-b1vy*cos
	v2x, v2y := b2vx*cos+b2vy*sin, b2vx*sin-b2vy*cos

	temp1 := ((m1-m2)*v1x + 2*m2*v2x) / (m1 + m2)
	temp2 := (2*m1*v1x + (m2-m1)*v2x) / (m1 + m2)

	if !b1.Immovable {
		b1.Velocity.X = (temp1*cos - v1y*sin) * b1.Bounce.X
		b1.Velocity.Y = (v1y*cos + temp1*sin) * b1.Bounce.Y
		b1vx, b1vy = b1.Velocity.X, b1.Velocity.Y
	}
	if !b2.Immovable {
		b2.Velocity.X = (temp2*cos - v2y*sin) * b2.Bounce.X
		b2.Velocity.Y = (v2y*cos + temp2*sin) * b2.Bounce.Y
		b2vx, b2vy = b2.Velocity.X, b2.Velocity.Y
	}

	// A near-tangent impact can leave one body heading into the other.
	switch {
	case math.Abs(angle) < math.Pi/2:
		switch {
		case b1vx > 0 && !b1.Immovable && b2vx > b1vx:
			b1.Velocity.X *= -1
		case b2vx < 0 && !b2.Immovable && b1vx < b2vx:
			b2.Velocity.X *= -1
		case b1vy > 0 && !b1.Immovable && b2vy > b1vy:
			b1.Velocity.Y *= -1
		case b2vy < 0 && !b2.Immovable && b1vy < b2vy:
			b2.Velocity.Y *= -1
		}
	case math.Abs(angle) > math.Pi/2:
		switch {
		case b1vx < 0 && !b1.Immovable && b2vx < b1vx:
			b1.Velocity.X *= -1
		case b2vx > 0 && !b2.Immovable && b1vx > b2vx:
			b2.Velocity.X *= -1
		case b1vy < 0 && !b1.Immovable && b2vy < b1vy:
			b1.Velocity.Y *= -1
		case b2vy > 0 && !b2.Immovable && b1vy > b2vy:
			b2.Velocity.Y *= -1
		}
	}

	delta := w.frameTime
	if !b1.Immovable {
		b1.Position.X += b1.Velocity.X*delta - overlap*cos
		b1.Position.Y += b1.Velocity.Y*delta - overlap*sin
	}
	if !b2.Immovable {
		b2.Position.X += b2.Velocity.X*delta + overlap*cos
		b2.Position.Y += b2.Velocity.Y*delta + overlap*sin
	}

	if b1.OnCollide || b2.OnCollide {
		w.emit(EventCollide, CollisionEvent{A: b1.gameObject, B: b2.gameObject, BodyA: b1.self, BodyB: b2.self})
	}
	return true
}

// cornerOverlap returns the distance from a circle outside both spans of r to
// r's nearest corner, minus the radius. It is zero when the centre lies
// within either span.
func cornerOverlap(r geom.Rect, c geom.Vec2, radius float64) float64 {
	var cx, cy float64
	switch {
	case c.Y < r.Top():
		cy = r.Top()
	case c.Y > r.Bottom():
		cy = r.Bottom()
	default:
		return 0
	}
	switch {
	case c.X < r.Left():
		cx = r.Left()
	case c.X > r.Right():
		cx = r.Right()
	default:
		return 0
	}
	return geom.Distance(c.X, c.Y, cx, cy) - radius
}
