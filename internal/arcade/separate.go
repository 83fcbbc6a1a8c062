package arcade

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// intersects reports whether two distinct bodies overlap. Rectangles touching
// at an edge do not intersect; circles touching at a point do.
func intersects(b1, b2 *bodyState) bool {
	if b1 == b2 {
		return false
	}

	switch {
	case !b1.IsCircle && !b2.IsCircle:
		return !(b1.Right() <= b2.Left() ||
			b1.Bottom() <= b2.Top() ||
			b1.Left() >= b2.Right() ||
			b1.Top() >= b2.Bottom())
	case b1.IsCircle && b2.IsCircle:
		c1, c2 := b1.Center(), b2.Center()
		return geom.Distance(c1.X, c1.Y, c2.X, c2.Y) <= b1.HalfWidth+b2.HalfWidth
	case b1.IsCircle:
		return circleBodyIntersects(b1, b2)
	default:
		return circleBodyIntersects(b2, b1)
	}
}

// circleBodyIntersects tests a circular body against a rectangular one.
func circleBodyIntersects(circle, body *bodyState) bool {
	c := circle.Center()
	x := geom.Clamp(c.X, body.Left(), body.Right())
	y := geom.Clamp(c.Y, body.Top(), body.Bottom())
	dx := (c.X - x) * (c.X - x)
	dy := (c.Y - y) * (c.Y - y)
	return dx+dy <= circle.HalfWidth*circle.HalfWidth
}

// separate resolves one body pair and reports whether they collided (or, when
// overlapOnly, overlapped).
func (w *World) separate(b1, b2 *bodyState, process ProcessFunc, overlapOnly bool) bool {
	if !b1.Enable || !b2.Enable ||
		b1.CheckCollision.None || b2.CheckCollision.None ||
		!intersects(b1, b2) {
		return false
	}

	if process != nil && !process(Pair{A: b1.gameObject, B: b2.gameObject}) {
		return false
	}

	if b1.IsCircle && b2.IsCircle {
		return w.separateCircle(b1, b2, overlapOnly)
	}

	if b1.IsCircle != b2.IsCircle {
		rect, circle := b1, b2
		if b1.IsCircle {
			rect, circle = b2, b1
		}
		c := circle.Center()
		outsideY := c.Y < rect.Top() || c.Y > rect.Bottom()
		outsideX := c.X < rect.Left() || c.X > rect.Right()
		if outsideY && outsideX {
			return w.separateCircle(b1, b2, overlapOnly)
		}
	}

	var resultX, resultY bool
	if w.ForceX || math.Abs(w.Gravity.Y+b1.Gravity.Y) < math.Abs(w.Gravity.X+b1.Gravity.X) {
		resultX = w.separateX(b1, b2, overlapOnly)
		if intersects(b1, b2) {
			resultY = w.separateY(b1, b2, overlapOnly)
		}
	} else {
		resultY = w.separateY(b1, b2, overlapOnly)
		if intersects(b1, b2) {
			resultX = w.separateX(b1, b2, overlapOnly)
		}
	}

	result := resultX || resultY
	if result {
		w.emitContact(b1, b2, overlapOnly)
	}
	return result
}

// emitContact publishes EventOverlap or EventCollide for a resolved pair when
// either body asked for it.
func (w *World) emitContact(b1, b2 *bodyState, overlapOnly bool) {
	ev := CollisionEvent{A: b1.gameObject, B: b2.gameObject, BodyA: b1.self, BodyB: b2.self}
	if overlapOnly {
		if b1.OnOverlap || b2.OnOverlap {
			w.emit(EventOverlap, ev)
		}
		return
	}
	if b1.OnCollide || b2.OnCollide {
		w.emit(EventCollide, ev)
	}
}

// getOverlapX computes the horizontal penetration of b1 into b2, marking
// touching faces. Zero means no resolvable overlap.
func (w *World) getOverlapX(b1, b2 *bodyState, overlapOnly bool) float64 {
	var overlap float64
	maxOverlap := b1.DeltaAbsX() + b2.DeltaAbsX() + w.OverlapBias

	switch {
	case b1.dx == 0 && b2.dx == 0:
		b1.Embedded = true
		b2.Embedded = true
	case b1.dx > b2.dx:
		overlap = b1.Right() - b2.Left()
		if (overlap > maxOverlap && !overlapOnly) || !b1.CheckCollision.Right || !b2.CheckCollision.Left {
			overlap = 0
		} else {
			setTouchingX(b1, b2, true)
		}
	case b1.dx < b2.dx:
		overlap = b1.Left() - b2.Width - b2.Left()
		if (-overlap > maxOverlap && !overlapOnly) || !b1.CheckCollision.Left || !b2.CheckCollision.Right {
			overlap = 0
		} else {
			setTouchingX(b1, b2, false)
		}
	}

	b1.OverlapX = overlap
	b2.OverlapX = overlap
	return overlap
}

// getOverlapY computes the vertical penetration of b1 into b2.
func (w *World) getOverlapY(b1, b2 *bodyState, overlapOnly bool) float64 {
	var overlap float64
	maxOverlap := b1.DeltaAbsY() + b2.DeltaAbsY() + w.OverlapBias

	switch {
	case b1.dy == 0 && b2.dy == 0:
		b1.Embedded = true
		b2.Embedded = true
	case b1.dy > b2.dy:
		overlap = b1.Bottom() - b2.Top()
		if (overlap > maxOverlap && !overlapOnly) || !b1.CheckCollision.Down || !b2.CheckCollision.Up {
			overlap = 0
		} else {
			setTouchingY(b1, b2, true)
		}
	case b1.dy < b2.dy:
		overlap = b1.Top() - b2.Height - b2.Top()
		if (-overlap > maxOverlap && !overlapOnly) || !b1.CheckCollision.Up || !b2.CheckCollision.Down {
			overlap = 0
		} else {
			setTouchingY(b1, b2, false)
		}
	}

	b1.OverlapY = overlap
	b2.OverlapY = overlap
	return overlap
}

// separateX resolves the horizontal overlap of a pair.
func (w *World) separateX(b1, b2 *bodyState, overlapOnly bool) bool {
	overlap := w.getOverlapX(b1, b2, overlapOnly)

	if overlapOnly || overlap == 0 || (b1.Immovable && b2.Immovable) ||
		b1.CustomSeparateX || b2.CustomSeparateX {
		return overlap != 0 || (b1.Embedded && b2.Embedded)
	}

	v1 := b1.Velocity.X
	v2 := b2.Velocity.X

	switch {
	case !b1.Immovable && !b2.Immovable:
		overlap *= 0.5
		b1.Position.X -= overlap
		b2.Position.X += overlap

		nv1, nv2 := exchange(v1, v2, b1.Mass, b2.Mass)
		b1.Velocity.X = nv1.avg + nv1.rel*b1.Bounce.X
		b2.Velocity.X = nv2.avg + nv2.rel*b2.Bounce.X
	case !b1.Immovable:
		b1.Position.X -= overlap
		b1.Velocity.X = v2 - v1*b1.Bounce.X
		if b2.Moves {
			b1.Position.Y += (b2.Position.Y - b2.Prev.Y) * b2.Friction.Y
		}
		blockX(b1, overlap > 0)
	default:
		b2.Position.X += overlap
		b2.Velocity.X = v1 - v2*b2.Bounce.X
		if b1.Moves {
			b2.Position.Y += (b1.Position.Y - b1.Prev.Y) * b1.Friction.Y
		}
		blockX(b2, overlap < 0)
	}
	return true
}

// separateY resolves the vertical overlap of a pair.
func (w *World) separateY(b1, b2 *bodyState, overlapOnly bool) bool {
	overlap := w.getOverlapY(b1, b2, overlapOnly)

	if overlapOnly || overlap == 0 || (b1.Immovable && b2.Immovable) ||
		b1.CustomSeparateY || b2.CustomSeparateY {
		return overlap != 0 || (b1.Embedded && b2.Embedded)
	}

	v1 := b1.Velocity.Y
	v2 := b2.Velocity.Y

	switch {
	case !b1.Immovable && !b2.Immovable:
		overlap *= 0.5
		b1.Position.Y -= overlap
		b2.Position.Y += overlap

		nv1, nv2 := exchange(v1, v2, b1.Mass, b2.Mass)
		b1.Velocity.Y = nv1.avg + nv1.rel*b1.Bounce.Y
		b2.Velocity.Y = nv2.avg + nv2.rel*b2.Bounce.Y
	case !b1.Immovable:
		b1.Position.Y -= overlap
		b1.Velocity.Y = v2 - v1*b1.Bounce.Y
		if b2.Moves {
			b1.Position.X += (b2.Position.X - b2.Prev.X) * b2.Friction.X
		}
		blockY(b1, overlap > 0)
	default:
		b2.Position.Y += overlap
		b2.Velocity.Y = v1 - v2*b2.Bounce.Y
		if b1.Moves {
			b2.Position.X += (b1.Position.X - b1.Prev.X) * b1.Friction.X
		}
		blockY(b2, overlap < 0)
	}
	return true
}

type exchanged struct {
	avg float64 // Shared velocity of the pair
	rel float64 // Velocity relative to avg, scaled by bounce afterwards
}

// exchange swaps momentum along one axis between two movable bodies.
func exchange(v1, v2, m1, m2 float64) (exchanged, exchanged) {
	nv1 := math.Sqrt(v2*v2*m2/m1) * sign(v2)
	nv2 := math.Sqrt(v1*v1*m1/m2) * sign(v1)
	avg := (nv1 + nv2) * 0.5
	return exchanged{avg: avg, rel: nv1 - avg}, exchanged{avg: avg, rel: nv2 - avg}
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// blockX flags the face of b that hit an immovable body.
func blockX(b *bodyState, right bool) {
	b.Blocked.None = false
	if right {
		b.Blocked.Right = true
	} else {
		b.Blocked.Left = true
	}
}

// blockY flags the face of b that hit an immovable body.
func blockY(b *bodyState, down bool) {
	b.Blocked.None = false
	if down {
		b.Blocked.Down = true
	} else {
		b.Blocked.Up = true
	}
}
