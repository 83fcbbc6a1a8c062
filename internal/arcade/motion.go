package arcade

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// Snap thresholds for drag.
const (
	dampingEpsilon = 0.001
	dragEpsilon    = 0.01
	angularEpsilon = 0.1
)

// updateMotion applies angular and linear motion to b for one step.
func (w *World) updateMotion(b *Body, delta float64) {
	if b.AllowRotation {
		w.computeAngularVelocity(b, delta)
	}
	w.computeVelocity(b, delta)
}

// computeAngularVelocity integrates angular acceleration or drag, clamps to
// MaxAngular and advances Rotation.
func (w *World) computeAngularVelocity(b *Body, delta float64) {
	v := b.AngularVelocity

	switch {
	case b.AngularAcceleration != 0:
		v += b.AngularAcceleration * delta
	case b.AllowDrag && b.AngularDrag != 0:
		drag := b.AngularDrag * delta
		switch {
		case geom.FuzzyGreaterThan(v-drag, 0, angularEpsilon):
			v -= drag
		case geom.FuzzyLessThan(v+drag, 0, angularEpsilon):
			v += drag
		default:
			v = 0
		}
	}

	v = geom.Clamp(v, -b.MaxAngular, b.MaxAngular)
	b.AngularVelocity = v
	b.Rotation += v * delta
}

// computeVelocity integrates gravity, acceleration and drag into the body's
// velocity, then applies MaxVelocity and MaxSpeed.
func (w *World) computeVelocity(b *Body, delta float64) {
	vx, vy := b.Velocity.X, b.Velocity.Y
	ax, ay := b.Acceleration.X, b.Acceleration.Y
	dx, dy := b.Drag.X, b.Drag.Y

	if b.AllowGravity {
		vx += (w.Gravity.X + b.Gravity.X) * delta
		vy += (w.Gravity.Y + b.Gravity.Y) * delta
	}

	if ax != 0 {
		vx += ax * delta
	} else if b.AllowDrag && dx != 0 {
		if b.UseDamping {
			vx *= math.Pow(dx, delta)
		} else {
			vx = linearDrag(vx, dx*delta)
		}
	}

	if ay != 0 {
		vy += ay * delta
	} else if b.AllowDrag && dy != 0 {
		if b.UseDamping {
			vy *= math.Pow(dy, delta)
		} else {
			vy = linearDrag(vy, dy*delta)
		}
	}

	vx = geom.Clamp(vx, -b.MaxVelocity.X, b.MaxVelocity.X)
	vy = geom.Clamp(vy, -b.MaxVelocity.Y, b.MaxVelocity.Y)

	speed := math.Hypot(vx, vy)
	if b.UseDamping && geom.FuzzyEqual(speed, 0, dampingEpsilon) {
		vx, vy, speed = 0, 0, 0
	}

	if b.MaxSpeed > -1 && speed > b.MaxSpeed {
		scale := b.MaxSpeed / speed
		vx *= scale
		vy *= scale
		speed = b.MaxSpeed
	}

	b.Velocity = geom.V(vx, vy)
	b.Speed = speed
}

// linearDrag moves v towards zero by drag, snapping to zero once it would
// cross.
func linearDrag(v, drag float64) float64 {
	switch {
	case geom.FuzzyGreaterThan(v-drag, 0, dragEpsilon):
		return v - drag
	case geom.FuzzyLessThan(v+drag, 0, dragEpsilon):
		return v + drag
	default:
		return 0
	}
}
