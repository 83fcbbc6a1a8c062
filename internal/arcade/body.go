package arcade

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// Body is a dynamic physics body. It is integrated every step and writes
// its movement back to its game object in postUpdate.
type Body struct {
	bodyState

	Acceleration geom.Vec2
	Drag         geom.Vec2
	MaxVelocity  geom.Vec2
	// MaxSpeed caps the velocity magnitude; negative disables the cap.
	MaxSpeed float64

	AllowGravity  bool
	AllowDrag     bool
	AllowRotation bool
	// UseDamping treats Drag as a per-second velocity multiplier instead
	// of a linear deceleration.
	UseDamping bool

	AngularVelocity     float64
	AngularAcceleration float64
	AngularDrag         float64
	MaxAngular          float64

	// WorldBounce overrides Bounce against world bounds when set.
	WorldBounce        *geom.Vec2
	CollideWorldBounds bool

	// DeltaMax clamps the per-step movement written back to the game
	// object; zero disables the clamp on that axis.
	DeltaMax geom.Vec2

	Facing Facing
	Speed  float64
	Angle  float64 // Direction of motion in radians

	Rotation    float64 // Degrees
	PreRotation float64

	// SyncBounds re-reads the game object's size every step.
	SyncBounds bool

	DebugShowVelocity bool

	NewVelocity geom.Vec2

	dirty bool
	reset bool
}

func newBody(w *World, obj GameObject) *Body {
	x, y := obj.Position()
	width, height := obj.Size()
	angle := obj.Angle()

	b := &Body{
		MaxVelocity:   geom.V(10000, 10000),
		MaxSpeed:      -1,
		AllowGravity:  true,
		AllowDrag:     true,
		AllowRotation: true,
		MaxAngular:    1000,
		Rotation:      angle,
		PreRotation:   angle,
		reset:         true,
	}
	b.world = w
	b.gameObject = obj
	b.self = b
	b.Enable = true
	b.Position = geom.V(x, y)
	b.Prev = b.Position
	b.resize(width, height)
	b.Friction = geom.V(1, 0)
	b.Mass = 1
	b.Moves = true
	b.CheckCollision = allFaces()
	b.Touching = noFaces()
	b.WasTouching = noFaces()
	b.Blocked = noFaces()
	b.DebugShowBody = w.Debug.ShowBody
	b.DebugShowVelocity = w.Debug.ShowVelocity
	b.DebugBodyColor = w.Debug.BodyColor
	return b
}

// Type returns Dynamic.
func (b *Body) Type() BodyType { return Dynamic }

// GameObject returns the object this body is attached to.
func (b *Body) GameObject() GameObject { return b.gameObject }

// update integrates one step.
func (b *Body) update(delta float64) {
	b.dirty = true

	b.WasTouching = b.Touching
	b.Touching = noFaces()
	b.Blocked = noFaces()
	b.OverlapR = 0
	b.OverlapX = 0
	b.OverlapY = 0
	b.Embedded = false

	b.updateBounds()

	if b.gameObject != nil {
		x, y := b.gameObject.Position()
		b.Position = geom.V(x+b.Offset.X, y+b.Offset.Y)
		b.Rotation = b.gameObject.Angle()
		b.PreRotation = b.Rotation
	}

	if b.reset {
		b.Prev = b.Position
	}

	if b.Moves {
		b.world.updateMotion(b, delta)

		b.NewVelocity = b.Velocity.Scale(delta)
		b.Position = b.Position.Add(b.NewVelocity)

		if b.Position != b.Prev {
			b.Angle = math.Atan2(b.Velocity.Y, b.Velocity.X)
		}
		b.Speed = b.Velocity.Length()

		if b.CollideWorldBounds && b.checkWorldBounds() && b.OnWorldBounds {
			b.world.emit(EventWorldBounds, WorldBoundsEvent{
				Body:  b,
				Up:    b.Blocked.Up,
				Down:  b.Blocked.Down,
				Left:  b.Blocked.Left,
				Right: b.Blocked.Right,
			})
		}
	}

	b.dx = b.DeltaX()
	b.dy = b.DeltaY()

	b.reset = false
}

func (b *Body) updateBounds() {
	if !b.SyncBounds || b.gameObject == nil {
		return
	}
	w, h := b.gameObject.Size()
	if w != b.Width || h != b.Height {
		b.resize(w, h)
		b.reset = true
	}
}

// postUpdate writes the step's movement back to the game object. It runs at
// most once per update.
func (b *Body) postUpdate() {
	if !b.Enable || !b.dirty {
		return
	}
	b.dirty = false

	dx := b.DeltaX()
	dy := b.DeltaY()

	switch {
	case dx < 0:
		b.Facing = FacingLeft
	case dx > 0:
		b.Facing = FacingRight
	}
	switch {
	case dy < 0:
		b.Facing = FacingUp
	case dy > 0:
		b.Facing = FacingDown
	}

	if b.Moves {
		b.dx = clampDelta(dx, b.DeltaMax.X)
		b.dy = clampDelta(dy, b.DeltaMax.Y)

		if b.gameObject != nil {
			x, y := b.gameObject.Position()
			b.gameObject.SetPosition(x+b.dx, y+b.dy)
		}
		b.reset = true
	}

	if b.AllowRotation && b.gameObject != nil {
		b.gameObject.SetAngle(b.gameObject.Angle() + b.DeltaZ())
	}

	b.Prev = b.Position
}

func clampDelta(d, limit float64) float64 {
	if limit == 0 || d == 0 {
		return d
	}
	if d < -limit {
		return -limit
	}
	if d > limit {
		return limit
	}
	return d
}

// checkWorldBounds keeps the body inside the world bounds and reports whether
// any edge was hit.
func (b *Body) checkWorldBounds() bool {
	bounds := b.world.Bounds
	check := b.world.CheckCollision

	bx, by := -b.Bounce.X, -b.Bounce.Y
	if b.WorldBounce != nil {
		bx, by = -b.WorldBounce.X, -b.WorldBounce.Y
	}

	if b.Position.X < bounds.X && check.Left {
		b.Position.X = bounds.X
		b.Velocity.X *= bx
		b.Blocked.Left = true
		b.Blocked.None = false
	} else if b.Right() > bounds.Right() && check.Right {
		b.Position.X = bounds.Right() - b.Width
		b.Velocity.X *= bx
		b.Blocked.Right = true
		b.Blocked.None = false
	}

	if b.Position.Y < bounds.Y && check.Up {
		b.Position.Y = bounds.Y
		b.Velocity.Y *= by
		b.Blocked.Up = true
		b.Blocked.None = false
	} else if b.Bottom() > bounds.Bottom() && check.Down {
		b.Position.Y = bounds.Bottom() - b.Height
		b.Velocity.Y *= by
		b.Blocked.Down = true
		b.Blocked.None = false
	}

	return !b.Blocked.None
}

// SetSize resizes the body and reverts it to a rectangle.
func (b *Body) SetSize(width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	b.resize(width, height)
	b.IsCircle = false
	b.Radius = 0
	return nil
}

// SetCircle turns the body into a circle of the given radius. A radius of
// zero or less reverts it to a rectangle of its current size.
func (b *Body) SetCircle(radius, offsetX, offsetY float64) {
	if radius <= 0 {
		b.IsCircle = false
		b.Radius = 0
		return
	}
	b.IsCircle = true
	b.Radius = radius
	b.resize(radius*2, radius*2)
	b.SetOffset(offsetX, offsetY)
}

// SetOffset sets the body's offset from its game object's position.
func (b *Body) SetOffset(x, y float64) {
	b.Position = b.Position.Sub(b.Offset).Add(geom.V(x, y))
	b.Offset = geom.V(x, y)
}

// Reset stops the body and moves it and its game object to (x, y).
func (b *Body) Reset(x, y float64) {
	b.Stop()
	if b.gameObject != nil {
		b.gameObject.SetPosition(x, y)
		b.Rotation = b.gameObject.Angle()
		b.PreRotation = b.Rotation
	}
	b.Position = geom.V(x+b.Offset.X, y+b.Offset.Y)
	b.Prev = b.Position
	b.dx, b.dy = 0, 0
}

// Stop zeroes all linear and angular motion.
func (b *Body) Stop() {
	b.Velocity = geom.Vec2{}
	b.Acceleration = geom.Vec2{}
	b.Speed = 0
	b.AngularVelocity = 0
	b.AngularAcceleration = 0
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) {
	b.Velocity = geom.V(x, y)
}

// SetBounce sets the restitution on both axes.
func (b *Body) SetBounce(x, y float64) {
	b.Bounce = geom.V(x, y)
}

// OnFloor reports whether the body is blocked from below.
func (b *Body) OnFloor() bool { return b.Blocked.Down }

// OnCeiling reports whether the body is blocked from above.
func (b *Body) OnCeiling() bool { return b.Blocked.Up }

// OnWall reports whether the body is blocked on either side.
func (b *Body) OnWall() bool { return b.Blocked.Left || b.Blocked.Right }

// DeltaZ returns the rotation change of the current step in degrees.
func (b *Body) DeltaZ() float64 { return b.Rotation - b.PreRotation }

// Destroy disables the body and schedules its removal at the next
// World.PostUpdate.
func (b *Body) Destroy() {
	b.Enable = false
	if b.world != nil {
		b.world.pendingDestroy.Add(b)
	}
}

func (b *Body) drawDebug(g DebugGraphics, velocityColor uint32) {
	c := b.Center()
	if b.DebugShowBody {
		if b.IsCircle {
			g.StrokeCircle(c.X, c.Y, b.HalfWidth, b.DebugBodyColor)
		} else {
			g.StrokeRect(b.Position.X, b.Position.Y, b.Width, b.Height, b.DebugBodyColor)
		}
	}
	if b.DebugShowVelocity {
		g.LineBetween(c.X, c.Y, c.X+b.Velocity.X, c.Y+b.Velocity.Y, velocityColor)
	}
}

func (b *Body) willDrawDebug() bool {
	return b.DebugShowBody || b.DebugShowVelocity
}
