package arcade

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
	"github.com/vovakirdan/arcade-physics/internal/rtree"
)

// Collidable is implemented by *Body and *StaticBody only.
type Collidable interface {
	Type() BodyType
	GameObject() GameObject
	state() *bodyState
}

// bodyState is the spatial and collision surface shared by dynamic and
// static bodies.
type bodyState struct {
	world      *World
	gameObject GameObject
	self       Collidable

	Enable bool

	IsCircle bool
	Radius   float64

	Offset     geom.Vec2
	Position   geom.Vec2 // Top-left corner
	Prev       geom.Vec2
	Width      float64
	Height     float64
	HalfWidth  float64
	HalfHeight float64

	Velocity geom.Vec2
	Bounce   geom.Vec2
	Gravity  geom.Vec2
	Friction geom.Vec2
	Mass     float64

	Immovable bool
	Moves     bool

	// CustomSeparateX/Y skip positional correction on that axis and only
	// record OverlapX/OverlapY.
	CustomSeparateX bool
	CustomSeparateY bool

	OverlapX float64
	OverlapY float64
	OverlapR float64
	Embedded bool

	CheckCollision Faces
	Touching       Faces
	WasTouching    Faces
	Blocked        Faces

	// Event interest flags.
	OnCollide     bool
	OnOverlap     bool
	OnWorldBounds bool

	DebugShowBody  bool
	DebugBodyColor uint32

	// Position delta recorded at the end of the last integration.
	dx, dy float64
}

func (b *bodyState) state() *bodyState { return b }

// World returns the owning world, or nil once destroyed.
func (b *bodyState) World() *World { return b.world }

// X returns the left edge.
func (b *bodyState) X() float64 { return b.Position.X }

// Y returns the top edge.
func (b *bodyState) Y() float64 { return b.Position.Y }

// Left returns the left edge.
func (b *bodyState) Left() float64 { return b.Position.X }

// Right returns the right edge.
func (b *bodyState) Right() float64 { return b.Position.X + b.Width }

// Top returns the top edge.
func (b *bodyState) Top() float64 { return b.Position.Y }

// Bottom returns the bottom edge.
func (b *bodyState) Bottom() float64 { return b.Position.Y + b.Height }

// Center returns the centre of the body.
func (b *bodyState) Center() geom.Vec2 {
	return geom.V(b.Position.X+b.HalfWidth, b.Position.Y+b.HalfHeight)
}

// Bounds returns the body's bounding rectangle.
func (b *bodyState) Bounds() geom.Rect {
	return geom.NewRect(b.Position.X, b.Position.Y, b.Width, b.Height)
}

// DeltaX returns the horizontal movement since the previous step.
func (b *bodyState) DeltaX() float64 { return b.Position.X - b.Prev.X }

// DeltaY returns the vertical movement since the previous step.
func (b *bodyState) DeltaY() float64 { return b.Position.Y - b.Prev.Y }

// DeltaAbsX returns |DeltaX|.
func (b *bodyState) DeltaAbsX() float64 { return math.Abs(b.DeltaX()) }

// DeltaAbsY returns |DeltaY|.
func (b *bodyState) DeltaAbsY() float64 { return math.Abs(b.DeltaY()) }

// HitTest reports whether the world point lies inside the body.
func (b *bodyState) HitTest(x, y float64) bool {
	if b.IsCircle {
		c := b.Center()
		return geom.CircleContains(c.X, c.Y, b.HalfWidth, x, y)
	}
	return b.Bounds().Contains(x, y)
}

// resize sets the size and derived half extents.
func (b *bodyState) resize(width, height float64) {
	b.Width = width
	b.Height = height
	b.HalfWidth = width / 2
	b.HalfHeight = height / 2
}

// setTouchingX marks the horizontal contact faces of a pair.
func setTouchingX(b1, b2 *bodyState, b1Right bool) {
	b1.Touching.None = false
	b2.Touching.None = false
	if b1Right {
		b1.Touching.Right = true
		b2.Touching.Left = true
	} else {
		b1.Touching.Left = true
		b2.Touching.Right = true
	}
}

// setTouchingY marks the vertical contact faces of a pair.
func setTouchingY(b1, b2 *bodyState, b1Down bool) {
	b1.Touching.None = false
	b2.Touching.None = false
	if b1Down {
		b1.Touching.Down = true
		b2.Touching.Up = true
	} else {
		b1.Touching.Up = true
		b2.Touching.Down = true
	}
}

// treeBounds is the bounding-box function for both spatial indexes.
func treeBounds[T Collidable](c T) rtree.BBox {
	s := c.state()
	return rtree.BBox{MinX: s.Left(), MinY: s.Top(), MaxX: s.Right(), MaxY: s.Bottom()}
}
