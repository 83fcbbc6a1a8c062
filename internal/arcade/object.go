package arcade

import "github.com/vovakirdan/arcade-physics/internal/events"

// GameObject is anything a physics body can be attached to. Positions are
// the top-left corner in world units; angles are in degrees.
type GameObject interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Size() (w, h float64)
	Angle() float64
	SetAngle(deg float64)
	Body() Collidable
	SetBody(b Collidable)
}

// EventSource is implemented by game objects that want per-object tile
// collide/overlap events.
type EventSource interface {
	Events() *events.Emitter
}

// Sprite is a plain rectangular game object.
type Sprite struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64
	Deg    float64

	body    Collidable
	emitter *events.Emitter
}

// NewSprite creates a sprite with its top-left corner at (x, y).
func NewSprite(name string, x, y, width, height float64) *Sprite {
	return &Sprite{Name: name, X: x, Y: y, Width: width, Height: height}
}

// Position returns the top-left corner.
func (s *Sprite) Position() (float64, float64) { return s.X, s.Y }

// SetPosition moves the sprite.
func (s *Sprite) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
}

// Size returns the sprite's display size.
func (s *Sprite) Size() (float64, float64) { return s.Width, s.Height }

// Angle returns the rotation in degrees.
func (s *Sprite) Angle() float64 { return s.Deg }

// SetAngle sets the rotation in degrees.
func (s *Sprite) SetAngle(deg float64) { s.Deg = deg }

// Body returns the attached physics body, or nil.
func (s *Sprite) Body() Collidable { return s.body }

// SetBody attaches or detaches a physics body.
func (s *Sprite) SetBody(b Collidable) { s.body = b }

// Events returns the sprite's own emitter, creating it on first use.
func (s *Sprite) Events() *events.Emitter {
	if s.emitter == nil {
		s.emitter = events.NewEmitter()
	}
	return s.emitter
}

// Dynamic returns the attached dynamic body, or nil.
func (s *Sprite) Dynamic() *Body {
	b, _ := s.body.(*Body)
	return b
}

// Static returns the attached static body, or nil.
func (s *Sprite) Static() *StaticBody {
	b, _ := s.body.(*StaticBody)
	return b
}

// String returns the sprite name.
func (s *Sprite) String() string {
	return s.Name
}
