package arcade

import (
	"errors"

	"github.com/vovakirdan/arcade-physics/internal/events"
)

// BodyType distinguishes dynamic bodies from static ones.
type BodyType int

const (
	Dynamic BodyType = iota
	Static
)

// String returns a human-readable name for the body type.
func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// Facing is the direction a body last moved in.
type Facing int

const (
	FacingNone Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
)

// Faces is a per-edge flag set. None is true when no edge flag is set.
type Faces struct {
	None  bool
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// allFaces returns a set with every edge enabled and None cleared.
func allFaces() Faces {
	return Faces{Up: true, Down: true, Left: true, Right: true}
}

// noFaces returns an empty set with None raised.
func noFaces() Faces {
	return Faces{None: true}
}

// Any reports whether at least one edge flag is set.
func (f Faces) Any() bool {
	return f.Up || f.Down || f.Left || f.Right
}

// Events emitted on the world's emitter.
const (
	EventCollide     events.Topic = "collide"
	EventOverlap     events.Topic = "overlap"
	EventPause       events.Topic = "pause"
	EventResume      events.Topic = "resume"
	EventWorldBounds events.Topic = "worldbounds"
	EventStep        events.Topic = "step"
)

// Sentinel errors.
var (
	ErrInvalidFPS  = errors.New("arcade: fps must be positive")
	ErrInvalidSize = errors.New("arcade: body size must not be negative")
)

// maxCatchUpSteps is the number of steps in one Update above which the world
// logs that it is falling behind.
const maxCatchUpSteps = 10
