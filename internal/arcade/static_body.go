package arcade

import (
	"fmt"

	"github.com/vovakirdan/arcade-physics/internal/geom"
	"github.com/vovakirdan/arcade-physics/internal/rtree"
)

// StaticBody never moves under simulation. It lives in the world's static
// tree, so every change to its geometry goes through a re-index.
type StaticBody struct {
	bodyState
}

func newStaticBody(w *World, obj GameObject) *StaticBody {
	x, y := obj.Position()
	width, height := obj.Size()

	s := &StaticBody{}
	s.world = w
	s.gameObject = obj
	s.self = s
	s.Enable = true
	s.Position = geom.V(x, y)
	s.Prev = s.Position
	s.resize(width, height)
	s.Mass = 1
	s.Immovable = true
	s.CheckCollision = allFaces()
	s.Touching = noFaces()
	s.WasTouching = noFaces()
	s.Blocked = noFaces()
	s.DebugShowBody = w.Debug.ShowStaticBody
	s.DebugBodyColor = w.Debug.StaticBodyColor
	return s
}

// Type returns Static.
func (s *StaticBody) Type() BodyType { return Static }

// GameObject returns the object this body is attached to.
func (s *StaticBody) GameObject() GameObject { return s.gameObject }

// DeltaX is always zero for a static body.
func (s *StaticBody) DeltaX() float64 { return 0 }

// DeltaY is always zero for a static body.
func (s *StaticBody) DeltaY() float64 { return 0 }

// DeltaAbsX is always zero for a static body.
func (s *StaticBody) DeltaAbsX() float64 { return 0 }

// DeltaAbsY is always zero for a static body.
func (s *StaticBody) DeltaAbsY() float64 { return 0 }

// DeltaZ is always zero for a static body.
func (s *StaticBody) DeltaZ() float64 { return 0 }

// reindex applies fn while the body is out of the static tree.
func (s *StaticBody) reindex(fn func()) {
	tree := s.staticTree()
	indexed := tree != nil && tree.Has(s)
	if indexed {
		tree.Remove(s)
	}
	fn()
	s.Prev = s.Position
	if indexed {
		tree.Insert(s)
	}
}

func (s *StaticBody) staticTree() *rtree.Tree[*StaticBody] {
	if s.world == nil {
		return nil
	}
	return s.world.staticTree
}

// SetSize resizes the body and reverts it to a rectangle.
func (s *StaticBody) SetSize(width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	s.reindex(func() {
		s.resize(width, height)
		s.IsCircle = false
		s.Radius = 0
	})
	return nil
}

// SetOffset sets the body's offset from its game object's position.
func (s *StaticBody) SetOffset(x, y float64) {
	s.reindex(func() {
		s.Position = s.Position.Sub(s.Offset).Add(geom.V(x, y))
		s.Offset = geom.V(x, y)
	})
}

// SetCircle turns the body into a circle of the given radius. A radius of
// zero or less reverts it to a rectangle.
func (s *StaticBody) SetCircle(radius, offsetX, offsetY float64) {
	s.reindex(func() {
		if radius <= 0 {
			s.IsCircle = false
			s.Radius = 0
			return
		}
		s.IsCircle = true
		s.Radius = radius
		s.resize(radius*2, radius*2)
		s.Position = s.Position.Sub(s.Offset).Add(geom.V(offsetX, offsetY))
		s.Offset = geom.V(offsetX, offsetY)
	})
}

// Reset moves the body and its game object to (x, y).
func (s *StaticBody) Reset(x, y float64) {
	s.reindex(func() {
		if s.gameObject != nil {
			s.gameObject.SetPosition(x, y)
		}
		s.Position = geom.V(x+s.Offset.X, y+s.Offset.Y)
	})
}

// UpdateFromGameObject re-reads position and size from the game object.
func (s *StaticBody) UpdateFromGameObject() {
	if s.gameObject == nil {
		return
	}
	s.reindex(func() {
		x, y := s.gameObject.Position()
		w, h := s.gameObject.Size()
		if !s.IsCircle {
			s.resize(w, h)
		}
		s.Position = geom.V(x+s.Offset.X, y+s.Offset.Y)
	})
}

// Destroy disables the body and schedules its removal at the next
// World.PostUpdate.
func (s *StaticBody) Destroy() {
	s.Enable = false
	if s.world != nil {
		s.world.pendingDestroy.Add(s)
	}
}

func (s *StaticBody) drawDebug(g DebugGraphics) {
	if s.IsCircle {
		c := s.Center()
		g.StrokeCircle(c.X, c.Y, s.HalfWidth, s.DebugBodyColor)
		return
	}
	g.StrokeRect(s.Position.X, s.Position.Y, s.Width, s.Height, s.DebugBodyColor)
}
