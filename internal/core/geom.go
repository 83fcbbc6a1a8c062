// Package core provides the terminal-facing types shared by simulations and
// the platform: a colored cell screen, a world-to-cell viewport and
// abstract input actions. It has no Bubble Tea dependency.
package core

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// Rect is an axis-aligned rectangle of terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Intersect returns the overlap of r and other. The result is empty (zero
// width or height) when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	return NewRect(x0, y0, max(0, x1-x0), max(0, y1-y0))
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps a region of world space onto a grid of cells.
type Viewport struct {
	World geom.Rect
	Cols  int
	Rows  int
}

// CellSize returns the world size of one cell.
func (v Viewport) CellSize() (float64, float64) {
	if v.Cols <= 0 || v.Rows <= 0 || v.World.Width <= 0 || v.World.Height <= 0 {
		return 1, 1
	}
	return v.World.Width / float64(v.Cols), v.World.Height / float64(v.Rows)
}

// maxCell bounds cell coordinates derived from world positions so that far
// away or non-finite positions still convert to a usable int.
const maxCell = 1 << 24

func cellCoord(f float64) int {
	if math.IsNaN(f) {
		return -maxCell
	}
	return int(math.Max(-maxCell, math.Min(maxCell, f)))
}

// ToCell returns the cell containing the world point (x, y).
func (v Viewport) ToCell(x, y float64) (int, int) {
	cw, ch := v.CellSize()
	return cellCoord(math.Floor((x - v.World.X) / cw)), cellCoord(math.Floor((y - v.World.Y) / ch))
}

// CellRect returns the cells covered by a world rectangle. Non-empty
// rectangles always cover at least one cell.
func (v Viewport) CellRect(r geom.Rect) Rect {
	cw, ch := v.CellSize()
	x0, y0 := v.ToCell(r.X, r.Y)
	x1 := cellCoord(math.Ceil((r.Right() - v.World.X) / cw))
	y1 := cellCoord(math.Ceil((r.Bottom() - v.World.Y) / ch))
	return NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// CellCenter returns the world position of the center of cell (cx, cy).
func (v Viewport) CellCenter(cx, cy int) (float64, float64) {
	cw, ch := v.CellSize()
	return v.World.X + (float64(cx)+0.5)*cw, v.World.Y + (float64(cy)+0.5)*ch
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
