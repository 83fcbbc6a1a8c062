package core

import (
	"math"
	"strings"

	"github.com/vovakirdan/arcade-physics/internal/geom"
)

// Cell is a single character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a 2D colored character buffer. Simulations draw into it and the
// platform converts it to terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
	clip   *Rect
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(0, width),
		height: max(0, height),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := range copyH {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.FillCell(blank)
}

// FillCell fills the entire screen with c.
func (s *Screen) FillCell(c Cell) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = c
		}
	}
}

// Set places an uncolored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetClip restricts drawing to r until ResetClip is called. Clear and
// FillCell ignore the clip.
func (s *Screen) SetClip(r Rect) {
	s.clip = &r
}

// ResetClip allows drawing anywhere on the screen again.
func (s *Screen) ResetClip() {
	s.clip = nil
}

// Bounds returns the drawable area: the screen intersected with the clip.
func (s *Screen) Bounds() Rect {
	b := NewRect(0, 0, s.width, s.height)
	if s.clip != nil {
		b = b.Intersect(*s.clip)
	}
	return b
}

// SetCell places a cell at the given position.
// Coordinates outside Bounds are silently ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: c})
		i++
	}
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.cells[y][x] = Cell{Rune: fill, Color: c}
		}
	}
}

// DrawBox draws a box outline using box-drawing characters. Boxes one cell
// wide or high collapse to a line.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	if r.W == 1 || r.H == 1 {
		s.DrawRect(r, '+', c)
		return
	}

	set := func(x, y int, ch rune) { s.SetCell(x, y, Cell{Rune: ch, Color: c}) }

	set(r.X, r.Y, '┌')
	set(r.Right()-1, r.Y, '┐')
	set(r.X, r.Bottom()-1, '└')
	set(r.Right()-1, r.Bottom()-1, '┘')

	b := s.Bounds()
	for x := max(r.X+1, b.X); x < min(r.Right()-1, b.Right()); x++ {
		set(x, r.Y, '─')
		set(x, r.Bottom()-1, '─')
	}
	for y := max(r.Y+1, b.Y); y < min(r.Bottom()-1, b.Bottom()); y++ {
		set(r.X, y, '│')
		set(r.Right()-1, y, '│')
	}
}

// DrawLine draws a line between two cells with Bresenham's algorithm. The
// line is clipped to Bounds first.
func (s *Screen) DrawLine(x0, y0, x1, y1 int, r rune, c Color) {
	b := s.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return
	}
	if !b.Contains(x0, y0) || !b.Contains(x1, y1) {
		fx0, fy0, fx1, fy1, ok := geom.ClipLine(
			float64(x0), float64(y0), float64(x1), float64(y1),
			float64(b.X), float64(b.Y), float64(b.Right()-1), float64(b.Bottom()-1),
		)
		if !ok {
			return
		}
		x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
		x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		s.SetCell(x0, y0, Cell{Rune: r, Color: c})
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := range s.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range s.width {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
