package scene

import (
	"math"

	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/geom"
	"github.com/vovakirdan/arcade-physics/internal/tilemap"
)

// circleSegments is the number of points plotted for a debug circle.
const circleSegments = 24

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeCircle
	shapeLine
)

type shape struct {
	kind   shapeKind
	x, y   float64
	w, h   float64 // Rect size; w is the radius of a circle
	x2, y2 float64
	color  uint32
}

// DebugCanvas records the world's debug drawing so it can be replayed over
// a rendered frame.
type DebugCanvas struct {
	shapes []shape
}

// Clear drops the shapes of the previous frame.
func (c *DebugCanvas) Clear() { c.shapes = c.shapes[:0] }

// StrokeRect records a rectangle outline.
func (c *DebugCanvas) StrokeRect(x, y, w, h float64, color uint32) {
	c.shapes = append(c.shapes, shape{kind: shapeRect, x: x, y: y, w: w, h: h, color: color})
}

// StrokeCircle records a circle outline.
func (c *DebugCanvas) StrokeCircle(x, y, radius float64, color uint32) {
	c.shapes = append(c.shapes, shape{kind: shapeCircle, x: x, y: y, w: radius, color: color})
}

// LineBetween records a line segment.
func (c *DebugCanvas) LineBetween(x1, y1, x2, y2 float64, color uint32) {
	c.shapes = append(c.shapes, shape{kind: shapeLine, x: x1, y: y1, x2: x2, y2: y2, color: color})
}

// Len returns the number of recorded shapes.
func (c *DebugCanvas) Len() int { return len(c.shapes) }

// Draw replays the recorded shapes onto dst. Cell rows are shifted down by
// top and nothing is drawn outside the viewport's rows.
func (c *DebugCanvas) Draw(dst *core.Screen, v core.Viewport, top int) {
	dst.SetClip(core.NewRect(0, top, v.Cols, v.Rows))
	defer dst.ResetClip()

	for _, s := range c.shapes {
		color := core.NearestColor(s.color)
		switch s.kind {
		case shapeRect:
			r := v.CellRect(geom.NewRect(s.x, s.y, s.w, s.h))
			r.Y += top
			dst.DrawBox(r, color)
		case shapeCircle:
			for i := range circleSegments {
				a := 2 * math.Pi * float64(i) / circleSegments
				cx, cy := v.ToCell(s.x+s.w*math.Cos(a), s.y+s.w*math.Sin(a))
				dst.SetCell(cx, cy+top, core.Cell{Rune: '·', Color: color})
			}
		case shapeLine:
			x0, y0 := v.ToCell(s.x, s.y)
			x1, y1 := v.ToCell(s.x2, s.y2)
			dst.DrawLine(x0, y0+top, x1, y1+top, '.', color)
		}
	}
}

// Viewport returns the mapping of the world bounds onto a screen area of
// cols x rows cells.
func (s *Scene) Viewport(cols, rows int) core.Viewport {
	return core.Viewport{World: s.Physics.World.Bounds, Cols: cols, Rows: rows}
}

// Render draws tilemaps, then sprites, then any debug shapes into dst,
// starting at row top.
func (s *Scene) Render(dst *core.Screen, top int) {
	v := s.Viewport(dst.Width(), dst.Height()-top)
	if v.Rows <= 0 || v.Cols <= 0 {
		return
	}
	dst.SetClip(core.NewRect(0, top, v.Cols, v.Rows))
	defer dst.ResetClip()

	for _, l := range s.layers {
		drawLayer(dst, v, top, l)
	}

	for _, o := range s.objects {
		if !o.Alive() {
			continue
		}
		sp := o.Sprite
		if b := sp.Dynamic(); b != nil && b.IsCircle {
			drawCircle(dst, v, top, b.Center(), b.Radius, o.Glyph, o.Color)
			continue
		}
		if b := sp.Static(); b != nil && b.IsCircle {
			drawCircle(dst, v, top, b.Center(), b.Radius, o.Glyph, o.Color)
			continue
		}
		r := v.CellRect(geom.NewRect(sp.X, sp.Y, sp.Width, sp.Height))
		r.Y += top
		dst.DrawRect(r, o.Glyph, o.Color)
	}

	if s.Physics.World.Debug.Enabled {
		s.canvas.Draw(dst, v, top)
	}
}

func drawLayer(dst *core.Screen, v core.Viewport, top int, l *tilemap.Layer) {
	for _, t := range l.TilesWithin(0, 0, l.Width, l.Height, tilemap.Filter{NotEmpty: true}) {
		color := core.ColorBlue
		if t.IsColliding() {
			color = core.ColorGray
		}
		r := v.CellRect(geom.NewRect(l.TileToWorldX(t.X), l.TileToWorldY(t.Y), t.Width, t.Height))
		r.Y += top
		dst.DrawRect(r, t.Glyph(), color)
	}
}

// drawCircle fills the cells whose centers lie inside the circle, or the
// center cell when the circle is smaller than a cell.
func drawCircle(dst *core.Screen, v core.Viewport, top int, c geom.Vec2, radius float64, g rune, color core.Color) {
	cell := core.Cell{Rune: g, Color: color}
	r := v.CellRect(geom.NewRect(c.X-radius, c.Y-radius, radius*2, radius*2))

	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			px, py := v.CellCenter(x, y)
			if geom.CircleContains(c.X, c.Y, radius, px, py) {
				dst.SetCell(x, y+top, cell)
				drawn = true
			}
		}
	}
	if !drawn {
		x, y := v.ToCell(c.X, c.Y)
		dst.SetCell(x, y+top, cell)
	}
}
