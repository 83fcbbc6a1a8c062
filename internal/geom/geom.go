// Package geom provides the float geometry and math primitives consumed by the
// physics core. Everything here is a pure function or a small value type.
package geom

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V creates a new vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Polar returns a vector of the given length pointing at angle (radians).
func Polar(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as an overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CircleContains reports whether (x, y) lies inside the circle centred at
// (cx, cy) with the given radius.
func CircleContains(cx, cy, radius, x, y float64) bool {
	if radius <= 0 {
		return false
	}
	dx := cx - x
	dy := cy - y
	return dx*dx+dy*dy <= radius*radius
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Distance returns the distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// FuzzyEqual reports whether a and b are within epsilon of each other.
func FuzzyEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// FuzzyGreaterThan reports whether a > b - epsilon.
func FuzzyGreaterThan(a, b, epsilon float64) bool {
	return a > b-epsilon
}

// FuzzyLessThan reports whether a < b + epsilon.
func FuzzyLessThan(a, b, epsilon float64) bool {
	return a < b+epsilon
}

// Wrap wraps value into the half-open range [min, max).
func Wrap(value, min, max float64) float64 {
	r := max - min
	if r == 0 {
		return min
	}
	return min + math.Mod(math.Mod(value-min, r)+r, r)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ClipLine clips the segment (x0, y0)-(x1, y1) to the rectangle spanning
// [minX, maxX] x [minY, maxY] using the Liang-Barsky algorithm. ok is false
// when no part of the segment lies inside.
func ClipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
