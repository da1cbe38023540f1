package state

import "math"

// Rect is an axis-aligned area on the canvas.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// boundsOf returns the bounding box of a vertex list.
func boundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Bounds is the shape's bounding box in canvas coordinates, stroke excluded.
func (s Shape) Bounds() Rect {
	switch s.Kind {
	case KindCircle:
		return Rect{X: s.Left, Y: s.Top, Width: 2 * s.Radius, Height: 2 * s.Radius}
	case KindRectangle:
		return Rect{X: s.Left, Y: s.Top, Width: s.Width, Height: s.Height}
	case KindTriangle:
		b := boundsOf(s.Points)
		return Rect{X: s.Left, Y: s.Top, Width: b.Width, Height: b.Height}
	}
	return Rect{X: s.Left, Y: s.Top}
}

// Vertices returns the polygon's points in canvas coordinates. The stored
// points are relative and get shifted so their bounding box starts at Left/Top.
func (s Shape) Vertices() []Point {
	if s.Kind != KindTriangle {
		return nil
	}
	b := boundsOf(s.Points)
	out := make([]Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = Point{X: s.Left + p.X - b.X, Y: s.Top + p.Y - b.Y}
	}
	return out
}

// Contains reports whether p hits the shape, counting half the stroke width
// as part of the shape.
func (s Shape) Contains(p Point) bool {
	pad := s.StrokeWidth / 2
	switch s.Kind {
	case KindCircle:
		c := s.Bounds().Center()
		return math.Hypot(p.X-c.X, p.Y-c.Y) <= s.Radius+pad
	case KindRectangle:
		b := s.Bounds()
		b.X -= pad
		b.Y -= pad
		b.Width += 2 * pad
		b.Height += 2 * pad
		return b.Contains(p)
	case KindTriangle:
		v := s.Vertices()
		if len(v) != 3 {
			return false
		}
		return inTriangle(p, v[0], v[1], v[2])
	}
	return false
}

func inTriangle(p, a, b, c Point) bool {
	cross := func(o, u, v Point) float64 {
		return (u.X-o.X)*(v.Y-o.Y) - (u.Y-o.Y)*(v.X-o.X)
	}
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
