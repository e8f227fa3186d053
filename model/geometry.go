package model

import "math"

// Rect is an axis-aligned rectangle in page space, stored as the two corner
// points (X0,Y0) and (X1,Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect creates a rectangle from corner coordinates.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// RectFromSlice creates a rectangle from a [x0 y0 x1 y1] slice.
// Returns the zero rectangle and false if the slice is not length 4.
func RectFromSlice(vals []float64) (Rect, bool) {
	if len(vals) != 4 {
		return Rect{}, false
	}
	return Rect{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]}, true
}

// Slice returns the rectangle as a [x0 y0 x1 y1] slice.
func (r Rect) Slice() []float64 {
	return []float64{r.X0, r.Y0, r.X1, r.Y1}
}

// Width returns the rectangle width.
func (r Rect) Width() float64 {
	return math.Abs(r.X1 - r.X0)
}

// Height returns the rectangle height.
func (r Rect) Height() float64 {
	return math.Abs(r.Y1 - r.Y0)
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsZero reports whether all four coordinates are zero.
func (r Rect) IsZero() bool {
	return r.X0 == 0 && r.Y0 == 0 && r.X1 == 0 && r.Y1 == 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || r.X0 > other.X1 ||
		r.Y1 < other.Y0 || r.Y0 > other.Y1)
}

// Union returns the smallest rectangle covering both rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}
