package model

import "math"

// Vec2 is a 2D point in table coordinates (y grows upward).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a position plus draw order: X and Y place the card, Z orders
// overlapping sprites (higher is in front).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// XY drops the draw order.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Distance returns the euclidean distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Length returns the distance from the origin.
func (a Vec2) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

// Rect is an axis-aligned box used for drop areas and card hit boxes.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// RectAround builds the box centered on c extending half in each direction.
func RectAround(c Vec2, half Vec2) Rect {
	return Rect{
		Min: Vec2{X: c.X - half.X, Y: c.Y - half.Y},
		Max: Vec2{X: c.X + half.X, Y: c.Y + half.Y},
	}
}

// Intersects reports whether the boxes overlap. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X &&
		r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// Contains reports whether p lies inside the box, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Height is Max.Y - Min.Y.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}
