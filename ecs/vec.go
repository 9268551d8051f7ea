package ecs

import "math"

// Vec2 is a point or extent in world space
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for constructing a Vec2
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the component-wise difference of two vectors
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales the vector by a scalar
func (v Vec2) Mul(scalar float64) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Length returns the euclidean length of the vector
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Floor rounds both components down
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Box is an axis-aligned rectangle covering [Pos, Pos+Size)
type Box struct {
	Pos  Vec2
	Size Vec2
}

// Center returns the midpoint of the box
func (b Box) Center() Vec2 {
	return Vec2{X: b.Pos.X + b.Size.X/2, Y: b.Pos.Y + b.Size.Y/2}
}

// Right returns the exclusive right edge
func (b Box) Right() float64 {
	return b.Pos.X + b.Size.X
}

// Bottom returns the exclusive bottom edge
func (b Box) Bottom() float64 {
	return b.Pos.Y + b.Size.Y
}

// Overlaps reports whether two half-open boxes intersect on both axes.
// Boxes that only share an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	return b.Pos.X < other.Right() &&
		b.Right() > other.Pos.X &&
		b.Pos.Y < other.Bottom() &&
		b.Bottom() > other.Pos.Y
}

// Penetration returns the displacement that pushes box a out of box b along
// the axis of least penetration. Ties resolve on y. A zero center delta on
// the chosen axis pushes in the negative direction.
func Penetration(a, b Box) Vec2 {
	ca, cb := a.Center(), b.Center()
	dx := ca.X - cb.X
	dy := ca.Y - cb.Y

	overlapX := (a.Size.X+b.Size.X)/2 - math.Abs(dx)
	overlapY := (a.Size.Y+b.Size.Y)/2 - math.Abs(dy)

	if overlapX < overlapY {
		if dx > 0 {
			return Vec2{X: overlapX}
		}
		return Vec2{X: -overlapX}
	}

	if dy > 0 {
		return Vec2{Y: overlapY}
	}
	return Vec2{Y: -overlapY}
}
