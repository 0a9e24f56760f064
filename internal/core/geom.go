// Package core provides geometry, angle helpers and the screen buffer shared
// by the simulation and the terminal front end. It has no external
// dependencies (especially no Bubble Tea) so game logic stays pure and
// testable.
package core

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RectF is a floating-point axis-aligned rectangle in field units.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRectF creates a rectangle from its top-left corner and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal centre.
func (r RectF) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical centre.
func (r RectF) CenterY() float64 {
	return r.Y + r.H/2
}

// Contains reports whether (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive, like Rect.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset returns the rectangle translated by (dx, dy).
func (r RectF) Offset(dx, dy float64) RectF {
	r.X += dx
	r.Y += dy
	return r
}
