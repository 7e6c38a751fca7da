package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Distance returns the euclidean distance between two points.
func (o Offset) Distance(other Offset) float64 {
	return math.Hypot(o.X-other.X, o.Y-other.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Offset) Offset {
	return Offset{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PolarOffset returns the point at the given distance from center along
// angle, measured in degrees clockwise from the positive X axis (screen
// coordinates, Y grows downward).
func PolarOffset(center Offset, distance, degrees float64) Offset {
	rad := Radians(degrees)
	return Offset{
		X: center.X + distance*math.Cos(rad),
		Y: center.Y + distance*math.Sin(rad),
	}
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// ApproxEqual reports whether two offsets match within a small tolerance.
func (o Offset) ApproxEqual(other Offset) bool {
	return floatEqual(o.X, other.X) && floatEqual(o.Y, other.Y)
}
