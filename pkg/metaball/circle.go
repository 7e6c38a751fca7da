package metaball

import "github.com/go-drift/metaloader/pkg/graphics"

// Circle is a mutable disc owned by a single loader.
//
// Radius is the radius drawn this frame. BaseRadius is the resting radius
// that distance-based scaling starts from; Angle is a free slot (degrees)
// used by orbiting circles to remember their position on a ring.
type Circle struct {
	X          float64
	Y          float64
	Radius     float64
	BaseRadius float64
	Angle      float64
}

// NewCircle returns a circle at (x, y) whose rendered and resting radius
// are both r.
func NewCircle(x, y, r float64) Circle {
	return Circle{X: x, Y: y, Radius: r, BaseRadius: r}
}

// Center returns the circle's center point.
func (c Circle) Center() graphics.Offset {
	return graphics.Offset{X: c.X, Y: c.Y}
}

// SetCenter moves the circle.
func (c *Circle) SetCenter(p graphics.Offset) {
	c.X, c.Y = p.X, p.Y
}

// Distance returns the distance between the two centers.
func (c Circle) Distance(other Circle) float64 {
	return c.Center().Distance(other.Center())
}

// Reset restores the rendered radius to the resting radius.
func (c *Circle) Reset() {
	c.Radius = c.BaseRadius
}
