package metaball

import (
	"fmt"
	"math"

	"github.com/go-drift/metaloader/pkg/graphics"
)

// Position describes where the first circle sits relative to the second,
// in screen coordinates (Y grows downward).
type Position int

const (
	// Concentric means both centers coincide; no connector exists.
	Concentric Position = iota
	// SameXBelow: dx == 0, dy > 0.
	SameXBelow
	// SameXAbove: dx == 0, dy < 0.
	SameXAbove
	// SameYRight: dx > 0, dy == 0.
	SameYRight
	// SameYLeft: dx < 0, dy == 0.
	SameYLeft
	// QuadrantBelowRight: dx > 0, dy > 0.
	QuadrantBelowRight
	// QuadrantAboveLeft: dx < 0, dy < 0.
	QuadrantAboveLeft
	// QuadrantBelowLeft: dx < 0, dy > 0.
	QuadrantBelowLeft
	// QuadrantAboveRight: dx > 0, dy < 0.
	QuadrantAboveRight
)

var positionNames = [...]string{
	"concentric",
	"same_x_below", "same_x_above", "same_y_right", "same_y_left",
	"below_right", "above_left", "below_left", "above_right",
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p >= 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// IsAxisAligned reports whether the centers share an X or Y coordinate.
func (p Position) IsAxisAligned() bool {
	return p >= SameXBelow && p <= SameYLeft
}

// Classify maps the center difference (first minus second) to a Position.
// Comparisons are exact: a pair one ulp off an axis is a quadrant case.
func Classify(dx, dy float64) Position {
	switch {
	case dx == 0 && dy == 0:
		return Concentric
	case dx == 0 && dy > 0:
		return SameXBelow
	case dx == 0:
		return SameXAbove
	case dy == 0 && dx > 0:
		return SameYRight
	case dy == 0:
		return SameYLeft
	case dx > 0 && dy > 0:
		return QuadrantBelowRight
	case dx < 0 && dy < 0:
		return QuadrantAboveLeft
	case dx < 0:
		return QuadrantBelowLeft
	default:
		return QuadrantAboveRight
	}
}

// on returns the point of c at unit direction (ux, uy) scaled by the radius.
func on(c Circle, ux, uy float64) graphics.Offset {
	return graphics.Offset{X: c.X + c.Radius*ux, Y: c.Y + c.Radius*uy}
}

func sincos(degrees float64) (sin, cos float64) {
	return math.Sincos(graphics.Radians(degrees))
}

// endpoints evaluates the case table. P1 and P3 lie on c1, P2 and P4 on
// c2. theta is the acute angle of the center line in degrees and is only
// read by the quadrant cases.
func (p Position) endpoints(c1 Circle, offset1 float64, c2 Circle, offset2, theta float64) (p1, p2, p3, p4 graphics.Offset) {
	switch p {
	case SameXBelow:
		s1, k1 := sincos(offset1)
		s2, k2 := sincos(offset2)
		p2 = on(c2, -s2, k2)
		p4 = on(c2, s2, k2)
		p1 = on(c1, -s1, -k1)
		p3 = on(c1, s1, -k1)
	case SameXAbove:
		s1, k1 := sincos(offset1)
		s2, k2 := sincos(offset2)
		p2 = on(c2, -s2, -k2)
		p4 = on(c2, s2, -k2)
		p1 = on(c1, -s1, k1)
		p3 = on(c1, s1, k1)
	case SameYRight:
		s1, k1 := sincos(offset1)
		s2, k2 := sincos(offset2)
		p2 = on(c2, k2, s2)
		p4 = on(c2, k2, -s2)
		p1 = on(c1, -k1, s1)
		p3 = on(c1, -k1, -s1)
	case SameYLeft:
		s1, k1 := sincos(offset1)
		s2, k2 := sincos(offset2)
		p2 = on(c2, -k2, s2)
		p4 = on(c2, -k2, -s2)
		p1 = on(c1, k1, s1)
		p3 = on(c1, k1, -s1)
	default:
		// Quadrants: a is the center-line angle less the offset, b its
		// supplement less the offset.
		sa1, ka1 := sincos(theta - offset1)
		sb1, kb1 := sincos(180 - offset1 - theta)
		sa2, ka2 := sincos(theta - offset2)
		sb2, kb2 := sincos(180 - offset2 - theta)
		switch p {
		case QuadrantBelowRight:
			p2 = on(c2, -kb2, sb2)
			p4 = on(c2, ka2, sa2)
			p1 = on(c1, -ka1, -sa1)
			p3 = on(c1, kb1, -sb1)
		case QuadrantAboveLeft:
			p2 = on(c2, -ka2, -sa2)
			p4 = on(c2, kb2, -sb2)
			p1 = on(c1, -kb1, sb1)
			p3 = on(c1, ka1, sa1)
		case QuadrantBelowLeft:
			p2 = on(c2, -ka2, sa2)
			p4 = on(c2, kb2, sb2)
			p1 = on(c1, -kb1, -sb1)
			p3 = on(c1, ka1, -sa1)
		case QuadrantAboveRight:
			p2 = on(c2, -kb2, -sb2)
			p4 = on(c2, ka2, -sa2)
			p1 = on(c1, -ka1, sa1)
			p3 = on(c1, kb1, sb1)
		}
	}
	return p1, p2, p3, p4
}
