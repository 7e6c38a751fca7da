package metaball

import (
	"math"

	"github.com/go-drift/metaloader/pkg/errors"
	"github.com/go-drift/metaloader/pkg/graphics"
)

// ClosedPath is the connector outline between two circles. It is a value
// recomputed every frame and carries no identity between frames.
type ClosedPath struct {
	Position Position

	P1, P2, P3, P4 graphics.Offset
	Ctrl1, Ctrl2   graphics.Offset
}

// Path returns the outline as drawable path commands:
// moveTo(P1) quadTo(Ctrl1, P2) lineTo(P4) quadTo(Ctrl2, P3) lineTo(P1).
func (cp ClosedPath) Path() *graphics.Path {
	p := graphics.NewPath()
	cp.AppendTo(p)
	return p
}

// AppendTo writes the outline into an existing path, letting a loader reuse
// one path allocation across frames.
func (cp ClosedPath) AppendTo(p *graphics.Path) {
	p.MoveTo(cp.P1.X, cp.P1.Y)
	p.QuadTo(cp.Ctrl1.X, cp.Ctrl1.Y, cp.P2.X, cp.P2.Y)
	p.LineTo(cp.P4.X, cp.P4.Y)
	p.QuadTo(cp.Ctrl2.X, cp.Ctrl2.Y, cp.P3.X, cp.P3.Y)
	p.LineTo(cp.P1.X, cp.P1.Y)
}

// Solve computes the connector between c1 and c2. offset1 and offset2 are
// the attachment angles in degrees for each circle: larger offsets spread
// the attachment points further around the circumference.
//
// Concentric circles violate the precondition and return an error wrapping
// errors.ErrConcentric; callers should draw the pair unfused for that frame.
func Solve(c1 Circle, offset1 float64, c2 Circle, offset2 float64) (ClosedPath, error) {
	dx := c1.X - c2.X
	dy := c1.Y - c2.Y

	pos := Classify(dx, dy)
	if pos == Concentric {
		return ClosedPath{}, errors.Precondition("metaball.Solve", errors.ErrConcentric)
	}

	var theta float64
	if !pos.IsAxisAligned() {
		theta = graphics.Degrees(math.Atan(math.Abs(dy) / math.Abs(dx)))
	}

	cp := ClosedPath{Position: pos}
	cp.P1, cp.P2, cp.P3, cp.P4 = pos.endpoints(c1, offset1, c2, offset2, theta)

	if c1.Radius > c2.Radius {
		cp.Ctrl1 = graphics.Midpoint(cp.P2, cp.P3)
		cp.Ctrl2 = graphics.Midpoint(cp.P1, cp.P4)
	} else {
		cp.Ctrl1 = graphics.Midpoint(cp.P1, cp.P4)
		cp.Ctrl2 = graphics.Midpoint(cp.P2, cp.P3)
	}
	return cp, nil
}
