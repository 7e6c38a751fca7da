package graphics

import "fmt"

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo               // Draw line to point (x, y)
	PathOpQuadTo               // Draw quadratic curve to (x2, y2) via control (x1, y1)
	PathOpClose                // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpQuadTo:
		return "quad_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], QuadTo=[x1,y1,x2,y2]
}

// End returns the point the command finishes on. Close has no point of its
// own and reports false.
func (c PathCommand) End() (Offset, bool) {
	n := len(c.Args)
	if c.Op == PathOpClose || n < 2 {
		return Offset{}, false
	}
	return Offset{X: c.Args[n-2], Y: c.Args[n-1]}, true
}

// Path represents a vector path for filling arbitrary shapes.
//
// Build paths using MoveTo, LineTo, QuadTo and Close, then hand the path to
// Canvas.DrawPath.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpMoveTo,
		Args: []float64{x, y},
	})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpLineTo,
		Args: []float64{x, y},
	})
}

// QuadTo adds a quadratic bezier curve from the current point to (x2, y2)
// with control point (x1, y1).
func (p *Path) QuadTo(x1, y1, x2, y2 float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpQuadTo,
		Args: []float64{x1, y1, x2, y2},
	})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{
		Op: PathOpClose,
	})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.Commands = p.Commands[:0]
}

// IsClosed reports whether every subpath ends where it started, either
// through an explicit Close or a final segment landing on the subpath origin.
func (p *Path) IsClosed() bool {
	if p.IsEmpty() {
		return false
	}
	var start, last Offset
	open := false
	for _, cmd := range p.Commands {
		switch cmd.Op {
		case PathOpMoveTo:
			if open && !last.ApproxEqual(start) {
				return false
			}
			start, _ = cmd.End()
			last = start
			open = true
		case PathOpClose:
			last = start
			open = false
		default:
			last, _ = cmd.End()
		}
	}
	return !open || last.ApproxEqual(start)
}
