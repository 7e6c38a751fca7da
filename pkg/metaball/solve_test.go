package metaball

import (
	"math"
	"testing"

	"github.com/go-drift/metaloader/pkg/errors"
	"github.com/go-drift/metaloader/pkg/graphics"
)

const tolerance = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func nearOffset(a, b graphics.Offset) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

// placements puts c1 in every position around a fixed c2.
var placements = []struct {
	pos    Position
	c1, c2 Circle
}{
	{SameXBelow, NewCircle(50, 80, 10), NewCircle(50, 50, 6)},
	{SameXAbove, NewCircle(50, 20, 10), NewCircle(50, 50, 6)},
	{SameYRight, NewCircle(80, 50, 10), NewCircle(50, 50, 6)},
	{SameYLeft, NewCircle(20, 50, 10), NewCircle(50, 50, 6)},
	{QuadrantBelowRight, NewCircle(70, 65, 10), NewCircle(50, 50, 6)},
	{QuadrantAboveLeft, NewCircle(30, 35, 10), NewCircle(50, 50, 6)},
	{QuadrantBelowLeft, NewCircle(30, 65, 10), NewCircle(50, 50, 6)},
	{QuadrantAboveRight, NewCircle(70, 35, 6), NewCircle(50, 50, 10)},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Position
	}{
		{0, 0, Concentric},
		{0, 3, SameXBelow},
		{0, -3, SameXAbove},
		{3, 0, SameYRight},
		{-3, 0, SameYLeft},
		{2, 5, QuadrantBelowRight},
		{-2, -5, QuadrantAboveLeft},
		{-2, 5, QuadrantBelowLeft},
		{2, -5, QuadrantAboveRight},
	}
	for _, tt := range tests {
		if got := Classify(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestSolveConcentricIsPrecondition(t *testing.T) {
	c := NewCircle(10, 10, 4)
	_, err := Solve(c, 45, NewCircle(10, 10, 8), 45)
	if err == nil {
		t.Fatal("expected error for concentric circles")
	}
	if !errors.Is(err, errors.ErrConcentric) {
		t.Errorf("error %v does not wrap ErrConcentric", err)
	}
	if !errors.IsPrecondition(err) {
		t.Errorf("error %v is not a precondition violation", err)
	}
}

// With zero offsets every endpoint sits where the center line crosses its
// circle, which pins down each row of the case table.
func TestSolveZeroOffsetFacesOtherCircle(t *testing.T) {
	for _, tt := range placements {
		t.Run(tt.pos.String(), func(t *testing.T) {
			cp, err := Solve(tt.c1, 0, tt.c2, 0)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if cp.Position != tt.pos {
				t.Errorf("Position = %v, want %v", cp.Position, tt.pos)
			}
			d := tt.c1.Distance(tt.c2)
			ux := (tt.c2.X - tt.c1.X) / d
			uy := (tt.c2.Y - tt.c1.Y) / d
			face1 := graphics.Offset{X: tt.c1.X + ux*tt.c1.Radius, Y: tt.c1.Y + uy*tt.c1.Radius}
			face2 := graphics.Offset{X: tt.c2.X - ux*tt.c2.Radius, Y: tt.c2.Y - uy*tt.c2.Radius}
			for name, got := range map[string]graphics.Offset{"P1": cp.P1, "P3": cp.P3} {
				if !nearOffset(got, face1) {
					t.Errorf("%s = %+v, want %+v", name, got, face1)
				}
			}
			for name, got := range map[string]graphics.Offset{"P2": cp.P2, "P4": cp.P4} {
				if !nearOffset(got, face2) {
					t.Errorf("%s = %+v, want %+v", name, got, face2)
				}
			}
		})
	}
}

// angleTo returns the angle in degrees between (p - from) and (to - from).
func angleTo(from, p, to graphics.Offset) float64 {
	ax, ay := p.X-from.X, p.Y-from.Y
	bx, by := to.X-from.X, to.Y-from.Y
	cos := (ax*bx + ay*by) / (math.Hypot(ax, ay) * math.Hypot(bx, by))
	return graphics.Degrees(math.Acos(math.Max(-1, math.Min(1, cos))))
}

// side returns the sign of p relative to the directed line a->b.
func side(a, b, p graphics.Offset) float64 {
	return math.Copysign(1, (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X))
}

func TestSolveEndpointsHonorOffsets(t *testing.T) {
	const offset1, offset2 = 20.0, 45.0
	for _, tt := range placements {
		t.Run(tt.pos.String(), func(t *testing.T) {
			cp, err := Solve(tt.c1, offset1, tt.c2, offset2)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			o1, o2 := tt.c1.Center(), tt.c2.Center()

			checks := []struct {
				name   string
				p      graphics.Offset
				center graphics.Offset
				other  graphics.Offset
				radius float64
				offset float64
			}{
				{"P1", cp.P1, o1, o2, tt.c1.Radius, offset1},
				{"P3", cp.P3, o1, o2, tt.c1.Radius, offset1},
				{"P2", cp.P2, o2, o1, tt.c2.Radius, offset2},
				{"P4", cp.P4, o2, o1, tt.c2.Radius, offset2},
			}
			for _, c := range checks {
				if r := c.p.Distance(c.center); !near(r, c.radius) {
					t.Errorf("%s is %v from its center, want radius %v", c.name, r, c.radius)
				}
				if a := angleTo(c.center, c.p, c.other); math.Abs(a-c.offset) > 1e-6 {
					t.Errorf("%s sits %v degrees off the center line, want %v", c.name, a, c.offset)
				}
			}

			// P1/P2 share one side of the center line and P3/P4 the other,
			// so the outline never crosses itself.
			s1, s2 := side(o1, o2, cp.P1), side(o1, o2, cp.P2)
			s3, s4 := side(o1, o2, cp.P3), side(o1, o2, cp.P4)
			if s1 != s2 || s3 != s4 || s1 == s3 {
				t.Errorf("endpoint sides P1=%v P2=%v P3=%v P4=%v", s1, s2, s3, s4)
			}
		})
	}
}

func TestSolveVerticalCasesMirror(t *testing.T) {
	pairs := []struct{ x, y, d, r1, r2, o1, o2 float64 }{
		{50, 50, 30, 10, 6, 45, 45},
		{0, 0, 12.5, 3, 9, 20, 30},
		{-7, 100, 0.5, 1, 1, 0, 60},
	}
	mirror := func(p graphics.Offset, midY float64) graphics.Offset {
		return graphics.Offset{X: p.X, Y: 2*midY - p.Y}
	}
	for _, pr := range pairs {
		below, err := Solve(NewCircle(pr.x, pr.y+pr.d, pr.r1), pr.o1, NewCircle(pr.x, pr.y, pr.r2), pr.o2)
		if err != nil {
			t.Fatalf("Solve below: %v", err)
		}
		above, err := Solve(NewCircle(pr.x, pr.y, pr.r1), pr.o1, NewCircle(pr.x, pr.y+pr.d, pr.r2), pr.o2)
		if err != nil {
			t.Fatalf("Solve above: %v", err)
		}
		if below.Position != SameXBelow || above.Position != SameXAbove {
			t.Fatalf("positions = %v/%v", below.Position, above.Position)
		}
		midY := pr.y + pr.d/2
		got := []graphics.Offset{above.P1, above.P2, above.P3, above.P4, above.Ctrl1, above.Ctrl2}
		want := []graphics.Offset{below.P1, below.P2, below.P3, below.P4, below.Ctrl1, below.Ctrl2}
		for i := range got {
			if m := mirror(want[i], midY); !nearOffset(got[i], m) {
				t.Errorf("pair %+v point %d: above %+v, mirrored below %+v", pr, i, got[i], m)
			}
		}
	}
}

func TestSolveControlPointsFavorLargerCircle(t *testing.T) {
	big, small := NewCircle(0, 0, 20), NewCircle(30, 10, 5)

	cp, err := Solve(big, 30, small, 45)
	if err != nil {
		t.Fatal(err)
	}
	if !nearOffset(cp.Ctrl1, graphics.Midpoint(cp.P2, cp.P3)) || !nearOffset(cp.Ctrl2, graphics.Midpoint(cp.P1, cp.P4)) {
		t.Errorf("r1 > r2: controls %+v %+v", cp.Ctrl1, cp.Ctrl2)
	}

	cp, err = Solve(small, 45, big, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !nearOffset(cp.Ctrl1, graphics.Midpoint(cp.P1, cp.P4)) || !nearOffset(cp.Ctrl2, graphics.Midpoint(cp.P2, cp.P3)) {
		t.Errorf("r1 <= r2: controls %+v %+v", cp.Ctrl1, cp.Ctrl2)
	}
}

func TestClosedPathIsClosed(t *testing.T) {
	for _, tt := range placements {
		cp, err := Solve(tt.c1, 45, tt.c2, 30)
		if err != nil {
			t.Fatalf("%v: %v", tt.pos, err)
		}
		path := cp.Path()
		if len(path.Commands) != 5 {
			t.Fatalf("%v: %d commands, want 5", tt.pos, len(path.Commands))
		}
		wantOps := []graphics.PathOp{
			graphics.PathOpMoveTo, graphics.PathOpQuadTo, graphics.PathOpLineTo,
			graphics.PathOpQuadTo, graphics.PathOpLineTo,
		}
		for i, op := range wantOps {
			if path.Commands[i].Op != op {
				t.Errorf("%v: command %d = %v, want %v", tt.pos, i, path.Commands[i].Op, op)
			}
		}
		first, _ := path.Commands[0].End()
		last, _ := path.Commands[len(path.Commands)-1].End()
		if first != cp.P1 || last != cp.P1 {
			t.Errorf("%v: contour starts at %+v and ends at %+v, want P1 %+v", tt.pos, first, last, cp.P1)
		}
		if !path.IsClosed() {
			t.Errorf("%v: path not closed", tt.pos)
		}
	}
}

func TestAppendToReusesPath(t *testing.T) {
	cp, err := Solve(NewCircle(0, 0, 5), 45, NewCircle(8, 0, 5), 45)
	if err != nil {
		t.Fatal(err)
	}
	p := graphics.NewPath()
	cp.AppendTo(p)
	p.Clear()
	cp.AppendTo(p)
	if len(p.Commands) != 5 {
		t.Errorf("reused path has %d commands, want 5", len(p.Commands))
	}
}
