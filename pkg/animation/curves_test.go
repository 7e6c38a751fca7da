package animation

import (
	"math"
	"testing"
)

func TestCurveEndpoints(t *testing.T) {
	for _, name := range CurveNames() {
		curve, _ := CurveNamed(name)
		if got := curve(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := curve(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v", name, got)
		}
	}
}

func TestAccelerateDecelerateShape(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		x := float64(i) / 100
		y := AccelerateDecelerate(x)
		if y < prev {
			t.Fatalf("not monotonic at %v", x)
		}
		prev = y
		if mirror := AccelerateDecelerate(1 - x); math.Abs(y+mirror-1) > 1e-9 {
			t.Errorf("f(%v)+f(%v) = %v, want 1", x, 1-x, y+mirror)
		}
	}
	if AccelerateDecelerate(0.1) >= 0.1 {
		t.Error("curve should start slower than linear")
	}
}

func TestCurveNamed(t *testing.T) {
	tests := []struct {
		name string
		want func(float64) float64
		ok   bool
	}{
		{"linear", LinearCurve, true},
		{"accelerate_decelerate", AccelerateDecelerate, true},
		{"Ease-In-Out", EaseInOut, true},
		{" ease_out ", EaseOut, true},
		{"bounce", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		got, ok := CurveNamed(tt.name)
		if ok != tt.ok {
			t.Errorf("CurveNamed(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		for _, x := range []float64{0.1, 0.3, 0.7} {
			if got(x) != tt.want(x) {
				t.Errorf("CurveNamed(%q)(%v) = %v, want %v", tt.name, x, got(x), tt.want(x))
			}
		}
	}
	if names := CurveNames(); len(names) != 6 || names[0] != "accelerate_decelerate" {
		t.Errorf("CurveNames() = %v", names)
	}
}
