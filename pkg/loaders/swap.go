package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// SwapConfig configures a [Swap] loader.
type SwapConfig struct {
	Count    int
	Radius   float64
	Gap      float64
	Duration time.Duration

	// Curve eases each pair swap. Nil is linear.
	Curve func(float64) float64
}

func DefaultSwapConfig() SwapConfig {
	return SwapConfig{
		Count:    3,
		Radius:   6,
		Gap:      18,
		Duration: 600 * time.Millisecond,
		Curve:    animation.AccelerateDecelerate,
	}
}

// Swap rolls each neighboring pair half a turn around their midpoint, one
// pair after the other, left to right and around again.
type Swap struct {
	base
	cfg     SwapConfig
	circles []metaball.Circle
}

func NewSwap(cfg SwapConfig) *Swap {
	s := &Swap{base: newBase("swap"), cfg: cfg}
	s.reset()
	return s
}

func (s *Swap) homeX(i int) float64 {
	return s.cfg.Radius + (s.cfg.Gap+2*s.cfg.Radius)*float64(i)
}

func (s *Swap) reset() {
	y := s.IntrinsicSize().Height / 2
	s.circles = make([]metaball.Circle, max(s.cfg.Count, 0))
	for i := range s.circles {
		s.circles[i] = metaball.NewCircle(s.homeX(i), y, s.cfg.Radius)
	}
}

func (s *Swap) IntrinsicSize() graphics.Size {
	n := max(s.cfg.Count, 1)
	return graphics.Size{
		Width:  float64(n-1)*(s.cfg.Gap+2*s.cfg.Radius) + 2*s.cfg.Radius,
		Height: s.cfg.Gap + 4*s.cfg.Radius,
	}
}

func (s *Swap) Start(sched *animation.Scheduler) error {
	if s.cfg.Count < 2 {
		return s.configError("swap needs at least 2 circles, got %d", s.cfg.Count)
	}
	s.begin(sched)
	s.reset()
	r := s.relay(s.cfg.Count-1, animation.LoopRestart, s.pair)
	if err := r.Start(); err != nil {
		return s.fail("swap.Start", err)
	}
	return nil
}

// pair turns circles i and i+1 from 0 to 180 degrees about their midpoint.
// The pair ends up trading slots, which looks the same as each circle
// sitting on its own, so the final tick snaps them home.
func (s *Swap) pair(i int, _ bool) (animation.Interpolation, func(float64)) {
	left, right := &s.circles[i], &s.circles[i+1]
	mid := graphics.Offset{X: (s.homeX(i) + s.homeX(i+1)) / 2, Y: s.IntrinsicSize().Height / 2}
	arm := s.cfg.Gap/2 + s.cfg.Radius
	desc := animation.Interpolation{
		From:     0,
		To:       180,
		Duration: s.cfg.Duration,
		Curve:    s.ease(s.cfg.Curve),
	}
	return desc, func(angle float64) {
		left.SetCenter(graphics.PolarOffset(mid, arm, angle+180))
		right.SetCenter(graphics.PolarOffset(mid, arm, angle))
		if angle == 180 {
			s.snapHome(i, i+1)
		}
	}
}

// snapHome puts the given circles exactly on their home slots.
func (s *Swap) snapHome(indices ...int) {
	y := s.IntrinsicSize().Height / 2
	for _, i := range indices {
		s.circles[i].X = s.homeX(i)
		s.circles[i].Y = y
	}
}

func (s *Swap) Paint(canvas graphics.Canvas) {
	s.paintCentered(canvas, s.IntrinsicSize(), func() {
		for _, circle := range s.circles {
			s.drawCircle(canvas, circle)
		}
	})
}

// Circles returns a copy of the current circles.
func (s *Swap) Circles() []metaball.Circle {
	return append([]metaball.Circle(nil), s.circles...)
}
