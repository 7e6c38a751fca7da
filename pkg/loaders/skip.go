package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// SkipConfig configures a [Skip] loader.
type SkipConfig struct {
	Count  int
	Radius float64
	Gap    float64
	// Hop is how far each circle rises.
	Hop float64
	// Duration is the time of one rise or one fall.
	Duration time.Duration

	// Curve eases every rise and fall. Nil is linear.
	Curve func(float64) float64
}

func DefaultSkipConfig() SkipConfig {
	return SkipConfig{
		Count:    4,
		Radius:   6,
		Gap:      5,
		Hop:      10,
		Duration: 200 * time.Millisecond,
		Curve:    animation.AccelerateDecelerate,
	}
}

// Skip hops the circles one after another, like a wave running along the
// row. Each circle starts falling as its right neighbor starts rising.
type Skip struct {
	base
	cfg     SkipConfig
	circles []metaball.Circle
	rise    *animation.Relay
}

func NewSkip(cfg SkipConfig) *Skip {
	s := &Skip{base: newBase("skip"), cfg: cfg}
	s.reset()
	return s
}

// baseY is the resting height of the circle centers.
func (s *Skip) baseY() float64 {
	return s.cfg.Hop + s.cfg.Radius
}

func (s *Skip) reset() {
	s.circles = make([]metaball.Circle, max(s.cfg.Count, 0))
	for i := range s.circles {
		x := s.cfg.Radius + (s.cfg.Gap+2*s.cfg.Radius)*float64(i)
		s.circles[i] = metaball.NewCircle(x, s.baseY(), s.cfg.Radius)
	}
}

func (s *Skip) IntrinsicSize() graphics.Size {
	n := max(s.cfg.Count, 1)
	return graphics.Size{
		Width:  float64(n-1)*(s.cfg.Gap+2*s.cfg.Radius) + 2*s.cfg.Radius,
		Height: s.cfg.Hop + 2*s.cfg.Radius,
	}
}

func (s *Skip) Start(sched *animation.Scheduler) error {
	if s.cfg.Count < 1 {
		return s.configError("count %d", s.cfg.Count)
	}
	s.begin(sched)
	s.reset()
	s.rise = s.relay(s.cfg.Count, animation.LoopOnce, func(i int, _ bool) (animation.Interpolation, func(float64)) {
		return s.hop(i, s.baseY(), s.baseY()-s.cfg.Hop)
	})
	s.rise.OnAdvance = func(i int, _ bool) {
		if err := s.fall(i); err != nil {
			s.fail("skip.fall", err)
		}
	}
	if err := s.rise.Start(); err != nil {
		return s.fail("skip.Start", err)
	}
	return nil
}

func (s *Skip) hop(i int, from, to float64) (animation.Interpolation, func(float64)) {
	circle := &s.circles[i]
	desc := animation.Interpolation{
		From:     from,
		To:       to,
		Duration: s.cfg.Duration,
		Curve:    s.ease(s.cfg.Curve),
	}
	return desc, func(y float64) { circle.Y = y }
}

// fall drops circle i back to rest. The last fall starts the next wave.
func (s *Skip) fall(i int) error {
	var onComplete func()
	if i == len(s.circles)-1 {
		onComplete = func() { s.restart("skip.rise", s.rise.Start) }
	}
	desc, tick := s.hop(i, s.baseY(), s.baseY()-s.cfg.Hop)
	return s.run(desc.Reversed(), tick, onComplete)
}

func (s *Skip) Paint(canvas graphics.Canvas) {
	s.paintCentered(canvas, s.IntrinsicSize(), func() {
		for _, circle := range s.circles {
			s.drawCircle(canvas, circle)
		}
	})
}

// Circles returns a copy of the current circles.
func (s *Skip) Circles() []metaball.Circle {
	return append([]metaball.Circle(nil), s.circles...)
}
