package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// ScatterConfig configures a [Scatter] loader.
type ScatterConfig struct {
	MiddleRadius float64
	SmallCount   int
	SmallRadius  float64
	// ShrinkRate is the fraction the middle circle loses while the small
	// circles are out.
	ShrinkRate float64
	// Margin is how far past the middle's resting size the small circles
	// are thrown.
	Margin float64

	MiddleOffset float64
	SmallOffset  float64

	StartDelay    time.Duration
	ThrowDuration time.Duration
	OrbitDuration time.Duration
	Pause         time.Duration

	// Curve eases all scatter motion. Nil is linear.
	Curve func(float64) float64
}

func DefaultScatterConfig() ScatterConfig {
	return ScatterConfig{
		MiddleRadius:  40,
		SmallCount:    8,
		SmallRadius:   40.0 / 6,
		ShrinkRate:    0.4,
		Margin:        20,
		MiddleOffset:  20,
		SmallOffset:   45,
		StartDelay:    200 * time.Millisecond,
		ThrowDuration: 400 * time.Millisecond,
		OrbitDuration: 3600 * time.Millisecond,
		Pause:         200 * time.Millisecond,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Scatter throws small circles out of a big one, spins them around it
// while it shrinks, then reels them back in one by one.
type Scatter struct {
	base
	cfg    ScatterConfig
	middle metaball.Circle
	small  []metaball.Circle
	// orbit and angle place small[i] around the middle.
	orbit []float64
	angle []float64

	throw  *animation.Relay
	recall *animation.Relay
}

func NewScatter(cfg ScatterConfig) *Scatter {
	s := &Scatter{base: newBase("scatter"), cfg: cfg}
	s.reset()
	return s
}

func (s *Scatter) center() graphics.Offset {
	sz := s.IntrinsicSize()
	return graphics.Offset{X: sz.Width / 2, Y: sz.Height / 2}
}

// reach is the orbit radius of a thrown circle.
func (s *Scatter) reach() float64 {
	return (s.cfg.MiddleRadius-s.cfg.SmallRadius)*(1+s.cfg.ShrinkRate) + s.cfg.Margin
}

// tucked is the orbit radius that keeps a small circle just inside the
// middle one.
func (s *Scatter) tucked() float64 {
	return s.middle.Radius - s.cfg.SmallRadius
}

func (s *Scatter) reset() {
	c := s.center()
	s.middle = metaball.NewCircle(c.X, c.Y, s.cfg.MiddleRadius)
	n := max(s.cfg.SmallCount, 0)
	s.small = make([]metaball.Circle, n)
	s.orbit = make([]float64, n)
	s.angle = make([]float64, n)
	for i := range s.small {
		s.small[i] = metaball.NewCircle(c.X, c.Y, s.cfg.SmallRadius)
		s.small[i].Angle = 360 / float64(n) * float64(i)
		s.angle[i] = s.small[i].Angle
		s.orbit[i] = s.tucked()
		s.place(i)
	}
}

func (s *Scatter) place(i int) {
	s.small[i].SetCenter(graphics.PolarOffset(s.middle.Center(), s.orbit[i], s.angle[i]))
}

func (s *Scatter) IntrinsicSize() graphics.Size {
	d := 2 * (s.reach() + s.cfg.SmallRadius)
	return graphics.Size{Width: d, Height: d}
}

func (s *Scatter) Start(sched *animation.Scheduler) error {
	if s.cfg.SmallCount < 1 {
		return s.configError("small count %d", s.cfg.SmallCount)
	}
	s.begin(sched)
	s.reset()
	s.throw = s.relay(len(s.small), animation.LoopOnce, func(i int, _ bool) (animation.Interpolation, func(float64)) {
		return s.radial(i, s.reach())
	})
	s.recall = s.relay(len(s.small), animation.LoopOnce, func(i int, _ bool) (animation.Interpolation, func(float64)) {
		return s.radial(i, s.tucked())
	})
	s.after(s.cfg.StartDelay, func() { s.restart("scatter.out", s.out) })
	return nil
}

// radial moves small[i] from its current orbit radius to target.
func (s *Scatter) radial(i int, target float64) (animation.Interpolation, func(float64)) {
	desc := animation.Interpolation{
		From:     s.orbit[i],
		To:       target,
		Duration: s.cfg.ThrowDuration,
		Curve:    s.ease(s.cfg.Curve),
	}
	return desc, func(r float64) {
		s.orbit[i] = r
		s.place(i)
	}
}

// out throws the small circles in index order while the whole set spins
// and the middle shrinks.
func (s *Scatter) out() error {
	if err := s.throw.Start(); err != nil {
		return err
	}
	return s.spin(s.middle.Radius*(1-s.cfg.ShrinkRate), func() {
		s.restart("scatter.in", s.in)
	})
}

// in recalls the small circles last to first while the middle recovers.
func (s *Scatter) in() error {
	if err := s.recall.StartReverse(); err != nil {
		return err
	}
	return s.spin(s.cfg.MiddleRadius, func() {
		s.middle.Reset()
		s.after(s.cfg.Pause, func() { s.restart("scatter.out", s.out) })
	})
}

// spin turns every small circle a full lap and resizes the middle to
// radius, calling done when all of it has finished.
func (s *Scatter) spin(radius float64, done func()) error {
	g := s.group(done)
	for i := range s.small {
		desc := animation.Interpolation{
			From:     s.angle[i],
			To:       s.angle[i] + 360,
			Duration: s.cfg.OrbitDuration,
			Curve:    s.ease(s.cfg.Curve),
		}
		err := s.groupRun(g, desc, func(a float64) {
			s.angle[i] = a
			s.place(i)
		})
		if err != nil {
			return err
		}
	}
	tw := animation.TweenFloat64(s.middle.Radius, radius)
	desc := animation.Interpolation{
		From:     0,
		To:       1,
		Duration: s.cfg.OrbitDuration,
		Curve:    s.ease(s.cfg.Curve),
	}
	return s.groupRun(g, desc, func(t float64) { s.middle.Radius = tw.Evaluate(t) })
}

// adherence fuses a small circle to the middle one while its center is
// closer than the middle radius plus three small radii.
func (s *Scatter) adherence() metaball.Adherence {
	return metaball.Adherence{MaxLength: s.middle.Radius + 3*s.cfg.SmallRadius}
}

func (s *Scatter) Paint(canvas graphics.Canvas) {
	s.paintCentered(canvas, s.IntrinsicSize(), func() {
		s.drawCircle(canvas, s.middle)
		adh := s.adherence()
		for _, small := range s.small {
			s.drawCircle(canvas, small)
			if adh.Within(s.middle, small) {
				s.drawConnector(canvas, s.middle, s.cfg.MiddleOffset, small, s.cfg.SmallOffset)
			}
		}
	})
}

// Middle returns the middle circle.
func (s *Scatter) Middle() metaball.Circle { return s.middle }

// Small returns a copy of the orbiting circles.
func (s *Scatter) Small() []metaball.Circle {
	return append([]metaball.Circle(nil), s.small...)
}
