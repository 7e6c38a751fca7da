package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// ShuttleConfig configures a [Shuttle] loader.
type ShuttleConfig struct {
	StaticRadius  float64
	DynamicRadius float64
	// Orbit is the farthest the dynamic circle travels from the center.
	Orbit     float64
	ScaleRate float64
	MaxLength float64

	StaticOffset  float64
	DynamicOffset float64

	OrbitDuration time.Duration
	SpinDuration  time.Duration
	SpinFrom      float64
	SpinTo        float64

	// Curve eases the orbit. Nil is linear.
	Curve func(float64) float64
}

func DefaultShuttleConfig() ShuttleConfig {
	return ShuttleConfig{
		StaticRadius:  20,
		DynamicRadius: 10,
		Orbit:         60,
		ScaleRate:     0.4,
		MaxLength:     40,
		StaticOffset:  30,
		DynamicOffset: 45,
		OrbitDuration: 800 * time.Millisecond,
		SpinDuration:  9600 * time.Millisecond,
		SpinFrom:      180,
		SpinTo:        1620,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Shuttle flings a small circle out of a big one and back, sweeping
// around it as it goes.
type Shuttle struct {
	base
	cfg     ShuttleConfig
	orbit   float64
	angle   float64
	stat    metaball.Circle
	dynamic metaball.Circle
}

func NewShuttle(cfg ShuttleConfig) *Shuttle {
	s := &Shuttle{base: newBase("shuttle"), cfg: cfg}
	s.reset()
	return s
}

func (s *Shuttle) reset() {
	sz := s.IntrinsicSize()
	s.stat = metaball.NewCircle(sz.Width/2, sz.Height/2, s.cfg.StaticRadius)
	s.dynamic = metaball.NewCircle(0, 0, s.cfg.DynamicRadius)
	s.orbit = 0
	s.angle = s.cfg.SpinFrom
	s.place()
}

func (s *Shuttle) place() {
	s.dynamic.SetCenter(graphics.PolarOffset(s.stat.Center(), s.orbit, s.angle))
}

func (s *Shuttle) IntrinsicSize() graphics.Size {
	d := 2 * (s.cfg.Orbit + s.cfg.DynamicRadius)
	return graphics.Size{Width: d, Height: d}
}

func (s *Shuttle) Start(sched *animation.Scheduler) error {
	s.begin(sched)
	s.reset()
	fling := animation.Interpolation{
		From:       0,
		To:         s.cfg.Orbit,
		Duration:   s.cfg.OrbitDuration,
		Curve:      s.ease(s.cfg.Curve),
		Repeat:     animation.Forever(),
		RepeatMode: animation.RepeatReverse,
	}
	if err := s.run(fling, func(r float64) { s.orbit = r; s.place() }, nil); err != nil {
		return s.fail("shuttle.Start", err)
	}
	spin := animation.Interpolation{
		From:     s.cfg.SpinFrom,
		To:       s.cfg.SpinTo,
		Duration: s.cfg.SpinDuration,
		Curve:    animation.LinearCurve,
		Repeat:   animation.Forever(),
	}
	if err := s.run(spin, func(a float64) { s.angle = a; s.place() }, nil); err != nil {
		return s.fail("shuttle.Start", err)
	}
	return nil
}

func (s *Shuttle) Paint(canvas graphics.Canvas) {
	adh := metaball.Adherence{MaxLength: s.cfg.MaxLength, MaxScaleRate: s.cfg.ScaleRate, GrowOnApproach: true}
	s.paintCentered(canvas, s.IntrinsicSize(), func() {
		s.drawCircle(canvas, s.dynamic)
		s.drawAdhering(canvas, adh, s.dynamic, s.stat, s.cfg.StaticOffset, s.cfg.DynamicOffset)
	})
}

// Dynamic returns the orbiting circle.
func (s *Shuttle) Dynamic() metaball.Circle { return s.dynamic }
