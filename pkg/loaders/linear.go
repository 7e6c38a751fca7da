package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// LinearConfig configures a [Linear] loader.
type LinearConfig struct {
	StaticRadius float64
	// PulseRate is how much the static circle grows at the top of a pulse.
	PulseRate     float64
	DynamicCount  int
	DynamicRadius float64
	Gap           float64
	MaxLength     float64
	Offset        float64
	SweepDuration time.Duration
	PulseDuration time.Duration

	// Curve eases the sweep and the pulse. Nil is linear.
	Curve func(float64) float64
}

func DefaultLinearConfig() LinearConfig {
	return LinearConfig{
		StaticRadius:  10,
		PulseRate:     0.5,
		DynamicCount:  2,
		DynamicRadius: 20.0 / 3,
		Gap:           20,
		MaxLength:     35,
		Offset:        45,
		SweepDuration: 1600 * time.Millisecond,
		PulseDuration: 800 * time.Millisecond,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Linear sweeps a short train of small circles through a pulsing static
// one and back.
type Linear struct {
	base
	cfg     LinearConfig
	stat    metaball.Circle
	dynamic []metaball.Circle
}

func NewLinear(cfg LinearConfig) *Linear {
	l := &Linear{base: newBase("linear"), cfg: cfg}
	l.reset()
	return l
}

// step is the distance between neighboring rest positions.
func (l *Linear) step() float64 {
	return 2*l.cfg.StaticRadius + l.cfg.Gap
}

func (l *Linear) reset() {
	sz := l.IntrinsicSize()
	l.stat = metaball.NewCircle(sz.Width/2, sz.Height/2, l.cfg.StaticRadius)
	l.dynamic = make([]metaball.Circle, max(l.cfg.DynamicCount, 0))
	for i := range l.dynamic {
		x := l.stat.X - l.step()*float64(i+1)
		l.dynamic[i] = metaball.NewCircle(x, l.stat.Y, l.cfg.DynamicRadius)
	}
}

func (l *Linear) IntrinsicSize() graphics.Size {
	n := max(l.cfg.DynamicCount, 0)
	return graphics.Size{
		Width:  float64(2*n)*l.step() + 2*l.cfg.StaticRadius,
		Height: 2 * l.cfg.StaticRadius * (1 + l.cfg.PulseRate),
	}
}

func (l *Linear) Start(s *animation.Scheduler) error {
	if l.cfg.DynamicCount < 1 {
		return l.configError("dynamic count %d", l.cfg.DynamicCount)
	}
	l.begin(s)
	l.reset()
	travel := float64(l.cfg.DynamicCount+1) * l.step()
	for i := range l.dynamic {
		circle := &l.dynamic[i]
		sweep := animation.Interpolation{
			From:       circle.X,
			To:         circle.X + travel,
			Duration:   l.cfg.SweepDuration,
			Curve:      l.ease(l.cfg.Curve),
			Repeat:     animation.Forever(),
			RepeatMode: animation.RepeatReverse,
		}
		if err := l.run(sweep, func(x float64) { circle.X = x }, nil); err != nil {
			return l.fail("linear.Start", err)
		}
	}
	pulse := animation.Interpolation{
		From:       l.cfg.StaticRadius,
		To:         l.cfg.StaticRadius * (1 + l.cfg.PulseRate),
		Duration:   l.cfg.PulseDuration,
		Curve:      l.ease(l.cfg.Curve),
		Repeat:     animation.Forever(),
		RepeatMode: animation.RepeatReverse,
	}
	if err := l.run(pulse, func(r float64) { l.stat.Radius = r }, nil); err != nil {
		return l.fail("linear.Start", err)
	}
	return nil
}

func (l *Linear) Paint(canvas graphics.Canvas) {
	adh := metaball.Adherence{MaxLength: l.cfg.MaxLength}
	l.paintCentered(canvas, l.IntrinsicSize(), func() {
		l.drawCircle(canvas, l.stat)
		for _, d := range l.dynamic {
			l.drawCircle(canvas, d)
			if adh.Within(l.stat, d) {
				l.drawConnector(canvas, l.stat, l.cfg.Offset, d, l.cfg.Offset)
			}
		}
	})
}

// Static returns the pulsing circle.
func (l *Linear) Static() metaball.Circle { return l.stat }

// Dynamic returns a copy of the sweeping circles.
func (l *Linear) Dynamic() []metaball.Circle {
	return append([]metaball.Circle(nil), l.dynamic...)
}
