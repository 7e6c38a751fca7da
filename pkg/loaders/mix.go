package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// MixConfig configures a [Mix] loader.
type MixConfig struct {
	// Radius is the resting radius; circles swell toward
	// Radius*(1+ScaleRate) as they meet.
	Radius    float64
	ScaleRate float64
	MaxLength float64
	Offset    float64
	// Orbit is the largest distance from the center to either circle.
	Orbit float64

	OrbitDuration time.Duration
	SpinDuration  time.Duration
	StartAngle    float64

	// Curve eases the orbit. Nil is linear.
	Curve func(float64) float64
}

func DefaultMixConfig() MixConfig {
	return MixConfig{
		Radius:        25,
		ScaleRate:     1,
		MaxLength:     100,
		Offset:        40,
		Orbit:         75,
		OrbitDuration: 1600 * time.Millisecond,
		SpinDuration:  3200 * time.Millisecond,
		StartAngle:    180,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Mix spins two circles opposite each other while their orbit breathes in
// and out, merging them into one blob at the center.
type Mix struct {
	base
	cfg     MixConfig
	orbit   float64
	angle   float64
	circles [2]metaball.Circle
}

func NewMix(cfg MixConfig) *Mix {
	m := &Mix{base: newBase("mix"), cfg: cfg}
	m.reset()
	return m
}

func (m *Mix) reset() {
	m.orbit = 0
	m.angle = m.cfg.StartAngle
	for i := range m.circles {
		m.circles[i] = metaball.NewCircle(0, 0, m.cfg.Radius)
	}
	m.place()
}

func (m *Mix) center() graphics.Offset {
	sz := m.IntrinsicSize()
	return graphics.Offset{X: sz.Width / 2, Y: sz.Height / 2}
}

func (m *Mix) place() {
	c := m.center()
	m.circles[0].SetCenter(graphics.PolarOffset(c, m.orbit, m.angle))
	m.circles[1].SetCenter(graphics.PolarOffset(c, m.orbit, m.angle+180))
}

func (m *Mix) IntrinsicSize() graphics.Size {
	d := 2 * (m.cfg.Orbit + m.cfg.Radius*(1+m.cfg.ScaleRate))
	return graphics.Size{Width: d, Height: d}
}

func (m *Mix) Start(s *animation.Scheduler) error {
	m.begin(s)
	m.reset()
	breathe := animation.Interpolation{
		From:       0,
		To:         m.cfg.Orbit,
		Duration:   m.cfg.OrbitDuration,
		Curve:      m.ease(m.cfg.Curve),
		Repeat:     animation.Forever(),
		RepeatMode: animation.RepeatReverse,
	}
	if err := m.run(breathe, func(r float64) { m.orbit = r; m.place() }, nil); err != nil {
		return m.fail("mix.Start", err)
	}
	spin := animation.Interpolation{
		From:     m.cfg.StartAngle,
		To:       m.cfg.StartAngle + 360,
		Duration: m.cfg.SpinDuration,
		Curve:    animation.LinearCurve,
		Repeat:   animation.Forever(),
	}
	if err := m.run(spin, func(a float64) { m.angle = a; m.place() }, nil); err != nil {
		return m.fail("mix.Start", err)
	}
	return nil
}

func (m *Mix) adherence() metaball.Adherence {
	return metaball.Adherence{MaxLength: m.cfg.MaxLength, MaxScaleRate: m.cfg.ScaleRate, GrowOnApproach: true}
}

// Paint draws both circles at one shared radius so the merged blob stays
// symmetric.
func (m *Mix) Paint(canvas graphics.Canvas) {
	a, b := m.circles[0], m.circles[1]
	m.paintCentered(canvas, m.IntrinsicSize(), func() {
		if !m.adherence().ShouldAdhere(a, &b) {
			b.Reset()
			m.drawCircle(canvas, a)
			m.drawCircle(canvas, b)
			return
		}
		a.Radius = b.Radius
		m.drawCircle(canvas, a)
		m.drawCircle(canvas, b)
		m.drawConnector(canvas, a, m.cfg.Offset, b, m.cfg.Offset)
	})
}

// Circles returns the two circles at their positions, with resting radii.
func (m *Mix) Circles() [2]metaball.Circle { return m.circles }
