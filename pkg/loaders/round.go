package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// RoundConfig configures a [Round] loader.
type RoundConfig struct {
	Count         int
	RingRadius    float64
	StaticRadius  float64
	DynamicRadius float64
	ScaleRate     float64
	MaxLength     float64
	Offset        float64
	Duration      time.Duration
	From          float64
	To            float64

	// Curve eases each lap. Nil is linear.
	Curve func(float64) float64
}

func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Count:         8,
		RingRadius:    50,
		StaticRadius:  10,
		DynamicRadius: 7.5,
		ScaleRate:     0.4,
		MaxLength:     25,
		Offset:        45,
		Duration:      2500 * time.Millisecond,
		From:          -90,
		To:            270,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Round sends one circle around a ring of static ones, each swelling and
// reaching out as it passes.
type Round struct {
	base
	cfg     RoundConfig
	statics []metaball.Circle
	dynamic metaball.Circle
}

func NewRound(cfg RoundConfig) *Round {
	r := &Round{base: newBase("round"), cfg: cfg}
	r.reset()
	return r
}

func (r *Round) center() graphics.Offset {
	sz := r.IntrinsicSize()
	return graphics.Offset{X: sz.Width / 2, Y: sz.Height / 2}
}

func (r *Round) reset() {
	c := r.center()
	r.statics = make([]metaball.Circle, max(r.cfg.Count, 0))
	for i := range r.statics {
		angle := 360 / float64(r.cfg.Count) * float64(i)
		p := graphics.PolarOffset(c, r.cfg.RingRadius, angle)
		r.statics[i] = metaball.NewCircle(p.X, p.Y, r.cfg.StaticRadius)
		r.statics[i].Angle = angle
	}
	p := graphics.PolarOffset(c, r.cfg.RingRadius, r.cfg.From)
	r.dynamic = metaball.NewCircle(p.X, p.Y, r.cfg.DynamicRadius)
	r.dynamic.Angle = r.cfg.From
}

func (r *Round) IntrinsicSize() graphics.Size {
	d := 2 * (r.cfg.RingRadius + r.cfg.StaticRadius*(1+r.cfg.ScaleRate))
	return graphics.Size{Width: d, Height: d}
}

func (r *Round) Start(s *animation.Scheduler) error {
	if r.cfg.Count < 1 {
		return r.configError("count %d", r.cfg.Count)
	}
	r.begin(s)
	r.reset()
	desc := animation.Interpolation{
		From:     r.cfg.From,
		To:       r.cfg.To,
		Duration: r.cfg.Duration,
		Curve:    r.ease(r.cfg.Curve),
		Repeat:   animation.Forever(),
	}
	err := r.run(desc, func(angle float64) {
		r.dynamic.Angle = angle
		r.dynamic.SetCenter(graphics.PolarOffset(r.center(), r.cfg.RingRadius, angle))
	}, nil)
	if err != nil {
		return r.fail("round.Start", err)
	}
	return nil
}

func (r *Round) Paint(canvas graphics.Canvas) {
	adh := metaball.Adherence{MaxLength: r.cfg.MaxLength, MaxScaleRate: r.cfg.ScaleRate, GrowOnApproach: true}
	r.paintCentered(canvas, r.IntrinsicSize(), func() {
		r.drawCircle(canvas, r.dynamic)
		for _, stat := range r.statics {
			r.drawAdhering(canvas, adh, r.dynamic, stat, r.cfg.Offset, r.cfg.Offset)
		}
	})
}

// Dynamic returns the orbiting circle.
func (r *Round) Dynamic() metaball.Circle { return r.dynamic }
