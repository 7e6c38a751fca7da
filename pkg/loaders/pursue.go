package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// PursueConfig configures a [Pursue] loader.
type PursueConfig struct {
	Count  int
	Radius float64
	Gap    float64
	// Width is the track length used until Layout provides one.
	Width    float64
	Duration time.Duration
	Stagger  time.Duration
	// Pause separates the enter and leave phases.
	Pause time.Duration

	// Curve eases every enter and leave. Nil is linear.
	Curve func(float64) float64
}

func DefaultPursueConfig() PursueConfig {
	return PursueConfig{
		Count:    5,
		Radius:   5,
		Gap:      10,
		Width:    200,
		Duration: 800 * time.Millisecond,
		Stagger:  200 * time.Millisecond,
		Pause:    400 * time.Millisecond,
		Curve:    animation.AccelerateDecelerate,
	}
}

// Pursue slides a row of circles in from the left edge, gathers them in
// the middle and sends them off to the right.
type Pursue struct {
	base
	cfg     PursueConfig
	width   float64
	circles []metaball.Circle
}

func NewPursue(cfg PursueConfig) *Pursue {
	p := &Pursue{base: newBase("pursue"), cfg: cfg, width: cfg.Width}
	p.reset()
	return p
}

// home is the off-screen start of circle i.
func (p *Pursue) home(i int) float64 {
	return -p.cfg.Radius - (p.cfg.Gap+2*p.cfg.Radius)*float64(i)
}

// travel is the distance each circle covers per phase; it parks the row
// centered on the track.
func (p *Pursue) travel() float64 {
	n := p.cfg.Count
	step := p.cfg.Gap + 2*p.cfg.Radius
	offset := float64(n/2) * step
	if n%2 == 0 {
		offset -= p.cfg.Gap / 2
	} else {
		offset += p.cfg.Radius
	}
	return p.width/2 + offset
}

func (p *Pursue) reset() {
	p.circles = make([]metaball.Circle, max(p.cfg.Count, 0))
	for i := range p.circles {
		p.circles[i] = metaball.NewCircle(p.home(i), p.cfg.Radius, p.cfg.Radius)
	}
}

func (p *Pursue) IntrinsicSize() graphics.Size {
	return graphics.Size{Width: p.width, Height: 2 * p.cfg.Radius}
}

// Layout adopts the offered width as the track length. The next phase
// uses it.
func (p *Pursue) Layout(size graphics.Size) {
	p.base.Layout(size)
	if size.Width > 0 {
		p.width = size.Width
	}
}

func (p *Pursue) Start(s *animation.Scheduler) error {
	if p.cfg.Count < 1 {
		return p.configError("count %d", p.cfg.Count)
	}
	p.begin(s)
	p.reset()
	if err := p.enter(); err != nil {
		return p.fail("pursue.Start", err)
	}
	return nil
}

func (p *Pursue) enter() error {
	g := p.group(func() {
		p.after(p.cfg.Pause, func() { p.restart("pursue.leave", p.leave) })
	})
	for i := range p.circles {
		p.circles[i].X = p.home(i)
	}
	return p.slide(g)
}

func (p *Pursue) leave() error {
	return p.slide(p.group(func() { p.restart("pursue.enter", p.enter) }))
}

// slide moves every circle travel() to the right from where it stands.
func (p *Pursue) slide(g *animation.Group) error {
	dx := p.travel()
	for i := range p.circles {
		circle := &p.circles[i]
		tw := animation.TweenOffset(circle.Center(), circle.Center().Add(graphics.Offset{X: dx}))
		desc := animation.Interpolation{
			From:     0,
			To:       1,
			Duration: p.cfg.Duration + time.Duration(i)*p.cfg.Stagger,
			Curve:    p.ease(p.cfg.Curve),
		}
		if err := p.groupRun(g, desc, func(t float64) { circle.SetCenter(tw.Evaluate(t)) }); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pursue) Paint(canvas graphics.Canvas) {
	p.paintCentered(canvas, p.IntrinsicSize(), func() {
		for _, circle := range p.circles {
			p.drawCircle(canvas, circle)
		}
	})
}

// Circles returns a copy of the current circles.
func (p *Pursue) Circles() []metaball.Circle {
	return append([]metaball.Circle(nil), p.circles...)
}
