// Package loaders implements the metaball loading indicators.
//
// Every variant owns a handful of circles, drives them with runs on an
// [animation.Scheduler] and paints them, fused by connector paths where
// they adhere, on any [graphics.Canvas]:
//
//	l, _ := loaders.New("round")
//	l.Start(sched)
//	// each frame:
//	sched.Step()
//	l.Paint(canvas)
//
// Loaders are not safe for concurrent use. Paint them from the goroutine
// that steps their scheduler.
package loaders

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/errors"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// DefaultColor is the fill every loader starts with.
const DefaultColor = graphics.ColorWhite

// Loader is a self-running metaball animation.
type Loader interface {
	// Name returns the registry name of the variant.
	Name() string

	// Start resets the circles and launches the choreography on s. A nil
	// scheduler means [animation.DefaultScheduler]. Starting a running
	// loader restarts it.
	Start(s *animation.Scheduler) error

	// Stop cancels every run the loader owns. Circles keep their last
	// position.
	Stop()

	Running() bool

	// Paint draws the current frame. The content is centered in the size
	// passed to Layout, or drawn at the origin when no layout was given.
	Paint(canvas graphics.Canvas)

	// IntrinsicSize is the size the variant needs with its current config.
	IntrinsicSize() graphics.Size

	Layout(size graphics.Size)
	SetColor(c graphics.Color)

	// SetSpeed scales every duration by 1/speed for runs started afterward.
	// Non-positive values are ignored.
	SetSpeed(speed float64)

	// SetCurve replaces the config curve of the eased motions for runs
	// started afterward. Constant-rate spins stay linear. Nil restores the
	// config curve.
	SetCurve(curve func(float64) float64)
}

// base carries the state every variant shares: paint, speed, layout and
// the runs that Stop must cancel.
type base struct {
	name  string
	sched *animation.Scheduler
	paint graphics.Paint
	speed float64
	size  graphics.Size
	path  *graphics.Path
	curve func(float64) float64

	running bool
	handles []*animation.Handle
	groups  []*animation.Group
	relays  []*animation.Relay
}

func newBase(name string) base {
	return base{
		name:  name,
		paint: graphics.FillPaint(DefaultColor),
		speed: 1,
		path:  graphics.NewPath(),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Running() bool { return b.running }

func (b *base) Layout(size graphics.Size) { b.size = size }

func (b *base) SetColor(c graphics.Color) { b.paint.Color = c }

func (b *base) SetSpeed(speed float64) {
	if speed > 0 {
		b.speed = speed
	}
}

func (b *base) SetCurve(curve func(float64) float64) { b.curve = curve }

// ease returns the curve set with SetCurve, or configured when none was.
func (b *base) ease(configured func(float64) float64) func(float64) float64 {
	if b.curve != nil {
		return b.curve
	}
	return configured
}

func (b *base) Stop() {
	for _, h := range b.handles {
		h.Cancel()
	}
	for _, g := range b.groups {
		g.Cancel()
	}
	for _, r := range b.relays {
		r.Stop()
	}
	b.handles, b.groups, b.relays = nil, nil, nil
	b.running = false
}

// begin stops any previous choreography and binds the scheduler.
func (b *base) begin(s *animation.Scheduler) {
	b.Stop()
	if s == nil {
		s = animation.DefaultScheduler()
	}
	b.sched = s
	b.running = true
}

func (b *base) track(h *animation.Handle) {
	b.handles = slices.DeleteFunc(b.handles, func(h *animation.Handle) bool { return !h.Active() })
	b.handles = append(b.handles, h)
}

func (b *base) run(desc animation.Interpolation, onTick func(float64), onComplete func()) error {
	h, err := b.sched.Run(desc.Scaled(b.speed), onTick, onComplete)
	if err != nil {
		return err
	}
	b.track(h)
	return nil
}

func (b *base) after(d time.Duration, fn func()) {
	if b.speed != 1 {
		d = time.Duration(float64(d) / b.speed)
	}
	b.track(b.sched.After(d, fn))
}

func (b *base) group(onComplete func()) *animation.Group {
	b.groups = slices.DeleteFunc(b.groups, (*animation.Group).Done)
	g := b.sched.NewGroup(onComplete)
	b.groups = append(b.groups, g)
	return g
}

func (b *base) groupRun(g *animation.Group, desc animation.Interpolation, onTick func(float64)) error {
	_, err := g.Run(desc.Scaled(b.speed), onTick)
	return err
}

// relay builds a relay whose steps honor the speed multiplier.
func (b *base) relay(count int, mode animation.LoopMode, step animation.RelayStep) *animation.Relay {
	r := animation.NewRelay(b.sched, count, mode, func(i int, reverse bool) (animation.Interpolation, func(float64)) {
		desc, tick := step(i, reverse)
		return desc.Scaled(b.speed), tick
	})
	b.relays = append(b.relays, r)
	return r
}

// fail stops the loader and reports err as an init failure.
func (b *base) fail(op string, err error) error {
	b.Stop()
	le := &errors.LoaderError{Op: op, Kind: errors.KindInit, Err: err, Loader: b.name}
	errors.Report(le)
	return le
}

// restart runs fn from a completion callback; failures end the loop.
func (b *base) restart(op string, fn func() error) {
	if err := fn(); err != nil {
		b.fail(op, err)
	}
}

func (b *base) configError(format string, args ...any) error {
	le := &errors.LoaderError{
		Op:     b.name + ".Start",
		Kind:   errors.KindConfig,
		Err:    fmt.Errorf("%w: "+format, append([]any{errors.ErrInvalidConfig}, args...)...),
		Loader: b.name,
	}
	errors.Report(le)
	return le
}

// paintCentered translates the canvas so content of the intrinsic size
// sits in the middle of the laid-out bounds.
func (b *base) paintCentered(canvas graphics.Canvas, intrinsic graphics.Size, draw func()) {
	var dx, dy float64
	if !b.size.IsEmpty() {
		dx = (b.size.Width - intrinsic.Width) / 2
		dy = (b.size.Height - intrinsic.Height) / 2
	}
	canvas.Save()
	canvas.Translate(dx, dy)
	draw()
	canvas.Restore()
}

func (b *base) drawCircle(canvas graphics.Canvas, c metaball.Circle) {
	canvas.DrawCircle(c.Center(), c.Radius, b.paint)
}

// drawConnector fills the bridge between c1 and c2. Concentric frames
// draw nothing.
func (b *base) drawConnector(canvas graphics.Canvas, c1 metaball.Circle, offset1 float64, c2 metaball.Circle, offset2 float64) bool {
	cp, err := metaball.Solve(c1, offset1, c2, offset2)
	if err != nil {
		return false
	}
	b.path.Clear()
	cp.AppendTo(b.path)
	canvas.DrawPath(b.path, b.paint)
	return true
}

// drawAdhering paints a static circle against a dynamic one: scaled and
// bridged while adhering, at its resting radius otherwise.
func (b *base) drawAdhering(canvas graphics.Canvas, adh metaball.Adherence, dynamic, stat metaball.Circle, staticOffset, dynamicOffset float64) {
	if adh.ShouldAdhere(dynamic, &stat) {
		b.drawCircle(canvas, stat)
		b.drawConnector(canvas, stat, staticOffset, dynamic, dynamicOffset)
		return
	}
	stat.Reset()
	b.drawCircle(canvas, stat)
}
