package testing

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
)

// DefaultFrameInterval is roughly one frame at 60 fps.
const DefaultFrameInterval = 16 * time.Millisecond

// Painter is anything that paints a frame onto a canvas. Every loader is a
// Painter.
type Painter interface {
	Paint(canvas graphics.Canvas)
}

// FrameDriver steps a scheduler against a fake clock, one frame at a time.
// It plays the role of the display refresh callback in tests.
type FrameDriver struct {
	Clock     *FakeClock
	Scheduler *animation.Scheduler
	Interval  time.Duration

	frames int
}

// NewFrameDriver returns a driver with a fresh clock and scheduler. A
// non-positive interval uses DefaultFrameInterval.
func NewFrameDriver(interval time.Duration) *FrameDriver {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	clk := NewFakeClock()
	return &FrameDriver{
		Clock:     clk,
		Scheduler: animation.NewScheduler(clk),
		Interval:  interval,
	}
}

// Pump advances the clock by one interval and steps the scheduler.
func (d *FrameDriver) Pump() {
	d.Clock.Advance(d.Interval)
	d.Scheduler.Step()
	d.frames++
}

// PumpN pumps n frames.
func (d *FrameDriver) PumpN(n int) {
	for range n {
		d.Pump()
	}
}

// PumpFor pumps whole frames until at least dur has passed and returns the
// number of frames pumped.
func (d *FrameDriver) PumpFor(dur time.Duration) int {
	n := int((dur + d.Interval - 1) / d.Interval)
	d.PumpN(n)
	return n
}

// PumpUntil pumps frames until cond returns true or max frames have been
// pumped. It reports whether cond was met.
func (d *FrameDriver) PumpUntil(cond func() bool, max int) bool {
	for range max {
		if cond() {
			return true
		}
		d.Pump()
	}
	return cond()
}

// Frames returns the number of frames pumped so far.
func (d *FrameDriver) Frames() int {
	return d.frames
}

// Elapsed returns the fake time since the driver was created.
func (d *FrameDriver) Elapsed() time.Duration {
	return d.Clock.Elapsed()
}

// Capture paints p once through a PictureRecorder and returns the
// serialized display list.
func (d *FrameDriver) Capture(p Painter, size graphics.Size) []DisplayOp {
	recorder := &graphics.PictureRecorder{}
	p.Paint(recorder.BeginRecording(size))
	return Serialize(recorder.EndRecording())
}

// Record captures frames consecutive frames, pumping one interval between
// captures. The first capture is taken before any pump.
func (d *FrameDriver) Record(p Painter, size graphics.Size, frames int) *Snapshot {
	snap := &Snapshot{
		Size:       [2]float64{round2(size.Width), round2(size.Height)},
		IntervalMs: d.Interval.Milliseconds(),
	}
	for i := range frames {
		if i > 0 {
			d.Pump()
		}
		snap.Frames = append(snap.Frames, Frame{
			AtMs: d.Elapsed().Milliseconds(),
			Ops:  d.Capture(p, size),
		})
	}
	return snap
}
