// Package animation drives the timed value interpolations behind the
// loader choreographies.
//
// # Core Components
//
//   - [Scheduler]: owns the active runs and advances them once per frame
//     from an external clock pulse via [Scheduler.Step]. The package keeps a
//     default scheduler stepped by [StepTickers].
//
//   - [Interpolation]: describes one run (From, To, Duration, Curve and a
//     repeat policy). [Scheduler.Run] turns it into a [Handle].
//
//   - [Group], [Relay]: compose runs. A Group completes once all of its
//     members have; a Relay hands off from one index to the next and loops
//     without nesting completion callbacks.
//
//   - [Tween]: maps a run's progress onto other value types.
//
// # Basic Usage
//
//	sched := animation.NewScheduler(clock)
//	h, err := sched.Run(animation.Interpolation{
//	    From: 0, To: 360, Duration: time.Second,
//	    Curve: animation.AccelerateDecelerate,
//	}, func(v float64) {
//	    circle.Angle = v
//	}, func() {
//	    // start the next link
//	})
//
//	// once per frame
//	sched.Step()
//
// Ticks and completions are delivered on the goroutine that calls Step.
// Runs started from inside a callback begin ticking on the following Step.
// A run started from a completion callback is timed from the instant the
// completed run ended, not from the frame that noticed it, so chains of
// runs do not drift against the frame rate.
package animation

import (
	"slices"
	"sync"
	"time"
)

// Scheduler advances interpolation runs against a clock.
//
// Run, After and Handle.Cancel may be called from any goroutine. Step must
// be called from a single goroutine, and every callback runs there.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	handles []*Handle
	// handoff is the end time of the run whose completion callback is
	// executing, zero otherwise.
	handoff time.Time
}

// NewScheduler creates a scheduler reading time from c. A nil clock uses the
// package clock (see SetClock).
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	if s.clock == nil {
		return Now()
	}
	return s.clock.Now()
}

// Run starts desc. onTick receives the current value on every Step;
// onComplete fires once after the final tick when the run ends naturally.
// Either callback may be nil.
func (s *Scheduler) Run(desc Interpolation, onTick func(value float64), onComplete func()) (*Handle, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	h := &Handle{
		sched:      s,
		desc:       desc,
		onTick:     onTick,
		onComplete: onComplete,
		value:      desc.From,
	}
	s.add(h)
	return h, nil
}

// After calls fn once, d after now, on the stepping goroutine. A negative d
// is treated as zero; fn then runs on the next Step.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	if d < 0 {
		d = 0
	}
	h := &Handle{
		sched:      s,
		desc:       Interpolation{Duration: d},
		onComplete: fn,
		timer:      true,
	}
	s.add(h)
	return h
}

func (s *Scheduler) add(h *Handle) {
	s.mu.Lock()
	if s.handoff.IsZero() {
		h.start = s.Now()
	} else {
		h.start = s.handoff
	}
	h.active = true
	s.handles = append(s.handles, h)
	s.mu.Unlock()
}

// remove detaches h. Caller holds s.mu.
func (s *Scheduler) remove(h *Handle) bool {
	if !h.active {
		return false
	}
	h.active = false
	if i := slices.Index(s.handles, h); i >= 0 {
		s.handles = slices.Delete(s.handles, i, i+1)
	}
	return true
}

// handingOff runs fn with at as the start time of every run fn creates.
func (s *Scheduler) handingOff(at time.Time, fn func()) {
	s.mu.Lock()
	prev := s.handoff
	s.handoff = at
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.handoff = prev
		s.mu.Unlock()
	}()
	fn()
}

// handoffTime returns the end time of the run completing right now, or zero
// outside completion callbacks.
func (s *Scheduler) handoffTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handoff
}

// Step advances every run active at the time of the call. Runs started or
// cancelled by callbacks during the Step take effect immediately for
// cancellation and on the next Step for new runs.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.handles) == 0 {
		s.mu.Unlock()
		return
	}
	now := s.Now()
	// Copy to avoid holding the lock during callbacks.
	snapshot := slices.Clone(s.handles)
	s.mu.Unlock()

	for _, h := range snapshot {
		h.advance(now)
	}
}

// Len returns the number of active runs and timers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// CancelAll cancels every active run without completing it.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	for _, h := range s.handles {
		h.active = false
		h.cancelled = true
	}
	s.handles = nil
	s.mu.Unlock()
}

// Handle is a single run started by [Scheduler.Run] or [Scheduler.After].
type Handle struct {
	sched      *Scheduler
	desc       Interpolation
	onTick     func(float64)
	onComplete func()
	timer      bool

	// Guarded by sched.mu.
	start     time.Time
	active    bool
	cancelled bool
	value     float64
	progress  float64
}

func (h *Handle) advance(now time.Time) {
	s := h.sched
	s.mu.Lock()
	if !h.active {
		s.mu.Unlock()
		return
	}
	elapsed := now.Sub(h.start) - h.desc.Delay
	if elapsed < 0 {
		s.mu.Unlock()
		return
	}
	t, done := h.desc.progress(elapsed)
	h.progress = t
	h.value = h.desc.valueAt(t)
	value := h.value
	if done {
		s.remove(h)
	}
	s.mu.Unlock()

	if !h.timer && h.onTick != nil {
		h.onTick(value)
	}
	if !done || h.onComplete == nil {
		return
	}

	s.mu.Lock()
	cancelled := h.cancelled
	end := h.end()
	s.mu.Unlock()
	if !cancelled {
		s.handingOff(end, h.onComplete)
	}
}

// end returns the instant the run finished on its own. Caller holds
// sched.mu.
func (h *Handle) end() time.Time {
	total, ok := h.desc.TotalDuration()
	if !ok {
		return time.Time{}
	}
	return h.start.Add(total)
}

// Cancel stops the run. No tick or completion is delivered afterwards,
// including later in the Step that is currently in progress and the
// completion of a run cancelled from its own final tick. Other runs are
// unaffected. Cancelling a finished run is a no-op.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.sched.mu.Lock()
	h.sched.remove(h)
	h.cancelled = true
	h.sched.mu.Unlock()
}

// Active reports whether the run can still deliver ticks.
func (h *Handle) Active() bool {
	if h == nil {
		return false
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return h.active
}

// Value returns the most recently delivered value, or From before the first
// tick. A nil handle reports 0.
func (h *Handle) Value() float64 {
	if h == nil {
		return 0
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return h.value
}

// Progress returns the most recent eased fraction in [0, 1] along
// From to To.
func (h *Handle) Progress() float64 {
	if h == nil {
		return 0
	}
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	return h.progress
}

var defaultScheduler = NewScheduler(nil)

// DefaultScheduler returns the package scheduler stepped by StepTickers.
func DefaultScheduler() *Scheduler {
	return defaultScheduler
}

// StepTickers advances all runs on the default scheduler.
// This should be called once per frame from the host loop.
func StepTickers() {
	defaultScheduler.Step()
}

// HasActiveTickers returns true if the default scheduler has active runs.
func HasActiveTickers() bool {
	return defaultScheduler.Len() > 0
}
