package animation

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/metaloader/pkg/errors"
)

// RepeatPolicy selects how many cycles a run plays.
type RepeatPolicy int

const (
	// RepeatNone plays one cycle and completes.
	RepeatNone RepeatPolicy = iota
	// RepeatCount plays Count extra cycles after the first, then completes.
	RepeatCount
	// RepeatInfinite plays forever and never completes on its own.
	RepeatInfinite
)

// RepeatMode selects the direction of each repeated cycle.
type RepeatMode int

const (
	// RepeatRestart jumps back to From at the start of every cycle.
	RepeatRestart RepeatMode = iota
	// RepeatReverse plays odd cycles from To back to From.
	RepeatReverse
)

// Repeat describes the repeat policy of an [Interpolation].
type Repeat struct {
	Mode  RepeatPolicy
	Count int
}

// Forever returns an infinite repeat.
func Forever() Repeat { return Repeat{Mode: RepeatInfinite} }

// Times returns a repeat that plays n cycles after the first.
func Times(n int) Repeat { return Repeat{Mode: RepeatCount, Count: n} }

// Interpolation describes one run: a value moving from From to To over
// Duration, shaped by Curve. A repeating interpolation is a single
// long-lived run; it is not re-created per cycle.
type Interpolation struct {
	From float64
	To   float64

	// Duration is the length of one cycle. Must be positive.
	Duration time.Duration

	// Delay postpones the first tick. Must not be negative.
	Delay time.Duration

	// Curve eases each cycle. Nil means LinearCurve.
	Curve func(float64) float64

	Repeat     Repeat
	RepeatMode RepeatMode
}

// Validate reports a precondition error when the descriptor cannot run.
func (d Interpolation) Validate() error {
	switch {
	case d.Duration <= 0:
		return errors.Precondition("animation.Run",
			fmt.Errorf("%w: got %v", errors.ErrNonPositiveDuration, d.Duration))
	case d.Delay < 0:
		return errors.Precondition("animation.Run",
			fmt.Errorf("%w: got %v", errors.ErrNegativeDelay, d.Delay))
	case d.Repeat.Mode == RepeatCount && d.Repeat.Count < 0:
		return errors.Precondition("animation.Run",
			fmt.Errorf("%w: got %d", errors.ErrNegativeRepeatCount, d.Repeat.Count))
	}
	return nil
}

// Scaled returns a copy that plays speed times faster. Non-positive speeds
// leave the descriptor unchanged.
func (d Interpolation) Scaled(speed float64) Interpolation {
	if speed <= 0 || speed == 1 {
		return d
	}
	d.Duration = time.Duration(math.Round(float64(d.Duration) / speed))
	d.Delay = time.Duration(math.Round(float64(d.Delay) / speed))
	if d.Duration <= 0 {
		d.Duration = 1
	}
	return d
}

// Reversed returns a copy that runs from To to From.
func (d Interpolation) Reversed() Interpolation {
	d.From, d.To = d.To, d.From
	return d
}

// TotalDuration returns the time from start to natural completion,
// including Delay. Infinite runs report ok=false.
func (d Interpolation) TotalDuration() (total time.Duration, ok bool) {
	switch d.Repeat.Mode {
	case RepeatInfinite:
		return 0, false
	case RepeatCount:
		return d.Delay + d.Duration*time.Duration(d.Repeat.Count+1), true
	default:
		return d.Delay + d.Duration, true
	}
}

// progress returns the eased fraction at elapsed (measured after Delay)
// and whether the run has finished.
func (d Interpolation) progress(elapsed time.Duration) (t float64, done bool) {
	curve := d.Curve
	if curve == nil {
		curve = LinearCurve
	}
	if d.Duration <= 0 {
		return 1, true
	}

	if d.Repeat.Mode == RepeatNone {
		if elapsed >= d.Duration {
			return 1, true
		}
		return curve(float64(elapsed) / float64(d.Duration)), false
	}

	cycle := int64(elapsed / d.Duration)
	if d.Repeat.Mode == RepeatCount && cycle > int64(d.Repeat.Count) {
		if d.RepeatMode == RepeatReverse && d.Repeat.Count%2 == 1 {
			return 0, true
		}
		return 1, true
	}
	frac := float64(elapsed%d.Duration) / float64(d.Duration)
	if d.RepeatMode == RepeatReverse && cycle%2 == 1 {
		frac = 1 - frac
	}
	return curve(frac), false
}

// valueAt maps an eased fraction to the From/To range. The endpoints are
// returned exactly.
func (d Interpolation) valueAt(t float64) float64 {
	switch t {
	case 0:
		return d.From
	case 1:
		return d.To
	}
	return LerpFloat64(d.From, d.To, t)
}
