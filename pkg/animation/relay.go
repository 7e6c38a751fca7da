package animation

import (
	"fmt"

	"github.com/go-drift/metaloader/pkg/errors"
)

// LoopMode selects what a [Relay] does after visiting its last index.
type LoopMode int

const (
	// LoopOnce stops after one pass and returns to Idle.
	LoopOnce LoopMode = iota
	// LoopRestart starts the same pass again from its first index.
	LoopRestart
	// LoopPingPong turns around and visits the indices in the opposite
	// direction, starting with the index just visited.
	LoopPingPong
)

// RelayState is the state of a Relay.
type RelayState int

const (
	RelayIdle RelayState = iota
	RelayRunning
	RelayReversing
)

func (s RelayState) String() string {
	switch s {
	case RelayRunning:
		return "running"
	case RelayReversing:
		return "reversing"
	default:
		return "idle"
	}
}

// RelayStep builds the run for one index. reverse is true while the relay
// walks its indices from high to low.
type RelayStep func(index int, reverse bool) (Interpolation, func(value float64))

// Relay runs one interpolation per index, starting index i+1 (or i-1 while
// reversing) when index i completes. It is a state machine over
// {Idle, Running(i), Reversing(i)}; each hand-off is a fresh run started
// from a completion callback, so loops never deepen the call stack.
//
// A Relay is not safe for concurrent use. Drive it from the goroutine that
// calls Scheduler.Step.
type Relay struct {
	// OnAdvance, if set, runs after the run at index completes and before
	// the next index starts. It may Stop or restart the relay.
	OnAdvance func(index int, reverse bool)

	// OnFinish, if set, runs when a LoopOnce relay returns to Idle.
	OnFinish func()

	sched *Scheduler
	count int
	mode  LoopMode
	step  RelayStep

	state  RelayState
	index  int
	handle *Handle
	gen    int
}

// NewRelay creates an idle relay over indices 0..count-1.
func NewRelay(s *Scheduler, count int, mode LoopMode, step RelayStep) *Relay {
	return &Relay{sched: s, count: count, mode: mode, step: step}
}

// Start begins a forward pass at index 0, cancelling any pass in progress.
func (r *Relay) Start() error {
	return r.begin(RelayRunning, 0)
}

// StartReverse begins a reverse pass at the last index.
func (r *Relay) StartReverse() error {
	return r.begin(RelayReversing, r.count-1)
}

// Stop cancels the current run and returns to Idle without calling
// OnFinish.
func (r *Relay) Stop() {
	r.gen++
	if r.handle != nil {
		r.handle.Cancel()
		r.handle = nil
	}
	r.state = RelayIdle
}

// State returns the current state and, unless Idle, the active index.
func (r *Relay) State() (RelayState, int) {
	return r.state, r.index
}

// Len returns the number of indices.
func (r *Relay) Len() int {
	return r.count
}

func (r *Relay) begin(state RelayState, index int) error {
	r.Stop()
	if r.count <= 0 || r.step == nil {
		return errors.Precondition("animation.Relay",
			fmt.Errorf("%w: count=%d", errors.ErrEmptyRelay, r.count))
	}
	return r.launch(state, index)
}

func (r *Relay) launch(state RelayState, index int) error {
	desc, onTick := r.step(index, state == RelayReversing)
	gen := r.gen
	h, err := r.sched.Run(desc, onTick, func() {
		if r.gen == gen {
			r.advance(state, index)
		}
	})
	if err != nil {
		r.state = RelayIdle
		r.handle = nil
		return err
	}
	r.state, r.index, r.handle = state, index, h
	return nil
}

func (r *Relay) advance(state RelayState, index int) {
	r.handle = nil
	gen := r.gen
	if r.OnAdvance != nil {
		r.OnAdvance(index, state == RelayReversing)
		if r.gen != gen {
			// OnAdvance took over.
			return
		}
	}

	next, i, ok := r.next(state, index)
	if !ok {
		r.state = RelayIdle
		if r.OnFinish != nil {
			r.OnFinish()
		}
		return
	}
	if err := r.launch(next, i); err != nil {
		var le *errors.LoaderError
		if !errors.As(err, &le) {
			le = &errors.LoaderError{Op: "animation.Relay", Err: err}
		}
		errors.Report(le)
	}
}

// next returns the state after index completes in state.
func (r *Relay) next(state RelayState, index int) (RelayState, int, bool) {
	last := r.count - 1
	switch state {
	case RelayRunning:
		if index < last {
			return RelayRunning, index + 1, true
		}
		switch r.mode {
		case LoopRestart:
			return RelayRunning, 0, true
		case LoopPingPong:
			return RelayReversing, last, true
		}
	case RelayReversing:
		if index > 0 {
			return RelayReversing, index - 1, true
		}
		switch r.mode {
		case LoopRestart:
			return RelayReversing, last, true
		case LoopPingPong:
			return RelayRunning, 0, true
		}
	}
	return RelayIdle, 0, false
}
