package animation

import (
	"slices"
	"testing"
	"time"

	"github.com/go-drift/metaloader/pkg/errors"
)

type visit struct {
	index   int
	reverse bool
}

func recordingRelay(s *Scheduler, count int, mode LoopMode, log *[]visit) *Relay {
	return NewRelay(s, count, mode, func(i int, reverse bool) (Interpolation, func(float64)) {
		*log = append(*log, visit{i, reverse})
		return Interpolation{From: 0, To: 1, Duration: 100 * time.Millisecond}, nil
	})
}

func TestRelayModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    LoopMode
		reverse bool
		steps   int
		want    []visit
	}{
		{
			name:  "once",
			mode:  LoopOnce,
			steps: 5,
			want:  []visit{{0, false}, {1, false}, {2, false}},
		},
		{
			name:  "restart",
			mode:  LoopRestart,
			steps: 4,
			want:  []visit{{0, false}, {1, false}, {2, false}, {0, false}, {1, false}},
		},
		{
			name:  "ping-pong",
			mode:  LoopPingPong,
			steps: 7,
			want: []visit{
				{0, false}, {1, false}, {2, false},
				{2, true}, {1, true}, {0, true},
				{0, false}, {1, false},
			},
		},
		{
			name:    "reverse once",
			mode:    LoopOnce,
			reverse: true,
			steps:   3,
			want:    []visit{{2, true}, {1, true}, {0, true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clk := newTestScheduler()
			var log []visit
			r := recordingRelay(s, 3, tt.mode, &log)
			start := r.Start
			if tt.reverse {
				start = r.StartReverse
			}
			if err := start(); err != nil {
				t.Fatal(err)
			}
			stepN(s, clk, tt.steps, 100*time.Millisecond)
			if !slices.Equal(log, tt.want) {
				t.Errorf("visits = %v, want %v", log, tt.want)
			}
		})
	}
}

func TestRelayOnceFinishes(t *testing.T) {
	s, clk := newTestScheduler()
	var log []visit
	r := recordingRelay(s, 2, LoopOnce, &log)
	finished := 0
	r.OnFinish = func() { finished++ }

	_ = r.Start()
	if state, i := r.State(); state != RelayRunning || i != 0 {
		t.Fatalf("state = %v(%d), want running(0)", state, i)
	}
	stepN(s, clk, 5, 100*time.Millisecond)
	if finished != 1 {
		t.Errorf("OnFinish called %d times, want 1", finished)
	}
	if state, _ := r.State(); state != RelayIdle {
		t.Errorf("state = %v, want idle", state)
	}
	if s.Len() != 0 {
		t.Errorf("%d runs left", s.Len())
	}
}

func TestRelayStop(t *testing.T) {
	s, clk := newTestScheduler()
	var log []visit
	r := recordingRelay(s, 3, LoopRestart, &log)
	_ = r.Start()
	stepN(s, clk, 1, 100*time.Millisecond)
	r.Stop()
	stepN(s, clk, 10, 100*time.Millisecond)
	if len(log) != 2 {
		t.Errorf("visits after stop: %v", log)
	}
	if state, _ := r.State(); state != RelayIdle {
		t.Errorf("state = %v, want idle", state)
	}
}

func TestRelayOnAdvanceCanTakeOver(t *testing.T) {
	s, clk := newTestScheduler()
	var log []visit
	r := recordingRelay(s, 3, LoopOnce, &log)
	var advanced []int
	r.OnAdvance = func(i int, _ bool) {
		advanced = append(advanced, i)
		if i == 1 {
			_ = r.Start()
		}
	}
	_ = r.Start()
	stepN(s, clk, 4, 100*time.Millisecond)

	want := []visit{{0, false}, {1, false}, {0, false}, {1, false}, {0, false}}
	if !slices.Equal(log, want) {
		t.Errorf("visits = %v, want %v", log, want)
	}
	if !slices.Equal(advanced, []int{0, 1, 0, 1}) {
		t.Errorf("advanced = %v", advanced)
	}
}

func TestRelayFiveCirclesNoOverlap(t *testing.T) {
	s, clk := newTestScheduler()
	const circles = 5
	active := make([]bool, circles)
	visits := make([]int, circles)

	r := NewRelay(s, circles, LoopRestart, func(i int, _ bool) (Interpolation, func(float64)) {
		for j, on := range active {
			if on && j != i {
				t.Errorf("circle %d starts while circle %d is running", i, j)
			}
		}
		active[i] = true
		visits[i]++
		return Interpolation{From: 0, To: 1, Duration: 100 * time.Millisecond}, nil
	})
	r.OnAdvance = func(i int, _ bool) { active[i] = false }
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}

	// Five full cycles; the sixth visit to circle 0 starts on the last step.
	stepN(s, clk, 5*circles*10, 10*time.Millisecond)
	for i, n := range visits {
		want := 5
		if i == 0 {
			want = 6
		}
		if n != want {
			t.Errorf("circle %d visited %d times, want %d", i, n, want)
		}
	}
}

func TestRelayKeepsTimeAt60FPS(t *testing.T) {
	s, clk := newTestScheduler()
	var log []visit
	r := recordingRelay(s, 5, LoopRestart, &log)
	completed := make([]int, 5)
	r.OnAdvance = func(index int, _ bool) { completed[index]++ }
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}

	stepN(s, clk, 157, 16*time.Millisecond)

	if want := []int{5, 5, 5, 5, 5}; !slices.Equal(completed, want) {
		t.Errorf("completions per index = %v, want %v", completed, want)
	}
	// The 26th link started at exactly 2.5s and is still running.
	if state, index := r.State(); state != RelayRunning || index != 0 || len(log) != 26 {
		t.Errorf("state = %v at %d after %d links, want running at 0 after 26", state, index, len(log))
	}
}

func TestRelayRejectsEmpty(t *testing.T) {
	s, _ := newTestScheduler()
	r := NewRelay(s, 0, LoopRestart, nil)
	err := r.Start()
	if !errors.Is(err, errors.ErrEmptyRelay) || !errors.IsPrecondition(err) {
		t.Errorf("Start on empty relay = %v", err)
	}
}

func TestRelayStepErrorStopsRelay(t *testing.T) {
	s, _ := newTestScheduler()
	r := NewRelay(s, 2, LoopOnce, func(int, bool) (Interpolation, func(float64)) {
		return Interpolation{}, nil
	})
	if err := r.Start(); !errors.Is(err, errors.ErrNonPositiveDuration) {
		t.Errorf("Start = %v, want ErrNonPositiveDuration", err)
	}
	if state, _ := r.State(); state != RelayIdle {
		t.Errorf("state = %v, want idle", state)
	}
}
