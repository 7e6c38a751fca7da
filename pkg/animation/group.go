package animation

import (
	"sync"
	"time"
)

// Group runs several interpolations side by side and fires a single
// completion once every member has completed naturally. Runs started from
// that completion are timed from the latest member end. A group with an
// infinite member never completes.
type Group struct {
	sched      *Scheduler
	onComplete func()

	mu        sync.Mutex
	members   []*Handle
	pending   int
	finished  bool
	cancelled bool
	// end is the latest end time among completed members.
	end time.Time
}

// NewGroup returns an empty group on s. onComplete may be nil.
func (s *Scheduler) NewGroup(onComplete func()) *Group {
	return &Group{sched: s, onComplete: onComplete}
}

// Run starts desc as a member of the group.
func (g *Group) Run(desc Interpolation, onTick func(value float64)) (*Handle, error) {
	g.mu.Lock()
	g.pending++
	g.mu.Unlock()

	h, err := g.sched.Run(desc, onTick, g.memberDone)
	if err != nil {
		g.mu.Lock()
		g.pending--
		g.mu.Unlock()
		return nil, err
	}

	g.mu.Lock()
	g.members = append(g.members, h)
	g.mu.Unlock()
	return h, nil
}

func (g *Group) memberDone() {
	at := g.sched.handoffTime()

	g.mu.Lock()
	g.pending--
	if at.After(g.end) {
		g.end = at
	}
	fire := g.pending == 0 && !g.finished && !g.cancelled
	if fire {
		g.finished = true
	}
	end := g.end
	g.mu.Unlock()

	if fire && g.onComplete != nil {
		g.sched.handingOff(end, g.onComplete)
	}
}

// Cancel cancels every member. The group's completion will not fire.
func (g *Group) Cancel() {
	g.mu.Lock()
	g.cancelled = true
	members := g.members
	g.members = nil
	g.mu.Unlock()

	for _, h := range members {
		h.Cancel()
	}
}

// Pending returns the number of members that have not completed.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

// Done reports whether the group's completion has fired.
func (g *Group) Done() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}
