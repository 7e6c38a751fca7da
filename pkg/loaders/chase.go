package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// ChaseConfig configures a [Chase] loader.
type ChaseConfig struct {
	Count        int
	RingRadius   float64
	CircleRadius float64
	// Spacing is the angle in degrees between neighbors at rest.
	Spacing float64
	// Duration is the lap time of the leading circle; each follower takes
	// Stagger longer.
	Duration time.Duration
	Stagger  time.Duration

	// Curve eases each lap. Nil is linear.
	Curve func(float64) float64
}

func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		Count:        5,
		RingRadius:   40,
		CircleRadius: 5,
		Spacing:      25,
		Duration:     1000 * time.Millisecond,
		Stagger:      200 * time.Millisecond,
		Curve:        animation.AccelerateDecelerate,
	}
}

// Chase runs a train of small circles around a ring. Followers are slower,
// so the train stretches out and closes up again every lap.
type Chase struct {
	base
	cfg     ChaseConfig
	circles []metaball.Circle
}

func NewChase(cfg ChaseConfig) *Chase {
	c := &Chase{base: newBase("chase"), cfg: cfg}
	c.reset()
	return c
}

func (c *Chase) center() graphics.Offset {
	r := c.cfg.RingRadius + c.cfg.CircleRadius
	return graphics.Offset{X: r, Y: r}
}

func (c *Chase) reset() {
	c.circles = make([]metaball.Circle, max(c.cfg.Count, 0))
	for i := range c.circles {
		angle := -90 - c.cfg.Spacing*float64(i)
		p := graphics.PolarOffset(c.center(), c.cfg.RingRadius, angle)
		c.circles[i] = metaball.NewCircle(p.X, p.Y, c.cfg.CircleRadius)
		c.circles[i].Angle = angle
	}
}

func (c *Chase) IntrinsicSize() graphics.Size {
	d := 2 * (c.cfg.RingRadius + c.cfg.CircleRadius)
	return graphics.Size{Width: d, Height: d}
}

func (c *Chase) Start(s *animation.Scheduler) error {
	if c.cfg.Count < 1 {
		return c.configError("count %d", c.cfg.Count)
	}
	c.begin(s)
	c.reset()
	if err := c.lap(); err != nil {
		return c.fail("chase.Start", err)
	}
	return nil
}

// lap sends every circle once around the ring and queues the next lap
// when the slowest one arrives.
func (c *Chase) lap() error {
	g := c.group(func() { c.restart("chase.lap", c.lap) })
	for i := range c.circles {
		circle := &c.circles[i]
		desc := animation.Interpolation{
			From:     circle.Angle,
			To:       circle.Angle + 360,
			Duration: c.cfg.Duration + time.Duration(i)*c.cfg.Stagger,
			Curve:    c.ease(c.cfg.Curve),
		}
		err := c.groupRun(g, desc, func(angle float64) {
			circle.SetCenter(graphics.PolarOffset(c.center(), c.cfg.RingRadius, angle))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Chase) Paint(canvas graphics.Canvas) {
	c.paintCentered(canvas, c.IntrinsicSize(), func() {
		for _, circle := range c.circles {
			c.drawCircle(canvas, circle)
		}
	})
}

// Circles returns a copy of the current circles.
func (c *Chase) Circles() []metaball.Circle {
	return append([]metaball.Circle(nil), c.circles...)
}
