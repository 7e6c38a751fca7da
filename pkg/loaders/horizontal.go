package loaders

import (
	"time"

	"github.com/go-drift/metaloader/pkg/animation"
	"github.com/go-drift/metaloader/pkg/graphics"
	"github.com/go-drift/metaloader/pkg/metaball"
)

// HorizontalConfig configures a [Horizontal] loader.
type HorizontalConfig struct {
	Count         int
	StaticRadius  float64
	Gap           float64
	DynamicRadius float64
	ScaleRate     float64
	MaxLength     float64
	Offset        float64
	Duration      time.Duration

	// Curve eases the sweep. Nil is linear.
	Curve func(float64) float64
}

func DefaultHorizontalConfig() HorizontalConfig {
	return HorizontalConfig{
		Count:         5,
		StaticRadius:  10,
		Gap:           30,
		DynamicRadius: 7.5,
		ScaleRate:     0.4,
		MaxLength:     35,
		Offset:        45,
		Duration:      2500 * time.Millisecond,
		Curve:         animation.AccelerateDecelerate,
	}
}

// Horizontal runs one circle back and forth along a row of static ones.
type Horizontal struct {
	base
	cfg     HorizontalConfig
	statics []metaball.Circle
	dynamic metaball.Circle
}

func NewHorizontal(cfg HorizontalConfig) *Horizontal {
	h := &Horizontal{base: newBase("horizontal"), cfg: cfg}
	h.reset()
	return h
}

func (h *Horizontal) reset() {
	y := h.IntrinsicSize().Height / 2
	h.statics = make([]metaball.Circle, max(h.cfg.Count, 0))
	for i := range h.statics {
		x := (2*h.cfg.StaticRadius + h.cfg.Gap) * float64(i+1)
		h.statics[i] = metaball.NewCircle(x, y, h.cfg.StaticRadius)
	}
	h.dynamic = metaball.NewCircle(h.cfg.DynamicRadius, y, h.cfg.DynamicRadius)
}

func (h *Horizontal) IntrinsicSize() graphics.Size {
	n := max(h.cfg.Count, 0)
	return graphics.Size{
		Width:  float64(n+1) * (2*h.cfg.StaticRadius + h.cfg.Gap),
		Height: 2 * h.cfg.StaticRadius * (1 + h.cfg.ScaleRate),
	}
}

func (h *Horizontal) Start(s *animation.Scheduler) error {
	if h.cfg.Count < 1 {
		return h.configError("count %d", h.cfg.Count)
	}
	h.begin(s)
	h.reset()
	desc := animation.Interpolation{
		From:       h.cfg.DynamicRadius,
		To:         h.IntrinsicSize().Width - h.cfg.DynamicRadius,
		Duration:   h.cfg.Duration,
		Curve:      h.ease(h.cfg.Curve),
		Repeat:     animation.Forever(),
		RepeatMode: animation.RepeatReverse,
	}
	if err := h.run(desc, func(x float64) { h.dynamic.X = x }, nil); err != nil {
		return h.fail("horizontal.Start", err)
	}
	return nil
}

func (h *Horizontal) Paint(canvas graphics.Canvas) {
	adh := metaball.Adherence{MaxLength: h.cfg.MaxLength, MaxScaleRate: h.cfg.ScaleRate, GrowOnApproach: true}
	h.paintCentered(canvas, h.IntrinsicSize(), func() {
		h.drawCircle(canvas, h.dynamic)
		for _, stat := range h.statics {
			h.drawAdhering(canvas, adh, h.dynamic, stat, h.cfg.Offset, h.cfg.Offset)
		}
	})
}

// Dynamic returns the sliding circle.
func (h *Horizontal) Dynamic() metaball.Circle { return h.dynamic }
