package metaball

// Adherence decides when two circles are drawn fused and how the
// stationary circle's radius reacts to the distance.
//
// Within the threshold the stationary circle's rendered radius is
//
//	BaseRadius * (1 + scale)   when GrowOnApproach
//	BaseRadius * (1 - scale)   otherwise
//
// with scale = MaxScaleRate * (1 - distance/MaxLength). At exactly
// MaxLength the scale is zero, so the radius meets BaseRadius with no jump.
type Adherence struct {
	// MaxLength is the exclusive distance threshold for fusing.
	MaxLength float64

	// MaxScaleRate is the relative radius change at distance zero.
	// Zero disables radius scaling.
	MaxScaleRate float64

	// GrowOnApproach selects swelling (true) or shrinking (false) as the
	// circles get closer.
	GrowOnApproach bool
}

// Scale returns the signed relative radius change for a distance. The
// value is not clamped: past MaxLength it crosses zero and keeps going, and
// callers must fall back to the resting radius there.
func (a Adherence) Scale(distance float64) float64 {
	if a.MaxLength <= 0 {
		return 0
	}
	scale := a.MaxScaleRate * (1 - distance/a.MaxLength)
	if !a.GrowOnApproach {
		scale = -scale
	}
	return scale
}

// RadiusAt returns the rendered radius of a circle with the given resting
// radius at distance.
func (a Adherence) RadiusAt(base, distance float64) float64 {
	return base * (1 + a.Scale(distance))
}

// Within reports whether the two centers are strictly closer than
// MaxLength, without touching either circle.
func (a Adherence) Within(c1, c2 Circle) bool {
	return c1.Distance(c2) < a.MaxLength
}

// ShouldAdhere reports whether dynamic and stat should be drawn fused and
// updates stat's rendered radius from the distance between them. When it
// returns false the caller draws stat at BaseRadius and skips the
// connector.
func (a Adherence) ShouldAdhere(dynamic Circle, stat *Circle) bool {
	d := dynamic.Distance(*stat)
	stat.Radius = a.RadiusAt(stat.BaseRadius, d)
	return d < a.MaxLength
}
