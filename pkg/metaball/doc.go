// Package metaball computes the "surface tension" connector drawn between
// two nearby circles, and decides when two circles are close enough to be
// drawn fused.
//
// # Connector geometry
//
// [Solve] takes two circles and an attachment offset angle for each and
// returns a [ClosedPath]: four points on the circles' circumferences joined
// by two quadratic curves and two straight edges:
//
//	moveTo(P1) quadTo(Ctrl1, P2) lineTo(P4) quadTo(Ctrl2, P3) lineTo(P1)
//
// The endpoints come from a per-[Position] case table. Axis-aligned pairs
// use the offset angle directly; diagonal pairs combine it with the acute
// angle of the line joining the centers. The curves bow toward the larger
// circle.
//
// # Adherence
//
// [Adherence] compares the distance between two circles against a threshold
// and rescales the stationary circle's rendered radius so it swells (or
// shrinks) smoothly as the moving circle approaches.
package metaball
