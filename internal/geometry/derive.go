// Package geometry derives per-segment and per-trace statistics from a
// trace store: strike angles, segment lengths, and end-to-end trace
// lengths. All functions are pure and recompute from the store on every
// call; nothing is cached or written back.
package geometry

import (
	"math"

	"github.com/strata-data/fracture.report/internal/trace"
)

// strikeSnapDeg is the threshold above which a strike angle collapses to
// zero. Strike is undirected, so angles at or beyond this value would
// otherwise double-count the wrap point shared with 0°. The value assumes
// rose bins no narrower than about half a degree; do not narrow it without
// revisiting that assumption.
const strikeSnapDeg = 179.5

// SegmentAngles returns one strike angle in degrees per segment, in trace
// order then segment order within each trace. Strike is measured from the
// Y-axis (north), so the arguments to Atan2 are dx, dy rather than the
// usual dy, dx. Angles are folded into [0, 180): a negative angle gains
// 180, and anything at or above strikeSnapDeg snaps to 0.
//
// Degenerate traces contribute nothing. ErrEmptyInput is returned when no
// trace in the store has a segment.
func SegmentAngles(store *trace.Store) ([]float64, error) {
	angles := make([]float64, 0, store.NumSegments())
	for _, t := range store.Traces() {
		for i := 1; i < len(t.Vertices); i++ {
			dx := t.Vertices[i].X - t.Vertices[i-1].X
			dy := t.Vertices[i].Y - t.Vertices[i-1].Y
			a := math.Atan2(dx, dy) * 180 / math.Pi
			if a < 0 {
				a += 180
			}
			if a >= strikeSnapDeg {
				a = 0.0
			}
			angles = append(angles, a)
		}
	}
	if len(angles) == 0 {
		return nil, trace.ErrEmptyInput
	}
	return angles, nil
}

// SegmentLengths returns the Euclidean length of every segment, in the
// same order as SegmentAngles. The two outputs are always the same
// length: one angle and one length per segment.
func SegmentLengths(store *trace.Store) ([]float64, error) {
	lengths := make([]float64, 0, store.NumSegments())
	for _, t := range store.Traces() {
		for i := 1; i < len(t.Vertices); i++ {
			dx := t.Vertices[i].X - t.Vertices[i-1].X
			dy := t.Vertices[i].Y - t.Vertices[i-1].Y
			lengths = append(lengths, math.Hypot(dx, dy))
		}
	}
	if len(lengths) == 0 {
		return nil, trace.ErrEmptyInput
	}
	return lengths, nil
}

// TraceLengths returns one length per non-degenerate trace: the Euclidean
// distance between its first and last vertex. This is the end-to-end
// displacement, deliberately ignoring curvature, so a closed loop has
// length zero.
func TraceLengths(store *trace.Store) ([]float64, error) {
	lengths := make([]float64, 0, store.Len())
	for _, t := range store.Traces() {
		if t.Degenerate() {
			continue
		}
		first := t.Vertices[0]
		last := t.Vertices[len(t.Vertices)-1]
		lengths = append(lengths, math.Hypot(last.X-first.X, last.Y-first.Y))
	}
	if len(lengths) == 0 {
		return nil, trace.ErrEmptyInput
	}
	return lengths, nil
}
