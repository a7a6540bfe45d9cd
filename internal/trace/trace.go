// Package trace holds digitized fracture traces as ordered polylines and
// provides tolerant parsing of node files. A Store is built once at load
// time and is read-only afterwards; all derived statistics are computed
// fresh from it on each request.
package trace

import (
	"errors"
	"math"
)

// ErrEmptyInput is returned when a statistic is requested over a store
// with no usable traces or segments.
var ErrEmptyInput = errors.New("no usable traces in store")

// Point is a single digitized vertex in map coordinates.
type Point struct {
	X float64
	Y float64
}

// Trace is one fracture's polyline: an ordered sequence of vertices.
// A trace with N vertices has N-1 segments; a single-vertex trace is
// degenerate and contributes no segments. Treat Vertices as read-only
// once the trace is stored.
type Trace struct {
	Vertices []Point
}

// NumSegments returns the number of straight segments in the trace.
func (t Trace) NumSegments() int {
	if len(t.Vertices) < 2 {
		return 0
	}
	return len(t.Vertices) - 1
}

// Degenerate reports whether the trace has too few vertices to carry any
// geometry. Degenerate traces stay in the store (they count toward the
// census) but are skipped by all derivations.
func (t Trace) Degenerate() bool {
	return len(t.Vertices) < 2
}

// Bounds is the axis-aligned bounding box of a set of traces.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Store is an ordered collection of traces, insertion order matching
// input order.
type Store struct {
	traces []Trace
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a trace. Traces with zero vertices are rejected silently by
// the parser before they reach here; Add keeps whatever it is given so
// callers control the policy.
func (s *Store) Add(t Trace) {
	s.traces = append(s.traces, t)
}

// Traces returns the stored traces in insertion order. The slice and the
// traces it holds must not be mutated.
func (s *Store) Traces() []Trace {
	return s.traces
}

// Len returns the number of stored traces, degenerate ones included.
func (s *Store) Len() int {
	return len(s.traces)
}

// NumVertices returns the total vertex count across all traces.
func (s *Store) NumVertices() int {
	n := 0
	for _, t := range s.traces {
		n += len(t.Vertices)
	}
	return n
}

// NumSegments returns the total segment count across all traces.
func (s *Store) NumSegments() int {
	n := 0
	for _, t := range s.traces {
		n += t.NumSegments()
	}
	return n
}

// BoundingBox scans every vertex of every trace and returns the overall
// extent. It fails with ErrEmptyInput when the store holds no vertices;
// callers must not use the zero Bounds in that case.
func (s *Store) BoundingBox() (Bounds, error) {
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	seen := false
	for _, t := range s.traces {
		for _, v := range t.Vertices {
			seen = true
			if v.X < b.XMin {
				b.XMin = v.X
			}
			if v.X > b.XMax {
				b.XMax = v.X
			}
			if v.Y < b.YMin {
				b.YMin = v.Y
			}
			if v.Y > b.YMax {
				b.YMax = v.Y
			}
		}
	}
	if !seen {
		return Bounds{}, ErrEmptyInput
	}
	return b, nil
}
