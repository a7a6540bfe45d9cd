package trace

import (
	"errors"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	s := NewStore()
	s.Add(Trace{Vertices: []Point{{X: 1, Y: 2}, {X: 5, Y: -3}}})
	s.Add(Trace{Vertices: []Point{{X: -4, Y: 0}, {X: 2, Y: 7}, {X: 0, Y: 1}}})

	b, err := s.BoundingBox()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.XMin != -4 || b.XMax != 5 || b.YMin != -3 || b.YMax != 7 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	s := NewStore()
	if _, err := s.BoundingBox(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	// A store holding only zero-vertex traces is still empty for bounds.
	s.Add(Trace{})
	if _, err := s.BoundingBox(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for vertex-free store, got %v", err)
	}
}

func TestBoundingBoxSingleVertex(t *testing.T) {
	s := NewStore()
	s.Add(Trace{Vertices: []Point{{X: 3, Y: 4}}})

	b, err := s.BoundingBox()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.XMin != 3 || b.XMax != 3 || b.YMin != 4 || b.YMax != 4 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}

func TestNumSegments(t *testing.T) {
	testCases := []struct {
		name     string
		vertices int
		want     int
	}{
		{"empty", 0, 0},
		{"single_vertex", 1, 0},
		{"two_vertices", 2, 1},
		{"five_vertices", 5, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := Trace{Vertices: make([]Point, tc.vertices)}
			if got := tr.NumSegments(); got != tc.want {
				t.Errorf("NumSegments() = %d, want %d", got, tc.want)
			}
			wantDegen := tc.vertices < 2
			if got := tr.Degenerate(); got != wantDegen {
				t.Errorf("Degenerate() = %v, want %v", got, wantDegen)
			}
		})
	}
}

func TestStoreCounts(t *testing.T) {
	s := NewStore()
	s.Add(Trace{Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}})
	s.Add(Trace{Vertices: []Point{{5, 5}}})
	s.Add(Trace{Vertices: []Point{{0, 0}, {0, 1}}})

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.NumVertices() != 6 {
		t.Errorf("NumVertices() = %d, want 6", s.NumVertices())
	}
	if s.NumSegments() != 3 {
		t.Errorf("NumSegments() = %d, want 3", s.NumSegments())
	}
}
