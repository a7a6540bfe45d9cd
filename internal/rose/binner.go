// Package rose builds circular histograms from orientation angles: the
// numeric half of a rose diagram. The binner is a pure single-pass
// function; it owns no state and every call recomputes from its inputs.
package rose

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidBinSpec is returned for a bin spec that yields no bins or
	// whose explicit edges are not strictly increasing.
	ErrInvalidBinSpec = errors.New("invalid bin spec")

	// ErrLengthMismatch is returned when the z sequence does not pair
	// one-to-one with the angle sequence.
	ErrLengthMismatch = errors.New("z length does not match angle length")
)

// Unit is the angular unit shared by the angles and any explicit edges of
// one binning call. Mixing units within a call is not supported; the unit
// fixes both the wraparound period and the bidirectional fold offset.
type Unit int

const (
	Degrees Unit = iota
	Radians
)

func (u Unit) period() float64 {
	if u == Radians {
		return 2 * math.Pi
	}
	return 360
}

// RadiusMode selects how a bin's raw count becomes its display radius.
type RadiusMode int

const (
	// RadiusCounts uses the raw count. Simple, but on a polar axis it
	// over-emphasizes high-count bins since area grows with radius squared.
	RadiusCounts RadiusMode = iota

	// RadiusEqualArea uses sqrt(count) so wedge area, not radius, is
	// proportional to count.
	RadiusEqualArea

	// RadiusDensity uses sqrt((count/n)/pi), giving wedges whose total
	// area over all bins is one; n is the post-fold sample count.
	RadiusDensity
)

// Config enumerates every knob of a binning call. The zero value means:
// caller must set BinCount or Edges; degrees; unidirectional; raw count
// radii; no aggregate.
type Config struct {
	// BinCount builds this many equal-width bins spanning one full
	// period, [0, 360) in degrees. Ignored when Edges is set.
	BinCount int

	// Edges, when non-nil, is an explicit strictly increasing edge
	// sequence in the same unit as the angles. Observations outside
	// [Edges[0], Edges[len-1]] are dropped.
	Edges []float64

	// StartZero rounds an odd BinCount up to the next even value so a
	// bin edge lands exactly on zero. No effect with explicit Edges.
	StartZero bool

	Unit          Unit
	Bidirectional bool
	RadiusMode    RadiusMode

	// Reduction aggregates the co-located z values per bin. Required
	// when z is supplied, except that Count needs no z at all.
	Reduction Reduction
}

// Bin is one wedge of the histogram. Start and Width are in the input
// unit. Aggregate is only meaningful when HasAggregate is true: bins with
// zero observations have no defined aggregate and must be excluded from
// downstream numeric work such as colour scaling.
type Bin struct {
	Start        float64
	Width        float64
	Count        float64
	Radius       float64
	Aggregate    float64
	HasAggregate bool
}

// Bins bins the angles (and optional co-located z values) into a circular
// histogram per cfg. Membership is half-open [edge_i, edge_i+1) except
// the last bin, which also takes observations exactly on its right edge.
// The bidirectional fold appends angle+halfPeriod for every observation,
// doubling the sample, before anything is counted.
func Bins(angles, z []float64, cfg Config) ([]Bin, error) {
	edges, err := cfg.buildEdges()
	if err != nil {
		return nil, err
	}
	if z != nil && len(z) != len(angles) {
		return nil, fmt.Errorf("%w: %d z values for %d angles", ErrLengthMismatch, len(z), len(angles))
	}
	if z == nil && cfg.Reduction.needsZ() {
		return nil, fmt.Errorf("%w: reduction requires z values, none supplied", ErrLengthMismatch)
	}

	period := cfg.Unit.period()
	half := period / 2

	// Step 1: bidirectional fold. The duplicate carries the same z.
	folded := angles
	foldedZ := z
	if cfg.Bidirectional {
		folded = make([]float64, 0, 2*len(angles))
		folded = append(folded, angles...)
		for _, a := range angles {
			folded = append(folded, a+half)
		}
		if z != nil {
			foldedZ = make([]float64, 0, 2*len(z))
			foldedZ = append(foldedZ, z...)
			foldedZ = append(foldedZ, z...)
		}
	}

	// Steps 2-4: normalize, count, and collect z per bin in one pass.
	nbins := len(edges) - 1
	bins := make([]Bin, nbins)
	var zPerBin [][]float64
	if foldedZ != nil {
		zPerBin = make([][]float64, nbins)
	}
	for i := range bins {
		bins[i].Start = edges[i]
		bins[i].Width = edges[i+1] - edges[i]
	}
	for i, a := range folded {
		for a < 0 {
			a += period
		}
		for a >= period {
			a -= period
		}
		idx := findBin(edges, a)
		if idx < 0 {
			continue
		}
		bins[idx].Count++
		if zPerBin != nil {
			zPerBin[idx] = append(zPerBin[idx], foldedZ[i])
		}
	}

	// Step 5: per-bin aggregate, masked for empty bins.
	if !cfg.Reduction.IsZero() {
		for i := range bins {
			if bins[i].Count == 0 {
				continue
			}
			if zPerBin != nil {
				bins[i].Aggregate = cfg.Reduction.reduce(zPerBin[i])
			} else {
				// Count reduction without z: the count is the aggregate.
				bins[i].Aggregate = bins[i].Count
			}
			bins[i].HasAggregate = true
		}
	}

	// Step 6: radius transform.
	total := float64(len(folded))
	for i := range bins {
		switch cfg.RadiusMode {
		case RadiusEqualArea:
			bins[i].Radius = math.Sqrt(bins[i].Count)
		case RadiusDensity:
			if total > 0 {
				bins[i].Radius = math.Sqrt(bins[i].Count / total / math.Pi)
			}
		default:
			bins[i].Radius = bins[i].Count
		}
	}

	return bins, nil
}

// buildEdges validates the bin spec and returns the edge sequence.
func (cfg Config) buildEdges() ([]float64, error) {
	if cfg.Edges != nil {
		if len(cfg.Edges) < 2 {
			return nil, fmt.Errorf("%w: need at least 2 edges, got %d", ErrInvalidBinSpec, len(cfg.Edges))
		}
		for i := 1; i < len(cfg.Edges); i++ {
			if cfg.Edges[i] <= cfg.Edges[i-1] {
				return nil, fmt.Errorf("%w: edges not strictly increasing at index %d", ErrInvalidBinSpec, i)
			}
		}
		return cfg.Edges, nil
	}

	n := cfg.BinCount
	if n < 1 {
		return nil, fmt.Errorf("%w: bin count %d", ErrInvalidBinSpec, n)
	}
	if cfg.StartZero && n%2 != 0 {
		n++
	}
	period := cfg.Unit.period()
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = float64(i) * period / float64(n)
	}
	// Close the last edge exactly on the period so right-edge membership
	// is not lost to rounding.
	edges[n] = period
	return edges, nil
}

// findBin returns the index of the bin containing a, or -1 when a lies
// outside the edge range. Half-open bins, last bin right-closed.
func findBin(edges []float64, a float64) int {
	if a < edges[0] || a > edges[len(edges)-1] {
		return -1
	}
	if a == edges[len(edges)-1] {
		return len(edges) - 2
	}
	// SearchFloat64s gives the smallest i with edges[i] >= a; an exact
	// edge hit opens bin i, anything strictly inside belongs to i-1.
	i := sort.SearchFloat64s(edges, a)
	if edges[i] == a {
		return i
	}
	return i - 1
}
