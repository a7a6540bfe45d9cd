package rose

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reduction is the tagged set of per-bin scalar reductions applied to the
// co-located z values of a bin. Count ignores the z values entirely and
// reduces to the observation count, matching the "colour by count"
// convention on field rose diagrams. Reductions must be order-independent:
// the binner gives no guarantee about the order of z values within a bin.
type Reduction struct {
	kind reductionKind
	fn   func([]float64) float64
}

type reductionKind int

const (
	reductionNone reductionKind = iota
	reductionCount
	reductionMean
	reductionSum
	reductionCustom
)

// Count reduces every bin to its own observation count.
func Count() Reduction { return Reduction{kind: reductionCount} }

// Mean reduces a bin to the arithmetic mean of its z values.
func Mean() Reduction { return Reduction{kind: reductionMean} }

// Sum reduces a bin to the sum of its z values.
func Sum() Reduction { return Reduction{kind: reductionSum} }

// Custom wraps an arbitrary order-independent reduction.
func Custom(fn func([]float64) float64) Reduction {
	return Reduction{kind: reductionCustom, fn: fn}
}

// IsZero reports whether no reduction was configured.
func (r Reduction) IsZero() bool { return r.kind == reductionNone }

// needsZ reports whether the reduction reads the z values.
func (r Reduction) needsZ() bool {
	return r.kind == reductionMean || r.kind == reductionSum || r.kind == reductionCustom
}

// reduce applies the reduction to one bin's z values. Callers must mask
// empty bins before calling; reduce assumes len(zs) > 0 except for Count.
func (r Reduction) reduce(zs []float64) float64 {
	switch r.kind {
	case reductionCount:
		return float64(len(zs))
	case reductionMean:
		return stat.Mean(zs, nil)
	case reductionSum:
		return floats.Sum(zs)
	case reductionCustom:
		return r.fn(zs)
	}
	return 0
}
