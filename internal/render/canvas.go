// Package render translates binned rose geometry into draw commands for a
// 2-D polar canvas. The adapter carries no algorithmic content: one wedge
// per bin, order preserved, with the canvas oriented clockwise and 0° at
// North. That orientation encodes the geological strike convention (strike
// measured clockwise from north) and must not be made configurable.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/strata-data/fracture.report/internal/rose"
)

// NorthOffset is the canvas zero-angle offset: 90° in canvas terms, so
// that angle zero points up rather than right.
const NorthOffset = math.Pi / 2

// Wedge is one draw command: a filled circular sector in canvas-ready
// radians, measured per the orientation passed to Configure.
type Wedge struct {
	Start  float64
	Width  float64
	Radius float64
	Color  color.Color
}

// Canvas is the external drawing surface. Implementations interpret wedge
// angles according to the orientation given to Configure.
type Canvas interface {
	// Configure fixes the rotation sense and the zero-angle offset in
	// radians before any wedge is drawn.
	Configure(clockwise bool, offset float64)

	// DrawWedge draws one filled sector.
	DrawWedge(w Wedge) error
}

// ColorSpec selects how wedges are coloured: a single fixed colour, or a
// per-bin ramp over the masked bin aggregates. Bins without an aggregate
// are excluded from the ramp scaling and fall back to Fixed.
type ColorSpec struct {
	Fixed       color.Color
	ByAggregate bool
}

// defaultFixed matches the field convention of plain blue roses.
var defaultFixed = color.RGBA{B: 255, A: 255}

// Rose issues one wedge per bin to the canvas. Bin edges arrive in unit
// (the unit the binner ran in) and leave as canvas radians. The canvas is
// always configured clockwise with 0° at North first.
func Rose(c Canvas, bins []rose.Bin, unit rose.Unit, colors ColorSpec) error {
	c.Configure(true, NorthOffset)

	fixed := colors.Fixed
	if fixed == nil {
		fixed = defaultFixed
	}
	ramp := aggregateRamp(bins, colors)

	for i, b := range bins {
		w := Wedge{
			Start:  toRadians(b.Start, unit),
			Width:  toRadians(b.Width, unit),
			Radius: b.Radius,
			Color:  fixed,
		}
		if ramp != nil && b.HasAggregate {
			w.Color = ramp(b.Aggregate)
		}
		if err := c.DrawWedge(w); err != nil {
			return fmt.Errorf("failed to draw wedge %d: %w", i, err)
		}
	}
	return nil
}

// aggregateRamp builds a scalar-to-colour mapping over the masked
// aggregates, or nil when fixed colouring applies.
func aggregateRamp(bins []rose.Bin, colors ColorSpec) func(float64) color.Color {
	if !colors.ByAggregate {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range bins {
		if !b.HasAggregate {
			continue
		}
		if b.Aggregate < lo {
			lo = b.Aggregate
		}
		if b.Aggregate > hi {
			hi = b.Aggregate
		}
	}
	if lo > hi {
		return nil
	}
	span := hi - lo
	return func(v float64) color.Color {
		t := 0.0
		if span > 0 {
			t = (v - lo) / span
		}
		return rampColor(t)
	}
}

func toRadians(v float64, unit rose.Unit) float64 {
	if unit == rose.Radians {
		return v
	}
	return v * math.Pi / 180
}
