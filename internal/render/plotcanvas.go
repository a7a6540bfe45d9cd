package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// arcStepRad is the sampling resolution used to approximate a wedge's arc
// with polygon vertices.
const arcStepRad = 2 * math.Pi / 180

// PlotCanvas draws wedges onto a gonum plot as filled polygons and saves
// the result as an image file. It renders polar geometry on Cartesian
// axes: each wedge becomes a sector polygon around the origin.
type PlotCanvas struct {
	p         *plot.Plot
	clockwise bool
	offset    float64
	maxRadius float64
}

// NewPlotCanvas creates an empty canvas with hidden axes.
func NewPlotCanvas(title string) *PlotCanvas {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	return &PlotCanvas{p: p}
}

// Configure fixes the rotation sense and zero-angle offset for all
// subsequent wedges.
func (pc *PlotCanvas) Configure(clockwise bool, offset float64) {
	pc.clockwise = clockwise
	pc.offset = offset
}

// DrawWedge adds one filled sector polygon to the plot.
func (pc *PlotCanvas) DrawWedge(w Wedge) error {
	if w.Radius <= 0 {
		return nil
	}
	if w.Radius > pc.maxRadius {
		pc.maxRadius = w.Radius
	}

	steps := int(math.Ceil(w.Width/arcStepRad)) + 1
	if steps < 2 {
		steps = 2
	}
	pts := make(plotter.XYs, 0, steps+2)
	pts = append(pts, plotter.XY{X: 0, Y: 0})
	for i := 0; i < steps; i++ {
		theta := w.Start + w.Width*float64(i)/float64(steps-1)
		screen := pc.offset + theta
		if pc.clockwise {
			screen = pc.offset - theta
		}
		pts = append(pts, plotter.XY{
			X: w.Radius * math.Cos(screen),
			Y: w.Radius * math.Sin(screen),
		})
	}

	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return fmt.Errorf("failed to build wedge polygon: %w", err)
	}
	poly.Color = w.Color
	poly.LineStyle.Color = w.Color
	pc.p.Add(poly)
	return nil
}

// Save writes the plot to file, square with symmetric axes so the rose is
// not distorted.
func (pc *PlotCanvas) Save(path string, size vg.Length) error {
	r := pc.maxRadius
	if r == 0 {
		r = 1
	}
	pc.p.X.Min, pc.p.X.Max = -r, r
	pc.p.Y.Min, pc.p.Y.Max = -r, r
	if err := pc.p.Save(size, size, path); err != nil {
		return fmt.Errorf("failed to save rose plot: %w", err)
	}
	return nil
}
