// Command rose renders a rose diagram from a node file in one shot,
// without the server or the dataset store.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot/vg"

	"github.com/strata-data/fracture.report/internal/config"
	"github.com/strata-data/fracture.report/internal/geometry"
	"github.com/strata-data/fracture.report/internal/render"
	"github.com/strata-data/fracture.report/internal/rose"
	"github.com/strata-data/fracture.report/internal/trace"
)

var (
	input         = flag.String("input", "", "Node file to read (required)")
	output        = flag.String("o", "rose.png", "Output image file (.png, .svg, .pdf)")
	bins          = flag.Int("bins", config.DefaultBins, "Number of equal-width bins over the full circle")
	bidirectional = flag.Bool("bidirectional", true, "Treat strikes as undirected, mirroring each observation")
	radiusMode    = flag.String("radius-mode", config.DefaultRadiusMode, "Radius transform: counts, equal_area, or density")
	reduction     = flag.String("reduction", config.DefaultReduction, "Per-bin reduction over segment lengths: count, mean, or sum")
	colorBy       = flag.String("color-by", config.DefaultColorBy, "Wedge colouring: fixed or aggregate")
	title         = flag.String("title", "", "Plot title (defaults to the input file name)")
	size          = flag.Float64("size", 6, "Output size in inches (square)")
)

func main() {
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &config.AnalysisConfig{
		Bins:          bins,
		Bidirectional: bidirectional,
		RadiusMode:    radiusMode,
		Reduction:     reduction,
		ColorBy:       colorBy,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid analysis options: %v", err)
	}

	store, stats, err := trace.LoadFile(*input)
	if err != nil {
		log.Fatalf("failed to load node file: %v", err)
	}

	bounds, err := store.BoundingBox()
	if err != nil {
		log.Fatalf("nothing to plot: %v", err)
	}
	fmt.Printf("traces: %d  vertices: %d  segments: %d\n", stats.Traces, stats.Vertices, store.NumSegments())
	fmt.Printf("extent: x [%g, %g]  y [%g, %g]\n", bounds.XMin, bounds.XMax, bounds.YMin, bounds.YMax)

	angles, err := geometry.SegmentAngles(store)
	if err != nil {
		log.Fatalf("failed to derive strike angles: %v", err)
	}
	lengths, err := geometry.SegmentLengths(store)
	if err != nil {
		log.Fatalf("failed to derive segment lengths: %v", err)
	}

	binned, err := rose.Bins(angles, lengths, cfg.RoseConfig())
	if err != nil {
		log.Fatalf("failed to bin strike angles: %v", err)
	}

	plotTitle := *title
	if plotTitle == "" {
		plotTitle = *input
	}
	canvas := render.NewPlotCanvas(plotTitle)
	colors := render.ColorSpec{
		Fixed:       color.RGBA{B: 255, A: 255},
		ByAggregate: cfg.ColorByAggregate(),
	}
	if err := render.Rose(canvas, binned, rose.Degrees, colors); err != nil {
		log.Fatalf("failed to render rose: %v", err)
	}
	if err := canvas.Save(*output, vg.Length(*size)*vg.Inch); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("wrote %s (%d bins)", *output, len(binned))
}
