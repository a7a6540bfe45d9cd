// Package config holds the analysis configuration record: every knob of
// the rose pipeline in one JSON document, so a saved config reproduces a
// diagram exactly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strata-data/fracture.report/internal/rose"
)

// Defaults applied for fields omitted from the JSON document.
const (
	DefaultBins       = 36
	DefaultRadiusMode = "counts"
	DefaultReduction  = "count"
	DefaultColorBy    = "fixed"
)

// AnalysisConfig configures one rose analysis. All fields are pointers so
// partial configs are safe: omitted fields keep their defaults via the
// Get* accessors.
type AnalysisConfig struct {
	// Bins is the equal-width bin count over the full circle.
	Bins *int `json:"bins,omitempty"`

	// Bidirectional treats each strike and its opposite as one
	// undirected orientation, doubling the sample before binning.
	Bidirectional *bool `json:"bidirectional,omitempty"`

	// RadiusMode is one of "counts", "equal_area", "density".
	RadiusMode *string `json:"radius_mode,omitempty"`

	// Reduction is one of "count", "mean", "sum". Custom reductions are
	// only available through the Go API.
	Reduction *string `json:"reduction,omitempty"`

	// ColorBy is "fixed" or "aggregate".
	ColorBy *string `json:"color_by,omitempty"`
}

// EmptyAnalysisConfig returns a config with all fields unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

func (c *AnalysisConfig) GetBins() int {
	if c.Bins != nil {
		return *c.Bins
	}
	return DefaultBins
}

func (c *AnalysisConfig) GetBidirectional() bool {
	if c.Bidirectional != nil {
		return *c.Bidirectional
	}
	return false
}

func (c *AnalysisConfig) GetRadiusMode() string {
	if c.RadiusMode != nil {
		return *c.RadiusMode
	}
	return DefaultRadiusMode
}

func (c *AnalysisConfig) GetReduction() string {
	if c.Reduction != nil {
		return *c.Reduction
	}
	return DefaultReduction
}

func (c *AnalysisConfig) GetColorBy() string {
	if c.ColorBy != nil {
		return *c.ColorBy
	}
	return DefaultColorBy
}

// Validate checks every set field. Omitted fields are always valid.
func (c *AnalysisConfig) Validate() error {
	if c.Bins != nil && *c.Bins < 1 {
		return fmt.Errorf("bins must be at least 1, got %d", *c.Bins)
	}
	switch c.GetRadiusMode() {
	case "counts", "equal_area", "density":
	default:
		return fmt.Errorf("unknown radius_mode %q", c.GetRadiusMode())
	}
	switch c.GetReduction() {
	case "count", "mean", "sum":
	default:
		return fmt.Errorf("unknown reduction %q", c.GetReduction())
	}
	switch c.GetColorBy() {
	case "fixed", "aggregate":
	default:
		return fmt.Errorf("unknown color_by %q", c.GetColorBy())
	}
	return nil
}

// RoseConfig translates the record into the binner's configuration.
// Geometry outputs are degrees, so the unit is fixed here.
func (c *AnalysisConfig) RoseConfig() rose.Config {
	cfg := rose.Config{
		BinCount:      c.GetBins(),
		Unit:          rose.Degrees,
		Bidirectional: c.GetBidirectional(),
	}
	switch c.GetRadiusMode() {
	case "equal_area":
		cfg.RadiusMode = rose.RadiusEqualArea
	case "density":
		cfg.RadiusMode = rose.RadiusDensity
	}
	switch c.GetReduction() {
	case "count":
		cfg.Reduction = rose.Count()
	case "mean":
		cfg.Reduction = rose.Mean()
	case "sum":
		cfg.Reduction = rose.Sum()
	}
	return cfg
}

// ColorByAggregate reports whether wedges are coloured by their bin
// aggregate rather than a fixed colour.
func (c *AnalysisConfig) ColorByAggregate() bool {
	return c.GetColorBy() == "aggregate"
}

// LoadAnalysisConfig loads and validates a config from a JSON file.
// Fields omitted from the file retain their defaults, so partial configs
// are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
