package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/strata-data/fracture.report/internal/rose"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()
	if cfg.GetBins() != DefaultBins {
		t.Errorf("GetBins() = %d, want %d", cfg.GetBins(), DefaultBins)
	}
	if cfg.GetBidirectional() {
		t.Error("GetBidirectional() default must be false")
	}
	if cfg.GetRadiusMode() != "counts" || cfg.GetReduction() != "count" || cfg.GetColorBy() != "fixed" {
		t.Errorf("unexpected defaults: %q %q %q", cfg.GetRadiusMode(), cfg.GetReduction(), cfg.GetColorBy())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty config must validate, got %v", err)
	}
}

func TestLoadAnalysisConfig(t *testing.T) {
	path := writeConfig(t, "rose.json", `{
		"bins": 18,
		"bidirectional": true,
		"radius_mode": "equal_area",
		"reduction": "mean",
		"color_by": "aggregate"
	}`)

	cfg, err := LoadAnalysisConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetBins() != 18 || !cfg.GetBidirectional() {
		t.Errorf("unexpected values: bins=%d bidirectional=%v", cfg.GetBins(), cfg.GetBidirectional())
	}

	rc := cfg.RoseConfig()
	if rc.BinCount != 18 || !rc.Bidirectional || rc.RadiusMode != rose.RadiusEqualArea {
		t.Errorf("unexpected rose config: %+v", rc)
	}
	if rc.Unit != rose.Degrees {
		t.Error("geometry outputs are degrees; the unit must be fixed")
	}
	if !cfg.ColorByAggregate() {
		t.Error("ColorByAggregate() = false, want true")
	}
}

func TestLoadAnalysisConfigPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"bins": 72}`)
	cfg, err := LoadAnalysisConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetBins() != 72 {
		t.Errorf("GetBins() = %d, want 72", cfg.GetBins())
	}
	// Everything else keeps its default.
	if cfg.GetRadiusMode() != DefaultRadiusMode {
		t.Errorf("GetRadiusMode() = %q, want default", cfg.GetRadiusMode())
	}
}

func TestValidateRejects(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"zero_bins", `{"bins": 0}`},
		{"negative_bins", `{"bins": -5}`},
		{"bad_radius_mode", `{"radius_mode": "sqrt"}`},
		{"bad_reduction", `{"reduction": "median"}`},
		{"bad_color_by", `{"color_by": "rainbow"}`},
		{"malformed_json", `{"bins": `},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.name+".json", tc.content)
			if _, err := LoadAnalysisConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadAnalysisConfigRequiresJSONExt(t *testing.T) {
	path := writeConfig(t, "rose.yaml", `{}`)
	if _, err := LoadAnalysisConfig(path); err == nil {
		t.Error("expected error for non-.json extension")
	}
}
