package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

func writeScenario(t *testing.T, dir, name string, config *engine.ScenarioConfig) string {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal scenario: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	return path
}

// smallScenario is a 4x4 park; layout rows replace the default
func smallScenario(layout ...string) *engine.ScenarioConfig {
	config := engine.DefaultScenarioConfig()
	config.Name = "Small"
	config.Width = 4
	config.Height = 4
	config.MaxElements = 64
	config.Layout = layout
	return config
}

func contains(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestValidateScenario_Valid(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "default.json", engine.DefaultScenarioConfig())

	result := validateScenario(path)
	if !result.Valid {
		t.Fatalf("Expected valid scenario, got: %v", result.Messages)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", result.Warnings)
	}
	if result.File != "default.json" {
		t.Errorf("Expected file name default.json, got %s", result.File)
	}
	if !contains(result.Messages, "✓ Owned tiles: 100") || !contains(result.Messages, "✓ For sale: 21 at 90.00") {
		t.Errorf("Unexpected summary: %v", result.Messages)
	}
}

func TestValidateScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	os.WriteFile(badJSON, []byte(`{"name": "test", invalid json}`), 0644)

	badSize := engine.DefaultScenarioConfig()
	badSize.Layout = badSize.Layout[:3]

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"missing file", filepath.Join(dir, "missing.json"), "Failed to read file"},
		{"invalid json", badJSON, "invalid character"},
		{"layout mismatch", writeScenario(t, dir, "size.json", badSize), "layout must have 12 rows"},
		{"no owned land", writeScenario(t, dir, "none.json", smallScenario("NNNN", "NSSN", "NSSN", "NNNN")), "at least 1 owned tile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateScenario(tt.path)
			if result.Valid {
				t.Fatal("Expected invalid scenario")
			}
			if !contains(result.Messages, tt.wantMsg) {
				t.Errorf("Expected %q in %v", tt.wantMsg, result.Messages)
			}
		})
	}
}

func TestValidateScenario_IsolatedLand(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "island.json", smallScenario(
		"NNNN",
		"N..N",
		"NNNN",
		"SNNN",
	))

	result := validateScenario(path)
	if !result.Valid {
		t.Fatalf("Isolated land is a warning, got errors: %v", result.Messages)
	}
	if !contains(result.Warnings, "1/1 for-sale tiles") || !contains(result.Warnings, "Isolated land at (0,3)") {
		t.Errorf("Unexpected warnings: %v", result.Warnings)
	}
}

func TestValidateScenario_NoCash(t *testing.T) {
	config := engine.DefaultScenarioConfig()
	config.StartingCash = 0
	path := writeScenario(t, t.TempDir(), "broke.json", config)

	result := validateScenario(path)
	if !contains(result.Warnings, "does not cover one maze tile (13.00)") {
		t.Errorf("Expected cash warning, got %v", result.Warnings)
	}
}

func TestUnreachableLand(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   []engine.Position
	}{
		{"empty", nil, nil},
		{"adjacent", []string{"..S", "NNN"}, nil},
		{"chain of sale land", []string{".SS", "NNS"}, nil},
		{"blocked by not owned", []string{".NS"}, []engine.Position{{X: 2, Y: 0}}},
		{"diagonal does not count", []string{".N", "NS"}, []engine.Position{{X: 1, Y: 1}}},
		{"only sale land", []string{"SS"}, []engine.Position{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		{"water and trees are park land", []string{"WTS"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unreachableLand(tt.layout)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestAnalyzeScenario(t *testing.T) {
	a := analyzeScenario(engine.DefaultScenarioConfig())

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"owned", a.Owned, 100},
		{"for sale", a.ForSale, 21},
		{"not owned", a.NotOwned, 23},
		{"water", a.Water, 4},
		{"scenery", a.Scenery, 3},
		{"paths", a.Paths, 18},
		{"free tiles", a.FreeTiles, 75},
		{"affordable maze", a.AffordableMaze, 75},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}
	if a.LandCost != 21*900 {
		t.Errorf("Expected land cost %d, got %d", 21*900, a.LandCost)
	}
	if a.MazePiece != 130 {
		t.Errorf("Expected maze piece 130, got %d", a.MazePiece)
	}
}

func TestAnalyzeScenario_CashLimited(t *testing.T) {
	config := engine.DefaultScenarioConfig()
	config.StartingCash = 400

	a := analyzeScenario(config)
	if a.AffordableMaze != 3 {
		t.Errorf("Expected 3 affordable maze tiles, got %d", a.AffordableMaze)
	}

	var out bytes.Buffer
	printAnalysis(&out, a)
	if !strings.Contains(out.String(), "Not all land is affordable") {
		t.Errorf("Expected a land warning, got: %s", out.String())
	}
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "default.json", engine.DefaultScenarioConfig())

	t.Run("validate", func(t *testing.T) {
		var out bytes.Buffer
		if err := newCommand(&out).Run(context.Background(), []string{"scenario", "validate", dir}); err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(out.String(), "All scenarios are valid") {
			t.Errorf("Unexpected output: %s", out.String())
		}
	})

	t.Run("analyze", func(t *testing.T) {
		var out bytes.Buffer
		if err := newCommand(&out).Run(context.Background(), []string{"scenario", "analyze", dir}); err != nil {
			t.Fatalf("analyze failed: %v", err)
		}
		if !strings.Contains(out.String(), "=== Analyzing default.json ===") || !strings.Contains(out.String(), "Free owned tiles: 75") {
			t.Errorf("Unexpected output: %s", out.String())
		}
	})

	t.Run("empty dir", func(t *testing.T) {
		var out bytes.Buffer
		err := newCommand(&out).Run(context.Background(), []string{"scenario", "analyze", t.TempDir()})
		if err == nil || !strings.Contains(err.Error(), "no scenario files") {
			t.Errorf("Expected no-files error, got %v", err)
		}
	})
}

func TestRunValidate_Strict(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "island.json", smallScenario("NNNN", "N..N", "NNNN", "SNNN"))

	var out bytes.Buffer
	if err := runValidate(&out, []string{path}, false); err != nil {
		t.Errorf("Warnings alone should pass, got %v", err)
	}

	out.Reset()
	if err := runValidate(&out, []string{path}, true); err == nil {
		t.Error("Expected strict mode to fail on warnings")
	}
	if !strings.Contains(out.String(), "❌ INVALID") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestBundledScenarios(t *testing.T) {
	files, err := scenarioFiles(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Skipf("Skipping test - bundled scenarios not found: %v", err)
	}

	var out bytes.Buffer
	if err := runValidate(&out, files, true); err != nil {
		t.Errorf("Bundled scenarios must pass strict validation:\n%s", out.String())
	}
}
