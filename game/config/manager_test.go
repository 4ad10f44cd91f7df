package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

func createValidConfig() *engine.ScenarioConfig {
	config := &engine.ScenarioConfig{
		Name:            "Test Scenario",
		Description:     "Test scenario",
		Width:           5,
		Height:          5,
		BaseLandHeight:  16,
		WaterHeight:     32,
		StartingCash:    5000,
		LandPrice:       300,
		TreeRemovalCost: 40,
		MaxElements:     64,
		Layout: []string{
			"NNNNN",
			"N..TS",
			"N.W.S",
			"N...S",
			"NSSSS",
		},
		Legend: map[string]string{
			".": "owned", "S": "for_sale", "N": "not_owned",
			"W": "water", "T": "tree",
		},
	}
	config.Messages.Welcome = "Welcome!"
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.ScenarioConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "starter", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Test Scenario" {
			t.Errorf("Expected starter.json as default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory falls back to built-in park", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got: %v", err)
		}
		def := manager.GetDefault()
		if def == nil || def.Name != engine.DefaultScenarioConfig().Name {
			t.Errorf("Expected built-in default scenario, got %+v", def)
		}
	})

	t.Run("first valid config when no starter", func(t *testing.T) {
		dir := t.TempDir()
		b := createValidConfig()
		b.Name = "Bravo"
		writeConfigFile(t, dir, "bravo", b)
		a := createValidConfig()
		a.Name = "Alpha"
		writeConfigFile(t, dir, "alpha", a)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Alpha" {
			t.Errorf("Expected Alpha as default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	lake := createValidConfig()
	lake.Name = "Lakeside"
	lake.StartingCash = 20000
	writeConfigFile(t, dir, "lakeside", lake)

	invalid := createValidConfig()
	invalid.Width = 1
	writeConfigFile(t, dir, "invalid", invalid)

	if err := os.WriteFile(filepath.Join(dir, "malformed.json"), []byte("{ not json"), 0644); err != nil {
		t.Fatalf("Failed to write malformed config: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("lakeside")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Lakeside" {
			t.Errorf("Expected config name 'Lakeside', got '%s'", config.Name)
		}
		if config.StartingCash != 20000 {
			t.Errorf("Expected starting cash 20000, got %d", config.StartingCash)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("lakeside.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Lakeside" {
			t.Errorf("Expected config name 'Lakeside', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("lakeside")
		config2, _ := manager.LoadConfig("lakeside")
		if config1 != config2 {
			t.Error("Expected same config instance from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("path traversal is not found", func(t *testing.T) {
		_, err := manager.LoadConfig("../etc/passwd")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		_, err := manager.LoadConfig("malformed")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		config := createValidConfig()
		config.Name = name
		writeConfigFile(t, dir, name, config)
	}
	bad := createValidConfig()
	bad.Name = ""
	writeConfigFile(t, dir, "broken", bad)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644)
	os.Mkdir(filepath.Join(dir, "sub.json"), 0755)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 3 {
		t.Fatalf("Expected 3 valid configs, got %d", len(configs))
	}

	want := []string{"alpha", "mid", "zeta"}
	for i, info := range configs {
		if info.ConfigID != want[i] {
			t.Errorf("Expected config %d to be %s, got %s", i, want[i], info.ConfigID)
		}
		if info.Filename != want[i]+".json" {
			t.Errorf("Expected filename %s.json, got %s", want[i], info.Filename)
		}
		if info.Width != 5 || info.Height != 5 || info.StartingCash != 5000 {
			t.Errorf("Unexpected config info: %+v", info)
		}
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "starter", createValidConfig())
	other := createValidConfig()
	other.Name = "Other"
	writeConfigFile(t, dir, "other", other)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Other" {
		t.Errorf("Expected default Other, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error for missing default")
	}
	if manager.GetDefault().Name != "Other" {
		t.Error("Expected failed SetDefault to keep the previous default")
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig()
	config.Name = "Saved"
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Fatalf("Expected saved.json on disk: %v", err)
	}

	loaded, err := manager.LoadConfig("saved")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("Expected saved config, got %s", loaded.Name)
	}

	bad := createValidConfig()
	bad.Messages.Welcome = ""
	if err := manager.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad name, got %v", err)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "starter", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	before, _ := manager.LoadConfig("starter")

	changed := createValidConfig()
	changed.Name = "Changed"
	writeConfigFile(t, dir, "starter", changed)

	if cached, _ := manager.LoadConfig("starter"); cached != before {
		t.Error("Expected cached config before refresh")
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	after, _ := manager.LoadConfig("starter")
	if after.Name != "Changed" {
		t.Errorf("Expected refreshed config, got %s", after.Name)
	}
	if manager.GetDefault().Name != "Changed" {
		t.Errorf("Expected refreshed default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "starter", createValidConfig())
	writeConfigFile(t, dir, "other", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 60)
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("other"); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := manager.ListConfigs(); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if manager.GetDefault() == nil {
				errs <- errors.New("nil default")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent access error: %v", err)
	}
}
