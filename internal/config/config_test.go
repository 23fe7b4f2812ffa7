package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test scene defaults
	if !cfg.Scene.Optimize {
		t.Error("expected optimize to be true by default")
	}
	if cfg.Scene.Grid != 4 {
		t.Errorf("expected grid 4, got %d", cfg.Scene.Grid)
	}
	if cfg.Scene.TimeScale != 1 {
		t.Errorf("expected time scale 1, got %f", cfg.Scene.TimeScale)
	}

	// Test export and inspect defaults
	if cfg.Export.Format != "" {
		t.Errorf("expected no export by default, got %s", cfg.Export.Format)
	}
	if cfg.Export.Out != "-" {
		t.Errorf("expected stdout export, got %s", cfg.Export.Out)
	}
	if cfg.Inspect.Addr != "" {
		t.Errorf("expected inspector disabled, got %s", cfg.Inspect.Addr)
	}
	if cfg.Inspect.Refresh != 500*time.Millisecond {
		t.Errorf("expected refresh 500ms, got %v", cfg.Inspect.Refresh)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

scene:
  optimize: false
  grid: 8
  time_scale: 0.5
  show_bounds: true

export:
  format: dot
  out: scene.dot
  finish: true

inspect:
  addr: "127.0.0.1:8080"
  refresh: 1s

logging:
  level: "debug"
  log_file: "sgview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Scene.Optimize {
		t.Error("expected optimize to be false")
	}
	if cfg.Scene.Grid != 8 {
		t.Errorf("expected grid 8, got %d", cfg.Scene.Grid)
	}
	if cfg.Scene.TimeScale != 0.5 {
		t.Errorf("expected time scale 0.5, got %f", cfg.Scene.TimeScale)
	}
	if !cfg.Scene.ShowBounds {
		t.Error("expected show_bounds to be true")
	}

	if cfg.Export.Format != "dot" || cfg.Export.Out != "scene.dot" || !cfg.Export.Finish {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}

	if cfg.Inspect.Addr != "127.0.0.1:8080" {
		t.Errorf("expected inspector on 127.0.0.1:8080, got %s", cfg.Inspect.Addr)
	}
	if cfg.Inspect.Refresh != time.Second {
		t.Errorf("expected refresh 1s, got %v", cfg.Inspect.Refresh)
	}
	// Not in the file, so the default survives.
	if cfg.Inspect.Shutdown != 2*time.Second {
		t.Errorf("expected shutdown timeout 2s, got %v", cfg.Inspect.Shutdown)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "sgview.log" {
		t.Errorf("expected log file 'sgview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  gird: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected misspelled key to be rejected")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Scene.Grid != 4 {
		t.Errorf("expected default grid to survive, got %d", cfg.Scene.Grid)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  grid: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Scene.Grid != 2 {
		t.Errorf("expected grid 2 from %s, got %d", EnvConfig, cfg.Scene.Grid)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"negative grid", func(c *Config) { c.Scene.Grid = -1 }, true},
		{"negative samples", func(c *Config) { c.Graphics.Samples = -2 }, true},
		{"stream export", func(c *Config) { c.Export.Format = "stream" }, false},
		{"unknown export", func(c *Config) { c.Export.Format = "obj" }, true},
		{"zero time scale", func(c *Config) { c.Scene.TimeScale = 0 }, true},
		{"inspector without refresh", func(c *Config) { c.Inspect.Addr = ":0"; c.Inspect.Refresh = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"json logs", func(c *Config) { c.Logging.Format = "json" }, false},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Scene.ShowBounds {
					t.Error("expected show_bounds to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "export flags",
			setup: func() {
				*flagExport = "yaml"
				*flagOut = "scene.yaml"
			},
			verify: func(cfg *Config) {
				if cfg.Export.Format != "yaml" {
					t.Errorf("expected export format yaml, got %s", cfg.Export.Format)
				}
				if cfg.Export.Out != "scene.yaml" {
					t.Errorf("expected export out scene.yaml, got %s", cfg.Export.Out)
				}
			},
			teardown: func() {
				*flagExport = ""
				*flagOut = ""
			},
		},
		{
			name: "inspect flag",
			setup: func() {
				*flagInspect = ":9090"
			},
			verify: func(cfg *Config) {
				if cfg.Inspect.Addr != ":9090" {
					t.Errorf("expected inspector on :9090, got %s", cfg.Inspect.Addr)
				}
			},
			teardown: func() {
				*flagInspect = ""
			},
		},
		{
			name: "no-optimize flag",
			setup: func() {
				*flagNoOptimize = true
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Optimize {
					t.Error("expected optimize to be off with no-optimize flag")
				}
			},
			teardown: func() {
				*flagNoOptimize = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  format: obj\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected unknown export format to be rejected")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Scene.Grid = 6
	cfg.Inspect.Addr = ":8080"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.Grid != 6 || loaded.Inspect.Addr != ":8080" {
		t.Errorf("saved config did not round trip: %+v", loaded)
	}
}

func TestSaveToReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.HasPrefix(string(data), header) {
		t.Errorf("expected header comment, got %q", data[:min(len(data), 40)])
	}
	if !strings.Contains(string(data), "shutdown_timeout: 2s") {
		t.Errorf("expected durations written as strings:\n%s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in %s, got %d entries", dir, len(entries))
	}
}
