// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Export   ExportConfig   `yaml:"export"`
	Inspect  InspectConfig  `yaml:"inspect"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 to disable

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig controls how the demo scene is built and driven.
type SceneConfig struct {
	Optimize   bool    `yaml:"optimize"`
	Grid       int     `yaml:"grid"`       // Instances per side of the shared cube grid
	TimeScale  float32 `yaml:"time_scale"` // Multiplies frame delta before update
	ShowBounds bool    `yaml:"show_bounds"`
}

// ExportConfig selects a one-shot export instead of opening a window.
type ExportConfig struct {
	Format string `yaml:"format"` // yaml, dot or stream; empty runs the viewer
	Out    string `yaml:"out"`    // Output path; empty or "-" writes to stdout
	Finish bool   `yaml:"finish"` // Complete transitions before exporting
}

// InspectConfig holds the HTTP inspector settings.
type InspectConfig struct {
	Addr     string        `yaml:"addr"` // Listen address; empty disables the inspector
	Refresh  time.Duration `yaml:"refresh"`
	Shutdown time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // console or json
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Samples:    4,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Optimize:  true,
			Grid:      4,
			TimeScale: 1,
		},
		Export: ExportConfig{
			Format: "",
			Out:    "-",
		},
		Inspect: InspectConfig{
			Addr:     "",
			Refresh:  500 * time.Millisecond,
			Shutdown: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
}
