package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagExport     = flag.String("export", "", "Export the scene (yaml, dot, stream) and exit")
	flagOut        = flag.String("out", "", "Export output path (default stdout)")
	flagInspect    = flag.String("inspect", "", "Serve the HTTP inspector on this address")
	flagNoOptimize = flag.Bool("no-optimize", false, "Skip the scene optimizer")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Scene.ShowBounds = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagExport != "" {
		cfg.Export.Format = *flagExport
	}
	if *flagOut != "" {
		cfg.Export.Out = *flagOut
	}
	if *flagInspect != "" {
		cfg.Inspect.Addr = *flagInspect
	}
	if *flagNoOptimize {
		cfg.Scene.Optimize = false
	}
}
