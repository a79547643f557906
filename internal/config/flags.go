package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLibrary    = flag.String("library", "", "Part library root directory")
	flagTolerance  = flag.Float64("tolerance", 0, "Weld angle tolerance in degrees")
	flagNoWeld     = flag.Bool("no-weld", false, "Disable mesh welding")
	flagWindowed   = flag.Bool("windowed", false, "Run viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file")
)

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLibrary != "" {
		cfg.Library.Path = *flagLibrary
	}
	if *flagTolerance > 0 {
		cfg.Import.WeldToleranceDeg = float32(*flagTolerance)
	}
	if *flagNoWeld {
		cfg.Import.Weld = false
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
