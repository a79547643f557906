// Package config handles importer and viewer configuration.
package config

import "path/filepath"

// Config holds all brickmesh settings.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Import  ImportConfig  `yaml:"import"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// LibraryConfig holds part library settings.
type LibraryConfig struct {
	Path       string `yaml:"path"`        // Root of the part library tree
	ColorsFile string `yaml:"colors_file"` // LDConfig color definitions, relative to Path when not absolute
}

// ImportConfig holds mesh construction settings.
type ImportConfig struct {
	Weld             bool    `yaml:"weld"`
	WeldToleranceDeg float32 `yaml:"weld_tolerance_deg"`
}

// ViewerConfig holds display and rendering settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{
			Path:       "parts",
			ColorsFile: "LDConfig.ldr",
		},
		Import: ImportConfig{
			Weld:             true,
			WeldToleranceDeg: 60,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ColorsPath resolves the color definitions file against the library
// root when the configured path is relative.
func (c *Config) ColorsPath() string {
	if c.Library.ColorsFile == "" || filepath.IsAbs(c.Library.ColorsFile) {
		return c.Library.ColorsFile
	}
	return filepath.Join(c.Library.Path, c.Library.ColorsFile)
}
