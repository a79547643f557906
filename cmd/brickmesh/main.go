// brickmesh imports LDraw-style brick models into flattened mesh
// scenes, exports them to Wavefront OBJ, and previews them in an
// OpenGL viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/internal/config"
	"github.com/Faultbox/brickmesh/internal/importer"
	"github.com/Faultbox/brickmesh/internal/logger"
	"github.com/Faultbox/brickmesh/internal/scene"
	"github.com/Faultbox/brickmesh/internal/viewer"
	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	// Config flags come after the command so they apply to every
	// subcommand uniformly.
	flag.CommandLine.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "info":
		cmdInfo(cfg, flag.Args())
	case "import":
		cmdImport(cfg, flag.Args())
	case "view":
		cmdView(cfg, flag.Args())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`brickmesh - brick model importer

Usage:
  brickmesh <command> [options] <model>

Commands:
  info <model>            Show model statistics after import
  import <model> [out]    Import and export to Wavefront OBJ
  view <model>            Import and open in an interactive viewer

Options:
  -library <dir>          Part library root (default "parts")
  -tolerance <deg>        Weld angle tolerance in degrees
  -no-weld                Disable mesh welding
  -config <file>          Explicit config file
  -debug                  Enable debug logging

Examples:
  brickmesh info -library ~/ldraw car.ldr
  brickmesh import -library ~/ldraw spaceship.mpd out/spaceship.obj
  brickmesh view -library ~/ldraw -width 1920 -height 1080 castle.ldr`)
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: brickmesh info <model>")
		os.Exit(1)
	}

	scn := buildScene(cfg, args[0])

	min, max := scn.Bounds()
	fmt.Printf("Model:       %s\n", args[0])
	fmt.Printf("Definitions: %d\n", len(scn.Definitions()))
	fmt.Printf("Instances:   %d\n", len(scn.Instances))
	fmt.Printf("Materials:   %d\n", len(scn.Materials()))
	fmt.Printf("Vertices:    %d\n", scn.VertexCount())
	fmt.Printf("Faces:       %d\n", scn.FaceCount())
	fmt.Printf("Bounds:      (%.1f, %.1f, %.1f) .. (%.1f, %.1f, %.1f)\n",
		min.X, min.Y, min.Z, max.X, max.Y, max.Z)
}

func cmdImport(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: brickmesh import <model> [output.obj]")
		os.Exit(1)
	}

	scn := buildScene(cfg, args[0])

	outPath := objPath(args)
	if err := scn.Export(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d instances to %s\n", len(scn.Instances), outPath)
}

func cmdView(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: brickmesh view <model>")
		os.Exit(1)
	}

	scn := buildScene(cfg, args[0])

	title := "brickmesh - " + filepath.Base(args[0])
	if err := viewer.Run(scn, title, cfg.Viewer); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func objPath(args []string) string {
	if len(args) >= 2 {
		return args[1]
	}
	base := filepath.Base(args[0])
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".obj"
}

// buildScene scans the part library, imports the model and returns
// the populated scene. Errors here are unrecoverable and exit.
func buildScene(cfg *config.Config, modelPath string) *scene.Scene {
	store := ldraw.NewStore(ldraw.DiskProvider{})

	if cfg.Library.Path != "" {
		n, err := store.ScanLibrary(cfg.Library.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: scanning library %s: %v\n", cfg.Library.Path, err)
			os.Exit(1)
		}
		logger.Log.Info("library scanned",
			zap.String("path", cfg.Library.Path),
			zap.Int("documents", n),
		)
	}

	store.RegisterPhysical(modelPath)

	scn := scene.New(loadColors(cfg, store))

	opts := []importer.Option{
		importer.WithLogger(logger.Log),
		importer.WithWeldTolerance(math.DegToRad(cfg.Import.WeldToleranceDeg)),
	}
	if !cfg.Import.Weld {
		opts = append(opts, importer.WithWelder(func(m *mesh.Mesh, tol float32) *mesh.Mesh {
			return m
		}))
	}

	imp := importer.New(store, scn, opts...)
	if err := imp.ImportModel(filepath.Base(modelPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return scn
}

// loadColors parses the configured color definitions file. A missing
// or unreadable file logs a warning and yields an empty table.
func loadColors(cfg *config.Config, store *ldraw.Store) ldraw.ColorTable {
	path := cfg.ColorsPath()
	if path == "" {
		return nil
	}

	store.RegisterPhysical(path)
	doc, err := store.Resolve(filepath.Base(path))
	if err != nil {
		logger.Log.Warn("color definitions unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}

	colors, err := ldraw.ParseColorTable(doc)
	if err != nil {
		logger.Log.Warn("color definitions unreadable", zap.String("path", path), zap.Error(err))
		return nil
	}

	logger.Log.Info("color table loaded",
		zap.String("path", path),
		zap.Int("colors", len(colors)),
	)
	return colors
}
