package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olivier-w/orbweaver/internal/config"
	"github.com/olivier-w/orbweaver/internal/harmonics"
)

const (
	backendTea   = "tea"
	backendTcell = "tcell"
)

type flags struct {
	scene    string
	fps      float64
	preset   string
	renderer string
	backend  string
	glyphs   string
	colors   []string
	cols     int
	rows     int
	watch    bool
	logFile  string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "orbweaver",
		Short: "An animated blob in your terminal",
		Long: `orbweaver draws a breathing, wobbling blob on a character grid.

Run without a subcommand to start the interactive animation. Move the mouse
over the blob to dent it, click or use the arrow keys to push it around.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimation(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.scene, "scene", "", "scene file (YAML)")
	pf.Float64Var(&f.fps, "fps", 0, "frame cap, 0 follows the display")
	pf.StringVar(&f.preset, "preset", "", "harmonic preset ("+strings.Join(harmonics.PresetNames(), ", ")+")")
	pf.StringVar(&f.renderer, "renderer", "", "renderer: ascii, gradient or braille")
	pf.StringVar(&f.glyphs, "glyphs", "", "glyph ramp, background first")
	pf.StringSliceVar(&f.colors, "colors", nil, "color ramp as hex values, background first")
	pf.IntVar(&f.cols, "cols", 0, "grid columns")
	pf.IntVar(&f.rows, "rows", 0, "grid rows")
	pf.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")

	root.Flags().StringVar(&f.backend, "backend", backendTea, "terminal backend: tea or tcell")
	root.Flags().BoolVarP(&f.watch, "watch", "w", false, "reload the scene file when it changes")

	root.AddCommand(newSnapshotCmd(f), newTraceCmd(), newPresetsCmd())
	return root
}

// newLogger logs to path, or nowhere when path is empty: the terminal
// belongs to the animation.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// loadScene reads the scene file, or the defaults without one, and layers
// the flags the user set on top.
func loadScene(cmd *cobra.Command, f *flags) (*config.Scene, error) {
	scene := config.Default()
	if f.scene != "" {
		s, err := config.Load(f.scene)
		if err != nil {
			return nil, err
		}
		scene = s
	}
	applyFlags(cmd, f, scene)
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func applyFlags(cmd *cobra.Command, f *flags, s *config.Scene) {
	changed := cmd.Flags().Changed
	if changed("fps") {
		s.FPS = f.fps
	}
	if changed("preset") {
		s.Blob.Preset = f.preset
		s.Blob.Harmonics = nil
		s.Blob.Params = nil
	}
	if changed("renderer") {
		s.Renderer = f.renderer
	}
	if changed("glyphs") {
		s.Glyphs = f.glyphs
	}
	if changed("colors") {
		s.Colors = f.colors
	}
	if changed("cols") {
		s.Grid.Cols = f.cols
	}
	if changed("rows") {
		s.Grid.Rows = f.rows
	}
}
