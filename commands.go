package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/olivier-w/orbweaver/internal/blob"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/harmonics"
	"github.com/olivier-w/orbweaver/internal/render"
	"github.com/olivier-w/orbweaver/internal/trace"
)

func newSnapshotCmd(f *flags) *cobra.Command {
	var (
		frames int
		dt     float64
		color  bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print frames rendered at a fixed time step",
		Long: `Renders the scene offline and prints each frame to stdout. The first
frame is at time zero; each following frame advances by --dt seconds. The
output is the same on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("--frames must be at least 1, got %d", frames)
			}
			scene, err := loadScene(cmd, f)
			if err != nil {
				return err
			}
			opts, err := scene.EngineOptions()
			if err != nil {
				return err
			}
			profile := termenv.Ascii
			if color {
				profile = termenv.TrueColor
			}
			r, err := render.New(render.Mode(scene.Renderer),
				append(scene.RenderOptions(), render.WithProfile(profile))...)
			if err != nil {
				return err
			}
			opts.Renderer = r
			e := engine.New(opts)
			defer e.Close()

			out := cmd.OutOrStdout()
			for i := range frames {
				step := dt
				if i == 0 {
					step = 0
				}
				if err := e.Step(step); err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, r.View())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "number of frames")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/30, "seconds between frames")
	cmd.Flags().BoolVar(&color, "color", false, "emit 24-bit color sequences")
	return cmd
}

func newTraceCmd() *cobra.Command {
	var (
		force  float64
		dt     float64
		steps  int
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Plot the blob's response to a single push",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 2 || dt <= 0 {
				return fmt.Errorf("need --steps >= 2 and --dt > 0")
			}
			r := trace.ImpulseResponse(force, dt, steps)
			step, peak := r.Peak()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, r.Plot(width, height))
			fmt.Fprintf(out, "peak %.4f at %.3fs\n", peak, float64(step)*dt)
			return nil
		},
	}
	cmd.Flags().Float64Var(&force, "force", 1, "kick strength")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "integration step in seconds")
	cmd.Flags().IntVar(&steps, "steps", 180, "number of steps")
	cmd.Flags().IntVar(&width, "width", 60, "plot width")
	cmd.Flags().IntVar(&height, "height", 10, "plot height")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	var plot bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the harmonic presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "HARMONICS", "MIN RADIUS", "MAX RADIUS")
			for _, name := range harmonics.PresetNames() {
				hs, _ := harmonics.Preset(name)
				lo, hi := blob.New(blob.DefaultBaseRadius, blob.DefaultAmplitude, hs).Bounds()
				t.Row(name, fmt.Sprint(len(hs)), fmt.Sprintf("%.3f", lo), fmt.Sprintf("%.3f", hi))
			}
			fmt.Fprintln(out, t.Render())
			if !plot {
				return nil
			}
			for _, name := range harmonics.PresetNames() {
				hs, _ := harmonics.Preset(name)
				m := blob.New(blob.DefaultBaseRadius, blob.DefaultAmplitude, hs)
				fmt.Fprintf(out, "\n%s\n%s\n", name, trace.PlotProfile(m, 0, 60, 6))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", false, "plot each preset's outline")
	return cmd
}
