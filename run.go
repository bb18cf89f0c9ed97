package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/olivier-w/orbweaver/internal/config"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/render"
	"github.com/olivier-w/orbweaver/internal/screen"
	"github.com/olivier-w/orbweaver/internal/ui"
)

func runAnimation(cmd *cobra.Command, f *flags) error {
	if f.backend != backendTea && f.backend != backendTcell {
		return fmt.Errorf("unknown backend %q (want %s or %s)", f.backend, backendTea, backendTcell)
	}
	if f.watch && f.scene == "" {
		return errors.New("--watch needs --scene")
	}

	logger, err := newLogger(f.logFile, f.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scene, err := loadScene(cmd, f)
	if err != nil {
		return err
	}
	opts, err := scene.EngineOptions()
	if err != nil {
		return err
	}
	e := engine.New(opts)
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Hosts relabel their preset from here after each reload.
	presets := make(chan string, 1)
	g, ctx := errgroup.WithContext(ctx)
	if f.watch {
		w, err := config.NewWatcher(f.scene, func(s *config.Scene) {
			applyFlags(cmd, f, s)
			if err := s.Apply(e); err != nil {
				logger.Warn("applying reloaded scene", zap.Error(err))
				return
			}
			publish(presets, s.PresetLabel())
		}, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		// The watcher runs until the animation ends.
		defer cancel()
		if f.backend == backendTcell {
			return runTcell(ctx, e, scene, presets, logger)
		}
		return runTea(ctx, cmd, e, scene, presets, logger)
	})
	return g.Wait()
}

// publish replaces any label the host has not read yet.
func publish(ch chan string, label string) {
	for {
		select {
		case ch <- label:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func runTea(ctx context.Context, cmd *cobra.Command, e *engine.Engine, scene *config.Scene, presets <-chan string, logger *zap.Logger) error {
	changed := cmd.Flags().Changed
	m, err := ui.New(e, ui.Options{
		Mode:          render.Mode(scene.Renderer),
		RenderOptions: scene.RenderOptions(),
		Preset:        scene.PresetLabel(),
		FixedGrid:     changed("cols") || changed("rows"),
		Presets:       presets,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runTcell(ctx context.Context, e *engine.Engine, scene *config.Scene, presets <-chan string, logger *zap.Logger) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer s.Fini()

	h, err := screen.NewHost(s, e, screen.Options{
		Mode:       render.Mode(scene.Renderer),
		Glyphs:     scene.Glyphs,
		Ramp:       scene.Colors,
		CellAspect: scene.CellAspect,
	}, scene.PresetLabel(), logger)
	if err != nil {
		return err
	}
	h.WatchPresets(presets)
	return h.Run(ctx)
}
