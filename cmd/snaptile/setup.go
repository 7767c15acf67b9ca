package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/snaptile/internal/actionlog"
	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/dragmode"
	"github.com/1broseidon/snaptile/internal/scenario"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

// newSlogger builds the diagnostic logger from log_level.
func newSlogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// newActionLogger opens the action log described by cfg. A disabled log
// yields a logger whose Log calls are no-ops.
func newActionLogger(cfg *config.Config) (*actionlog.Logger, error) {
	opts, err := actionlog.OptionsFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}
	return actionlog.New(opts)
}

// newController builds an engine from cfg, optionally replays seed into it,
// and wraps it in a controller that owns the seeded occupants.
func newController(cfg *config.Config, seedPath string, log *actionlog.Logger) (*dragmode.Controller, error) {
	viewport := tiling.Rect{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	eng := tiling.NewEngine(
		tiling.WithViewport(viewport),
		tiling.WithSnapThreshold(cfg.SnapThreshold),
	)

	if seedPath != "" {
		doc, err := scenario.Load(seedPath)
		if err != nil {
			return nil, err
		}
		eng = doc.NewEngine(viewport, cfg.SnapThreshold)
		report, err := scenario.Run(context.Background(), doc, eng)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", seedPath, err)
		}
		if !report.Passed() {
			return nil, fmt.Errorf("seed %s: %d expectation(s) failed", seedPath, len(report.Failures))
		}
	}

	ctrl := dragmode.NewController(eng, dragmode.WithLogger(log))
	ctrl.Adopt()
	return ctrl, nil
}
