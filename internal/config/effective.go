package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto DefaultConfig. Validation is left to the caller.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.SnapThreshold != nil {
		cfg.SnapThreshold = *raw.SnapThreshold
	}
	if raw.ScreenPadding != nil {
		cfg.ScreenPadding.Top = derefInt(raw.ScreenPadding.Top, cfg.ScreenPadding.Top)
		cfg.ScreenPadding.Bottom = derefInt(raw.ScreenPadding.Bottom, cfg.ScreenPadding.Bottom)
		cfg.ScreenPadding.Left = derefInt(raw.ScreenPadding.Left, cfg.ScreenPadding.Left)
		cfg.ScreenPadding.Right = derefInt(raw.ScreenPadding.Right, cfg.ScreenPadding.Right)
	}
	if raw.Viewport != nil {
		cfg.Viewport.Width = derefInt(raw.Viewport.Width, cfg.Viewport.Width)
		cfg.Viewport.Height = derefInt(raw.Viewport.Height, cfg.Viewport.Height)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = normalizeLevel(*raw.LogLevel)
	}
	if raw.Logging != nil {
		if raw.Logging.Enabled != nil {
			cfg.Logging.Enabled = *raw.Logging.Enabled
		}
		if raw.Logging.Level != nil {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*raw.Logging.Level))
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = strings.TrimSpace(*raw.Logging.File)
		}
		cfg.Logging.MaxSizeMB = derefInt(raw.Logging.MaxSizeMB, cfg.Logging.MaxSizeMB)
		cfg.Logging.MaxFiles = derefInt(raw.Logging.MaxFiles, cfg.Logging.MaxFiles)
	}
	if raw.TUI != nil {
		cfg.TUI.CellWidth = derefInt(raw.TUI.CellWidth, cfg.TUI.CellWidth)
		cfg.TUI.CellHeight = derefInt(raw.TUI.CellHeight, cfg.TUI.CellHeight)
		if raw.TUI.ShowNodeIDs != nil {
			cfg.TUI.ShowNodeIDs = *raw.TUI.ShowNodeIDs
		}
		if raw.TUI.PreviewColor != nil {
			cfg.TUI.PreviewColor = *raw.TUI.PreviewColor
		}
		if raw.TUI.BorderColor != nil {
			cfg.TUI.BorderColor = *raw.TUI.BorderColor
		}
		if raw.TUI.FocusColor != nil {
			cfg.TUI.FocusColor = *raw.TUI.FocusColor
		}
	}
	if raw.Watch != nil {
		cfg.Watch.PollIntervalMS = derefInt(raw.Watch.PollIntervalMS, cfg.Watch.PollIntervalMS)
		if raw.Watch.Display != nil {
			cfg.Watch.Display = strings.TrimSpace(*raw.Watch.Display)
		}
		if raw.Watch.CancelHotkey != nil {
			cfg.Watch.CancelHotkey = strings.TrimSpace(*raw.Watch.CancelHotkey)
		}
	}

	return cfg, nil
}

// normalizeLevel accepts "warn" as an alias of "warning".
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warn" {
		return "warning"
	}
	return level
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
