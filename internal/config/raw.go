package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawViewport struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawLoggingConfig struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawTUIConfig struct {
	CellWidth    *int    `yaml:"cell_width"`
	CellHeight   *int    `yaml:"cell_height"`
	ShowNodeIDs  *bool   `yaml:"show_node_ids"`
	PreviewColor *string `yaml:"preview_color"`
	BorderColor  *string `yaml:"border_color"`
	FocusColor   *string `yaml:"focus_color"`
}

type RawWatchConfig struct {
	PollIntervalMS *int    `yaml:"poll_interval_ms"`
	Display        *string `yaml:"display"`
	CancelHotkey   *string `yaml:"cancel_hotkey"`
}

type RawConfig struct {
	Include       IncludeList       `yaml:"include"`
	SnapThreshold *int              `yaml:"snap_threshold"`
	ScreenPadding *RawMargins       `yaml:"screen_padding"`
	Viewport      *RawViewport      `yaml:"viewport"`
	LogLevel      *string           `yaml:"log_level"`
	Logging       *RawLoggingConfig `yaml:"logging"`
	TUI           *RawTUIConfig     `yaml:"tui"`
	Watch         *RawWatchConfig   `yaml:"watch"`
}

// merge overlays o onto r; fields set in o win.
func (r RawConfig) merge(o RawConfig) RawConfig {
	out := r
	out.Include = nil

	if o.SnapThreshold != nil {
		out.SnapThreshold = o.SnapThreshold
	}
	if o.ScreenPadding != nil {
		out.ScreenPadding = mergeMargins(out.ScreenPadding, o.ScreenPadding)
	}
	if o.Viewport != nil {
		v := RawViewport{}
		if out.Viewport != nil {
			v = *out.Viewport
		}
		if o.Viewport.Width != nil {
			v.Width = o.Viewport.Width
		}
		if o.Viewport.Height != nil {
			v.Height = o.Viewport.Height
		}
		out.Viewport = &v
	}
	if o.LogLevel != nil {
		out.LogLevel = o.LogLevel
	}
	if o.Logging != nil {
		l := RawLoggingConfig{}
		if out.Logging != nil {
			l = *out.Logging
		}
		if o.Logging.Enabled != nil {
			l.Enabled = o.Logging.Enabled
		}
		if o.Logging.Level != nil {
			l.Level = o.Logging.Level
		}
		if o.Logging.File != nil {
			l.File = o.Logging.File
		}
		if o.Logging.MaxSizeMB != nil {
			l.MaxSizeMB = o.Logging.MaxSizeMB
		}
		if o.Logging.MaxFiles != nil {
			l.MaxFiles = o.Logging.MaxFiles
		}
		out.Logging = &l
	}
	if o.TUI != nil {
		t := RawTUIConfig{}
		if out.TUI != nil {
			t = *out.TUI
		}
		if o.TUI.CellWidth != nil {
			t.CellWidth = o.TUI.CellWidth
		}
		if o.TUI.CellHeight != nil {
			t.CellHeight = o.TUI.CellHeight
		}
		if o.TUI.ShowNodeIDs != nil {
			t.ShowNodeIDs = o.TUI.ShowNodeIDs
		}
		if o.TUI.PreviewColor != nil {
			t.PreviewColor = o.TUI.PreviewColor
		}
		if o.TUI.BorderColor != nil {
			t.BorderColor = o.TUI.BorderColor
		}
		if o.TUI.FocusColor != nil {
			t.FocusColor = o.TUI.FocusColor
		}
		out.TUI = &t
	}
	if o.Watch != nil {
		w := RawWatchConfig{}
		if out.Watch != nil {
			w = *out.Watch
		}
		if o.Watch.PollIntervalMS != nil {
			w.PollIntervalMS = o.Watch.PollIntervalMS
		}
		if o.Watch.Display != nil {
			w.Display = o.Watch.Display
		}
		if o.Watch.CancelHotkey != nil {
			w.CancelHotkey = o.Watch.CancelHotkey
		}
		out.Watch = &w
	}
	return out
}

func mergeMargins(base *RawMargins, o *RawMargins) *RawMargins {
	m := RawMargins{}
	if base != nil {
		m = *base
	}
	if o.Top != nil {
		m.Top = o.Top
	}
	if o.Bottom != nil {
		m.Bottom = o.Bottom
	}
	if o.Left != nil {
		m.Left = o.Left
	}
	if o.Right != nil {
		m.Right = o.Right
	}
	return &m
}
