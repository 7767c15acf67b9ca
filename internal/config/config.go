package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Margins represents padding around the usable screen area.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Viewport is the layout area used when no display is attached (replay).
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig configures the layout action log.
type LoggingConfig struct {
	// Enabled turns action logging on/off
	Enabled bool `yaml:"enabled"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/snaptile/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// TUIConfig controls the terminal desktop.
type TUIConfig struct {
	// CellWidth and CellHeight map one terminal cell to pixels so the
	// pixel-based snap threshold behaves the same as on a real screen.
	CellWidth    int    `yaml:"cell_width"`
	CellHeight   int    `yaml:"cell_height"`
	ShowNodeIDs  bool   `yaml:"show_node_ids"`
	PreviewColor string `yaml:"preview_color"`
	BorderColor  string `yaml:"border_color"`
	FocusColor   string `yaml:"focus_color"`
}

// WatchConfig controls the X11 pointer watcher.
type WatchConfig struct {
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	Display        string `yaml:"display,omitempty"`
	// CancelHotkey is a global key sequence such as "Mod4-Escape" that
	// abandons the drag in progress. Empty disables the grab.
	CancelHotkey string `yaml:"cancel_hotkey,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	SnapThreshold int           `yaml:"snap_threshold"`
	ScreenPadding Margins       `yaml:"screen_padding"`
	Viewport      Viewport      `yaml:"viewport"`
	LogLevel      string        `yaml:"log_level"`
	Logging       LoggingConfig `yaml:"logging"`
	TUI           TUIConfig     `yaml:"tui"`
	Watch         WatchConfig   `yaml:"watch"`
}

const (
	DefaultSnapThreshold  = 50
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultPollIntervalMS = 50
	MinPollIntervalMS     = 5
)

func DefaultConfig() *Config {
	return &Config{
		SnapThreshold: DefaultSnapThreshold,
		ScreenPadding: Margins{
			Top:    0,
			Bottom: 0,
			Left:   0,
			Right:  0,
		},
		Viewport: Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
		LogLevel: "info",
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		TUI: TUIConfig{
			CellWidth:    8,
			CellHeight:   16,
			ShowNodeIDs:  false,
			PreviewColor: "62",
			BorderColor:  "240",
			FocusColor:   "212",
		},
		Watch: WatchConfig{
			PollIntervalMS: DefaultPollIntervalMS,
		},
	}
}

// DefaultActionLogPath returns where the action log goes when logging.file is unset.
func DefaultActionLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "snaptile", "actions.log"), nil
}

// Save validates c and writes it to the default config path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates c and writes it to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.SnapThreshold < 1 {
		return &ValidationError{Path: "snap_threshold", Err: fmt.Errorf("snap_threshold must be >= 1")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if c.Viewport.Width < 1 {
		return &ValidationError{Path: "viewport.width", Err: fmt.Errorf("viewport width must be >= 1")}
	}
	if c.Viewport.Height < 1 {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("viewport height must be >= 1")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 1 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 1")}
	}
	if c.Logging.MaxFiles < 1 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 1")}
	}
	if c.TUI.CellWidth < 1 {
		return &ValidationError{Path: "tui.cell_width", Err: fmt.Errorf("cell_width must be >= 1")}
	}
	if c.TUI.CellHeight < 1 {
		return &ValidationError{Path: "tui.cell_height", Err: fmt.Errorf("cell_height must be >= 1")}
	}
	if c.Watch.PollIntervalMS < MinPollIntervalMS {
		return &ValidationError{Path: "watch.poll_interval_ms", Err: fmt.Errorf("poll_interval_ms must be >= %d", MinPollIntervalMS)}
	}
	return nil
}
