package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.SnapThreshold != 50 {
		t.Fatalf("expected snap_threshold 50, got %d", cfg.SnapThreshold)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
	if res.Config.Viewport.Width != DefaultViewportWidth {
		t.Fatalf("expected default viewport, got %+v", res.Config.Viewport)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.SnapThreshold != DefaultSnapThreshold {
		t.Fatalf("expected default threshold, got %d", res.Config.SnapThreshold)
	}
}

func TestLoadFromPath_PartialSectionsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path,
		"snap_threshold: 30",
		"screen_padding:",
		"  top: 24",
		"tui:",
		"  show_node_ids: true",
		"log_level: WARN",
	)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.SnapThreshold != 30 {
		t.Fatalf("snap_threshold = %d, want 30", cfg.SnapThreshold)
	}
	if cfg.ScreenPadding != (Margins{Top: 24}) {
		t.Fatalf("screen_padding = %+v", cfg.ScreenPadding)
	}
	if !cfg.TUI.ShowNodeIDs || cfg.TUI.CellWidth != 8 {
		t.Fatalf("tui = %+v", cfg.TUI)
	}
	if cfg.LogLevel != "warning" {
		t.Fatalf("log_level = %q, want warning", cfg.LogLevel)
	}

	val, src, err := Explain(res, "screen_padding.top")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 24 {
		t.Fatalf("expected 24, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 3 {
		t.Fatalf("expected file source at line 3, got %#v", src)
	}

	_, src, err = Explain(res, "screen_padding.left")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %#v", src)
	}
}

func TestLoadFromPath_WatchCancelHotkeyTrimmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path,
		"watch:",
		"  cancel_hotkey: \" Mod4-Escape \"",
	)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := res.Config.Watch.CancelHotkey; got != "Mod4-Escape" {
		t.Fatalf("cancel_hotkey = %q", got)
	}
	if res.Config.Watch.PollIntervalMS != DefaultPollIntervalMS {
		t.Fatalf("poll interval lost its default: %d", res.Config.Watch.PollIntervalMS)
	}
	if DefaultConfig().Watch.CancelHotkey != "" {
		t.Fatal("cancel hotkey must be off by default")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path,
		"viewport:",
		"  width: 800",
		"  height: 0",
	)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "viewport.height" {
		t.Fatalf("path = %q", verr.Path)
	}
	if verr.Source.Line != 3 {
		t.Fatalf("expected line 3, got %#v", verr.Source)
	}
	if !strings.Contains(err.Error(), "config.yaml:3:") {
		t.Fatalf("expected file:line in error, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.d", "10-base.yaml"), "snap_threshold: 10", "tui:", "  cell_width: 6")
	writeFile(t, filepath.Join(dir, "config.d", "20-override.yaml"), "snap_threshold: 20")
	writeFile(t, filepath.Join(dir, "config.d", "notes.txt"), "snap_threshold: 99")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path,
		"include:",
		"  - config.d",
		"snap_threshold: 40",
	)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.SnapThreshold != 40 {
		t.Fatalf("expected snap_threshold 40, got %d", res.Config.SnapThreshold)
	}
	if res.Config.TUI.CellWidth != 6 {
		t.Fatalf("expected cell_width 6 from include, got %d", res.Config.TUI.CellWidth)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files loaded, got %v", res.Files)
	}
	if filepath.Base(res.Files[0]) != "10-base.yaml" || filepath.Base(res.Files[2]) != "config.yaml" {
		t.Fatalf("unexpected load order %v", res.Files)
	}

	_, src, err := Explain(res, "tui.cell_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "10-base.yaml" {
		t.Fatalf("expected source 10-base.yaml, got %#v", src)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include: missing.yaml")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), ":1:") {
		t.Fatalf("expected include context, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml")
	writeFile(t, b, "include: a.yaml")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle detected") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero threshold", func(c *Config) { c.SnapThreshold = 0 }, "snap_threshold"},
		{"negative padding", func(c *Config) { c.ScreenPadding.Left = -1 }, "screen_padding"},
		{"zero viewport width", func(c *Config) { c.Viewport.Width = 0 }, "viewport.width"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad logging level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"zero max files", func(c *Config) { c.Logging.MaxFiles = 0 }, "logging.max_files"},
		{"zero cell height", func(c *Config) { c.TUI.CellHeight = 0 }, "tui.cell_height"},
		{"fast poll", func(c *Config) { c.Watch.PollIntervalMS = 1 }, "watch.poll_interval_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.SnapThreshold = 35
	cfg.Viewport = Viewport{Width: 1920, Height: 1080}
	cfg.Logging.File = "/tmp/snaptile.log"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *res.Config != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *res.Config, *cfg)
	}
}

func TestSaveTo_RefusesInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.SnapThreshold = -1
	if err := cfg.SaveTo(path); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file written, stat err = %v", err)
	}
}

func TestDefaultConfigPath_EnvOverrides(t *testing.T) {
	t.Setenv("SNAPTILE_CONFIG", "/etc/snaptile.yaml")
	if p, err := DefaultConfigPath(); err != nil || p != "/etc/snaptile.yaml" {
		t.Fatalf("got %q, %v", p, err)
	}

	t.Setenv("SNAPTILE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if p, err := DefaultConfigPath(); err != nil || p != filepath.Join("/xdg", "snaptile", "config.yaml") {
		t.Fatalf("got %q, %v", p, err)
	}
}

func TestExplain_UnknownPath(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig()}
	if _, _, err := Explain(res, "viewport.depth"); err == nil {
		t.Fatalf("expected error for unknown path")
	}
	if _, _, err := Explain(res, ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestPaths_CoversEveryLeaf(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig()}
	paths := Paths()
	for _, want := range []string{"snap_threshold", "logging.file", "watch.display", "tui.focus_color"} {
		found := false
		for _, p := range paths {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q in %v", want, paths)
		}
	}
	for _, p := range paths {
		if _, _, err := Explain(res, p); err != nil {
			t.Fatalf("explain %q: %v", p, err)
		}
	}
}
