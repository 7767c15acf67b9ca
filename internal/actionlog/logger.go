package actionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/snaptile/internal/config"
)

// Level defines the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Action names one layout mutation or drag event.
type Action string

const (
	ActionPreview     Action = "PREVIEW"
	ActionInsert      Action = "INSERT"
	ActionDrop        Action = "DROP"
	ActionMiss        Action = "DROP-MISS"
	ActionRemove      Action = "REMOVE"
	ActionResize      Action = "RESIZE"
	ActionWindowNew   Action = "WINDOW-NEW"
	ActionWindowClose Action = "WINDOW-CLOSE"
	ActionCancel      Action = "CANCEL"
)

func actionLevel(action Action) Level {
	switch action {
	case ActionPreview:
		return LevelDebug
	case ActionMiss:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Options holds configuration for the action logger.
type Options struct {
	Enabled   bool
	Level     Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// OptionsFromConfig maps the logging section of the config file.
func OptionsFromConfig(cfg config.LoggingConfig) (Options, error) {
	opts := Options{
		Enabled:   cfg.Enabled,
		Level:     ParseLevel(cfg.Level),
		FilePath:  cfg.File,
		MaxSizeMB: cfg.MaxSizeMB,
		MaxFiles:  cfg.MaxFiles,
	}
	if opts.Enabled && opts.FilePath == "" {
		path, err := config.DefaultActionLogPath()
		if err != nil {
			return Options{}, err
		}
		opts.FilePath = path
	}
	return opts, nil
}

// Logger appends one line per action to a size-rotated file.
// A nil or disabled Logger discards everything.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	opts        Options
	currentSize int64
	now         func() time.Time
}

// New opens (or creates) the log file when opts.Enabled is set.
func New(opts Options) (*Logger, error) {
	if opts.MaxSizeMB < 1 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxFiles < 1 {
		opts.MaxFiles = 3
	}
	l := &Logger{opts: opts, now: time.Now}
	if !opts.Enabled {
		return l, nil
	}

	dir := filepath.Dir(opts.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	l.file = f
	l.currentSize = stat.Size()
	return l, nil
}

// Log records an action for occupant with optional sorted key=value details.
func (l *Logger) Log(action Action, occupant string, details map[string]any) {
	if l == nil || !l.opts.Enabled {
		return
	}
	if actionLevel(action) < l.opts.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	maxBytes := int64(l.opts.MaxSizeMB) * 1024 * 1024
	if l.currentSize >= maxBytes {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "action log rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	n, err := l.file.WriteString(formatEntry(l.now(), action, occupant, details))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write action log entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

func formatEntry(ts time.Time, action Action, occupant string, details map[string]any) string {
	var sb strings.Builder
	sb.WriteString(ts.Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")
	if occupant != "" {
		fmt.Fprintf(&sb, " occupant=%q", occupant)
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch val := details[k].(type) {
		case string:
			fmt.Fprintf(&sb, " %s=%q", k, val)
		case fmt.Stringer:
			fmt.Fprintf(&sb, " %s=%s", k, val.String())
		default:
			fmt.Fprintf(&sb, " %s=%v", k, val)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// rotate shifts actions.log -> actions.log.1 -> ... keeping MaxFiles rotated copies.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	base := l.opts.FilePath
	os.Remove(fmt.Sprintf("%s.%d", base, l.opts.MaxFiles))
	for i := l.opts.MaxFiles - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", base, i), fmt.Sprintf("%s.%d", base, i+1))
	}
	if err := os.Rename(base, base+".1"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	f, err := os.OpenFile(base, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}
	l.file = f
	l.currentSize = 0
	return nil
}

// ParseLevel converts a string to Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
