package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/dragmode"
)

// Options configures the desktop.
type Options struct {
	// ConfigPath is watched for changes and used by reload and save.
	ConfigPath string
	Config     *config.Config
	Controller *dragmode.Controller
}

// Run starts the desktop and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if opts.Controller == nil {
		return fmt.Errorf("tui: no controller")
	}

	m := newModel(opts.Config, opts.ConfigPath, opts.Controller)
	watcher, err := newConfigWatcher(opts.ConfigPath)
	if err != nil {
		// Hot reload is optional; r still reloads by hand.
		m.err = fmt.Errorf("config watch disabled: %w", err)
	} else {
		m.watcher = watcher
		defer watcher.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
