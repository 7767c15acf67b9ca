package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// configChangedMsg is sent once a burst of writes to the config file settles.
type configChangedMsg struct{}

// watchErrMsg reports a watcher failure; watching continues.
type watchErrMsg struct{ err error }

// configWatcher follows one config file. The parent directory is watched so
// that editors replacing the file by rename are still seen.
type configWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func newConfigWatcher(path string) (*configWatcher, error) {
	if path == "" {
		return nil, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &configWatcher{w: w, path: abs}, nil
}

func (c *configWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != c.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// wait returns a command that blocks until the config file changes.
func (c *configWatcher) wait() tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-c.w.Events:
				if !ok {
					return nil
				}
				if !c.relevant(ev) {
					continue
				}
				time.Sleep(reloadDebounce)
				for {
					select {
					case <-c.w.Events:
					default:
						return configChangedMsg{}
					}
				}
			case err, ok := <-c.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (c *configWatcher) Close() error {
	if c == nil {
		return nil
	}
	return c.w.Close()
}
