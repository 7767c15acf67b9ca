//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/1broseidon/snaptile/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Open connects to display ("" means $DISPLAY).
func Open(display string) (Backend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Displays returns all active displays sorted by id.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m, m))
	}
	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})
	return displays, nil
}

// ActiveDisplay returns the display under the pointer. Usable excludes panels.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	full := *active
	if monitors, err := conn.GetMonitors(); err == nil {
		for _, m := range monitors {
			if m.ID == active.ID {
				full = m
				break
			}
		}
	}
	return displayFromMonitor(full, *active), nil
}

// Pointer returns the current pointer state.
func (b *LinuxBackend) Pointer() (Pointer, error) {
	conn, err := b.connection()
	if err != nil {
		return Pointer{}, err
	}
	p, err := conn.QueryPointer()
	if err != nil {
		return Pointer{}, err
	}
	return Pointer{X: p.X, Y: p.Y, Pressed: p.Pressed}, nil
}

// XUtil exposes the xgbutil handle for global key grabs.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the root window key grabs attach to.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(full, usable x11.Monitor) Display {
	return Display{
		ID:   full.ID,
		Name: full.Name,
		Bounds: Rect{
			X:      full.X,
			Y:      full.Y,
			Width:  full.Width,
			Height: full.Height,
		},
		Usable: Rect{
			X:      usable.X,
			Y:      usable.Y,
			Width:  usable.Width,
			Height: usable.Height,
		},
	}
}
