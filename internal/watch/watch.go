// Package watch drives a drag controller from a polled system pointer.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/dragmode"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// ghostSize is the float rect given to a drag that starts on empty screen.
const (
	ghostWidth  = 320
	ghostHeight = 200
)

// Options configures a Watcher.
type Options struct {
	Interval time.Duration
	Padding  config.Margins
	Logger   *slog.Logger
}

// Watcher turns button transitions into Press/Motion/Release calls.
type Watcher struct {
	backend   platform.Backend
	ctrl      *dragmode.Controller
	opts      Options
	log       *slog.Logger
	started   time.Time
	cancelReq atomic.Bool // set from other goroutines by Cancel

	mu        sync.Mutex // guards the controller and the fields below
	pressed   bool
	cancelled bool // the held drag was cancelled; ignore until release
	last      tiling.Point
	preview   tiling.SnapPreview
	previewd  bool
	drags     int
}

// New creates a watcher. A zero Interval uses the config default.
func New(backend platform.Backend, ctrl *dragmode.Controller, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultPollIntervalMS * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		backend: backend,
		ctrl:    ctrl,
		opts:    opts,
		log:     logger.With("component", "watch"),
		started: time.Now(),
	}
}

// Run polls until ctx is cancelled. It returns ctx.Err() on cancellation or
// the first backend error.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	err := w.refreshViewport()
	viewport := w.ctrl.Engine().Viewport()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	w.log.Info("watching pointer", "interval", w.opts.Interval, "viewport", formatRect(viewport))

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.pressed {
				w.ctrl.Cancel()
			}
			w.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			if err := w.Tick(); err != nil {
				return err
			}
		}
	}
}

// Cancel abandons the drag in progress on the next tick. It is safe to call
// from any goroutine, e.g. a hotkey callback.
func (w *Watcher) Cancel() {
	w.cancelReq.Store(true)
}

// Tick samples the pointer once and feeds the controller.
func (w *Watcher) Tick() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancelReq.Swap(false) && w.pressed && !w.cancelled {
		w.cancelled = true
		w.previewd = false
		w.log.Info("drag cancelled", "occupant", w.ctrl.State().Grabbed)
		w.ctrl.Cancel()
	}

	p, err := w.backend.Pointer()
	if err != nil {
		return fmt.Errorf("read pointer: %w", err)
	}
	pt := tiling.Point{X: p.X, Y: p.Y}

	switch {
	case w.cancelled:
		if !p.Pressed {
			w.pressed = false
			w.cancelled = false
		}
	case p.Pressed && !w.pressed:
		w.pressed = true
		if err := w.refreshViewport(); err != nil {
			w.log.Warn("display query failed, keeping viewport", "err", err)
		}
		w.begin(pt)
	case p.Pressed && w.pressed:
		if pt != w.last {
			preview, ok := w.ctrl.Motion(pt)
			w.notePreview(preview, ok)
		}
	case !p.Pressed && w.pressed:
		w.pressed = false
		w.finish(pt)
	}
	w.last = pt
	return nil
}

func (w *Watcher) begin(pt tiling.Point) {
	if !w.ctrl.Press(pt) {
		w.drags++
		w.ctrl.NewWindowAt(fmt.Sprintf("drag %d", w.drags), tiling.Rect{
			X:      pt.X - ghostWidth/2,
			Y:      pt.Y - ghostHeight/2,
			Width:  ghostWidth,
			Height: ghostHeight,
		})
		w.ctrl.Press(pt)
	}
	st := w.ctrl.State()
	w.log.Debug("drag started", "occupant", st.Grabbed, "x", pt.X, "y", pt.Y)
	w.notePreview(st.Preview, st.HasPreview)
}

func (w *Watcher) finish(pt tiling.Point) {
	grabbed := w.ctrl.State().Grabbed
	preview, ok := w.ctrl.Release(pt)
	w.previewd = false
	if !ok {
		w.log.Info("dropped without snapping", "occupant", grabbed, "x", pt.X, "y", pt.Y)
		return
	}
	w.log.Info("snapped",
		"occupant", grabbed,
		"target", uint64(preview.Target),
		"side", preview.Side.String(),
		"rect", formatRect(preview.Rect),
		"panes", len(w.ctrl.Engine().Leaves()),
	)
}

// notePreview logs preview transitions only.
func (w *Watcher) notePreview(preview tiling.SnapPreview, ok bool) {
	if ok == w.previewd && preview == w.preview {
		return
	}
	w.preview, w.previewd = preview, ok
	if !ok {
		w.log.Debug("preview cleared")
		return
	}
	w.log.Debug("preview",
		"target", uint64(preview.Target),
		"side", preview.Side.String(),
		"rect", formatRect(preview.Rect),
	)
}

func (w *Watcher) refreshViewport() error {
	d, err := w.backend.ActiveDisplay()
	if err != nil {
		return fmt.Errorf("active display: %w", err)
	}
	u := d.Usable
	w.ctrl.Resize(tiling.ApplyPadding(tiling.Rect{X: u.X, Y: u.Y, Width: u.Width, Height: u.Height}, w.opts.Padding))
	return nil
}

func formatRect(r tiling.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Snapshot describes the watcher and its layout at one instant.
type Snapshot struct {
	Phase     dragmode.Phase
	Grabbed   tiling.OccupantID
	Windows   int
	Snapped   int
	Threshold int
	Ghosts    int
	Uptime    time.Duration
	Viewport  tiling.Rect
	Tree      string
	Occupants map[tiling.OccupantID]tiling.Rect
}

// Snapshot reads the current state. Safe to call while Run is polling.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	eng := w.ctrl.Engine()
	st := w.ctrl.State()
	return Snapshot{
		Phase:     st.Phase,
		Grabbed:   st.Grabbed,
		Windows:   len(w.ctrl.Frames()),
		Snapped:   len(eng.Occupants()),
		Threshold: eng.Threshold(),
		Ghosts:    w.drags,
		Uptime:    time.Since(w.started),
		Viewport:  eng.Viewport(),
		Tree:      tiling.Dump(eng.Root()),
		Occupants: eng.OccupantBounds(),
	}
}

// SetThreshold changes the snap threshold between ticks.
func (w *Watcher) SetThreshold(px int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctrl.Engine().SetSnapThreshold(px)
	w.log.Info("snap threshold changed", "threshold", px)
}
