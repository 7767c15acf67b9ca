package dragmode

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/snaptile/internal/actionlog"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// cascadeStep offsets successive new windows so they do not stack exactly.
const cascadeStep = 24

// Controller turns pointer press/motion/release into layout mutations.
type Controller struct {
	mu      sync.Mutex
	engine  *tiling.Engine
	log     *actionlog.Logger
	windows []*Window // z-order, last is topmost
	focused tiling.OccupantID
	state   *State
	created int
	newID   func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger records every accepted mutation to l.
func WithLogger(l *actionlog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithIDFunc replaces the uuid generator, mainly for tests.
func WithIDFunc(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewController creates a controller driving engine.
func NewController(engine *tiling.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine: engine,
		state:  NewState(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the engine the controller mutates.
func (c *Controller) Engine() *tiling.Engine {
	return c.engine
}

// State returns a copy of the current drag state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state
}

// IsDragging reports whether a window is currently held.
func (c *Controller) IsDragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase == PhaseDragging
}

// NewWindow registers a floating window centred in the viewport and focuses it.
func (c *Controller) NewWindow(title string) *Window {
	c.mu.Lock()
	defer c.mu.Unlock()

	vp := c.engine.Viewport()
	w, h := vp.Width*2/5, vp.Height*2/5
	shift := (c.created % 5) * cascadeStep
	return c.addWindow(title, tiling.Rect{
		X:      vp.X + (vp.Width-w)/2 + shift,
		Y:      vp.Y + (vp.Height-h)/2 + shift,
		Width:  w,
		Height: h,
	})
}

// NewWindowAt registers a floating window at float and focuses it.
func (c *Controller) NewWindowAt(title string, float tiling.Rect) *Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addWindow(title, float)
}

func (c *Controller) addWindow(title string, float tiling.Rect) *Window {
	c.created++
	win := &Window{
		ID:    tiling.OccupantID(c.newID()),
		Title: title,
		Float: float,
	}
	if win.Title == "" {
		win.Title = fmt.Sprintf("window %d", c.created)
	}
	c.windows = append(c.windows, win)
	c.focused = win.ID

	c.log.Log(actionlog.ActionWindowNew, string(win.ID), map[string]any{"title": win.Title})
	return win
}

// Adopt registers a window for every occupant already snapped in the engine
// but unknown to the controller, for example after a scenario was replayed
// into it. Returns the number of windows added.
func (c *Controller) Adopt() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	bounds := c.engine.OccupantBounds()
	added := 0
	for _, id := range c.engine.Occupants() {
		if c.indexOf(id) >= 0 {
			continue
		}
		c.windows = append(c.windows, &Window{ID: id, Title: string(id), Float: bounds[id]})
		c.created++
		added++
	}
	if added > 0 && c.focused == "" {
		c.focused = c.windows[len(c.windows)-1].ID
	}
	return added
}

// Window returns the registered window with id, or nil.
func (c *Controller) Window(id tiling.OccupantID) *Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		w := *c.windows[i]
		return &w
	}
	return nil
}

// Press grabs the topmost window under pt. A snapped window is taken out of
// the tree and floats at its former bounds. Returns false if nothing was hit.
func (c *Controller) Press(pt tiling.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == PhaseDragging {
		return false
	}

	bounds := c.engine.OccupantBounds()
	for i := len(c.windows) - 1; i >= 0; i-- {
		win := c.windows[i]
		rect, snapped := bounds[win.ID]
		if !snapped {
			rect = win.Float
		}
		if !rect.Contains(pt) {
			continue
		}

		if snapped {
			c.engine.Remove(win.ID)
			win.Float = rect
			c.log.Log(actionlog.ActionRemove, string(win.ID), map[string]any{"reason": "drag"})
		}

		c.raise(i)
		c.focused = win.ID
		c.state.Phase = PhaseDragging
		c.state.Grabbed = win.ID
		c.state.Origin = rect
		c.state.Offset = tiling.Point{X: pt.X - rect.X, Y: pt.Y - rect.Y}
		c.state.Preview, c.state.HasPreview = c.engine.Preview(pt)
		return true
	}
	return false
}

// Motion moves the grabbed window with the pointer and refreshes the preview.
func (c *Controller) Motion(pt tiling.Point) (tiling.SnapPreview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseDragging {
		return tiling.SnapPreview{}, false
	}
	if i := c.indexOf(c.state.Grabbed); i >= 0 {
		win := c.windows[i]
		win.Float.X = pt.X - c.state.Offset.X
		win.Float.Y = pt.Y - c.state.Offset.Y
	}

	preview, ok := c.engine.Preview(pt)
	if ok != c.state.HasPreview || preview != c.state.Preview {
		details := map[string]any{"x": pt.X, "y": pt.Y}
		if ok {
			details["target"] = uint64(preview.Target)
			details["side"] = preview.Side
		}
		c.log.Log(actionlog.ActionPreview, string(c.state.Grabbed), details)
	}
	c.state.Preview, c.state.HasPreview = preview, ok
	return preview, ok
}

// Release drops the grabbed window at pt. With a preview the window is
// inserted into the tree; otherwise it stays floating where it was dropped.
func (c *Controller) Release(pt tiling.Point) (tiling.SnapPreview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseDragging {
		return tiling.SnapPreview{}, false
	}
	defer c.state.Reset()

	id := c.state.Grabbed
	if i := c.indexOf(id); i >= 0 {
		win := c.windows[i]
		win.Float.X = pt.X - c.state.Offset.X
		win.Float.Y = pt.Y - c.state.Offset.Y
	}

	preview, ok := c.engine.Drop(id, pt)
	if !ok {
		c.log.Log(actionlog.ActionMiss, string(id), map[string]any{"x": pt.X, "y": pt.Y})
		return tiling.SnapPreview{}, false
	}
	c.log.Log(actionlog.ActionDrop, string(id), map[string]any{
		"x":      pt.X,
		"y":      pt.Y,
		"target": uint64(preview.Target),
		"side":   preview.Side,
	})
	return preview, true
}

// Cancel abandons the drag. The window floats at the rect it had on press.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseDragging {
		return
	}
	if i := c.indexOf(c.state.Grabbed); i >= 0 {
		c.windows[i].Float = c.state.Origin
	}
	c.log.Log(actionlog.ActionCancel, string(c.state.Grabbed), nil)
	c.state.Reset()
}

// Close removes a window from the tree and the registry.
func (c *Controller) Close(id tiling.OccupantID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	if c.state.Grabbed == id {
		c.state.Reset()
	}
	c.engine.Remove(id)
	c.windows = append(c.windows[:i], c.windows[i+1:]...)
	if c.focused == id {
		c.focused = ""
		if n := len(c.windows); n > 0 {
			c.focused = c.windows[n-1].ID
		}
	}
	c.log.Log(actionlog.ActionWindowClose, string(id), nil)
	return true
}

// Resize updates the viewport the tree is laid out in.
func (c *Controller) Resize(viewport tiling.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine.Viewport() == viewport {
		return
	}
	c.engine.SetViewport(viewport)
	c.log.Log(actionlog.ActionResize, "", map[string]any{
		"x":      viewport.X,
		"y":      viewport.Y,
		"width":  viewport.Width,
		"height": viewport.Height,
	})
}

// Focused returns the focused window id, or "" if there are no windows.
func (c *Controller) Focused() tiling.OccupantID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// FocusNext raises the bottom-most window and focuses it.
func (c *Controller) FocusNext() tiling.OccupantID {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.windows) == 0 {
		return ""
	}
	c.raise(0)
	c.focused = c.windows[len(c.windows)-1].ID
	return c.focused
}

// Frames returns every window bottom to top with its current rect.
func (c *Controller) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	bounds := c.engine.OccupantBounds()
	frames := make([]Frame, 0, len(c.windows))
	for z, win := range c.windows {
		rect, snapped := bounds[win.ID]
		if !snapped {
			rect = win.Float
		}
		frames = append(frames, Frame{
			ID:      win.ID,
			Title:   win.Title,
			Rect:    rect,
			Snapped: snapped,
			Focused: win.ID == c.focused,
			Z:       z,
		})
	}
	return frames
}

func (c *Controller) indexOf(id tiling.OccupantID) int {
	for i, w := range c.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// raise moves windows[i] to the top of the z-order.
func (c *Controller) raise(i int) {
	win := c.windows[i]
	copy(c.windows[i:], c.windows[i+1:])
	c.windows[len(c.windows)-1] = win
}
