package tiling

// Engine owns a layout tree together with the viewport it is laid out in.
// It is not safe for concurrent use; hosts call it from a single event loop.
type Engine struct {
	root      *Node
	ids       IDSource
	viewport  Rect
	threshold int
	snapped   map[OccupantID]bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithViewport sets the initial viewport.
func WithViewport(r Rect) Option {
	return func(e *Engine) {
		e.viewport = r
	}
}

// WithSnapThreshold overrides DefaultSnapThreshold. Values below 1 are ignored.
func WithSnapThreshold(px int) Option {
	return func(e *Engine) {
		if px >= 1 {
			e.threshold = px
		}
	}
}

// NewEngine creates an engine with an empty tree.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		threshold: DefaultSnapThreshold,
		snapped:   make(map[OccupantID]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the current tree root. The returned tree must not be modified.
func (e *Engine) Root() *Node {
	return e.root
}

// Viewport returns the outer rectangle the tree is laid out in.
func (e *Engine) Viewport() Rect {
	return e.viewport
}

// SetViewport updates the outer rectangle, e.g. after a resize.
func (e *Engine) SetViewport(r Rect) {
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	e.viewport = r
}

// Threshold returns the snap distance in pixels.
func (e *Engine) Threshold() int {
	return e.threshold
}

// SetSnapThreshold updates the snap distance. Values below 1 are ignored.
func (e *Engine) SetSnapThreshold(px int) {
	if px >= 1 {
		e.threshold = px
	}
}

// Bounds resolves the rectangle of every node for the current viewport.
func (e *Engine) Bounds() map[NodeID]Rect {
	return ResolveBounds(e.root, e.viewport)
}

// OccupantBounds maps each snapped occupant to the rectangle of its pane.
func (e *Engine) OccupantBounds() map[OccupantID]Rect {
	bounds := e.Bounds()
	out := make(map[OccupantID]Rect, len(e.snapped))
	Walk(e.root, func(n *Node, _ int) bool {
		if n.Occupied() {
			out[n.Occupant] = bounds[n.ID]
		}
		return true
	})
	return out
}

// Leaves returns every leaf with its rectangle, occupied or not.
func (e *Engine) Leaves() map[NodeID]Rect {
	bounds := e.Bounds()
	out := make(map[NodeID]Rect)
	Walk(e.root, func(n *Node, _ int) bool {
		if n.IsLeaf() {
			out[n.ID] = bounds[n.ID]
		}
		return true
	})
	return out
}

// LeafAt returns the leaf under pt, or nil.
func (e *Engine) LeafAt(pt Point) *Node {
	return DeepestNodeAt(e.root, e.viewport, pt)
}

// Preview computes the live snap preview for pt without changing anything.
func (e *Engine) Preview(pt Point) (SnapPreview, bool) {
	return ComputeSnapPreviewWithin(e.root, e.viewport, pt, e.threshold)
}

// Insert places occupant at target/side and marks it snapped. It returns
// false and leaves the tree untouched when occupant is empty, already snapped,
// or target does not name a leaf.
func (e *Engine) Insert(occupant OccupantID, target NodeID, side Side) bool {
	if occupant == "" || e.snapped[occupant] {
		return false
	}
	next := Insert(e.root, occupant, target, side, &e.ids)
	if next == e.root {
		return false
	}
	e.root = next
	e.snapped[occupant] = true
	return true
}

// Drop inserts occupant wherever the preview for pt points. It is the
// pointer-release counterpart of Preview. The preview is returned so the host
// can report where the window landed.
func (e *Engine) Drop(occupant OccupantID, pt Point) (SnapPreview, bool) {
	preview, ok := e.Preview(pt)
	if !ok {
		return SnapPreview{}, false
	}
	if !e.Insert(occupant, preview.Target, preview.Side) {
		return SnapPreview{}, false
	}
	return preview, true
}

// Remove deletes occupant from the tree. It returns false if occupant was
// not snapped.
func (e *Engine) Remove(occupant OccupantID) bool {
	if !e.snapped[occupant] {
		return false
	}
	e.root = Remove(e.root, occupant)
	delete(e.snapped, occupant)
	return true
}

// IsSnapped reports whether occupant currently lives in the tree.
func (e *Engine) IsSnapped(occupant OccupantID) bool {
	return e.snapped[occupant]
}

// Occupants lists snapped occupants in tree order.
func (e *Engine) Occupants() []OccupantID {
	return Occupants(e.root)
}
