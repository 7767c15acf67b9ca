package dragmode

import "github.com/1broseidon/snaptile/internal/tiling"

// Phase represents the current phase of a drag
type Phase int

const (
	// PhaseInactive means no window is held
	PhaseInactive Phase = iota
	// PhaseDragging means a window is grabbed and follows the pointer
	PhaseDragging
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Window is a draggable occupant. Float is only meaningful while the window
// is not snapped into the layout tree.
type Window struct {
	ID    tiling.OccupantID
	Title string
	Float tiling.Rect
}

// State holds the current drag state
type State struct {
	Phase      Phase
	Grabbed    tiling.OccupantID // empty if none
	Origin     tiling.Rect       // rect of the grabbed window at press time
	Offset     tiling.Point      // pointer position relative to the grabbed rect
	Preview    tiling.SnapPreview
	HasPreview bool
}

// NewState creates a new inactive state
func NewState() *State {
	return &State{Phase: PhaseInactive}
}

// Reset resets the state to inactive
func (s *State) Reset() {
	*s = State{Phase: PhaseInactive}
}

// Frame is one window as the host should draw it.
type Frame struct {
	ID      tiling.OccupantID
	Title   string
	Rect    tiling.Rect
	Snapped bool
	Focused bool
	Z       int // 0 is bottom-most
}
