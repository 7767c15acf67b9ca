// Package platform hides the window system behind a small polling interface.
package platform

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Pointer is the pointer position in screen coordinates and whether the
// primary button is held.
type Pointer struct {
	X       int
	Y       int
	Pressed bool
}

// Backend abstracts the window-system queries the pointer watcher needs.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	Pointer() (Pointer, error)
	Close()
}
