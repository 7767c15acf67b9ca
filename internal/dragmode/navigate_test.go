package dragmode

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// 2x2 grid of 100px cells.
var gridRects = []tiling.Rect{
	{X: 0, Y: 0, Width: 100, Height: 100},
	{X: 100, Y: 0, Width: 100, Height: 100},
	{X: 0, Y: 100, Width: 100, Height: 100},
	{X: 100, Y: 100, Width: 100, Height: 100},
}

func TestNeighborIndex(t *testing.T) {
	tests := []struct {
		name    string
		current int
		dir     Direction
		want    int
	}{
		{"right of top-left", 0, DirRight, 1},
		{"below top-left", 0, DirDown, 2},
		{"left of bottom-right", 3, DirLeft, 2},
		{"above bottom-right", 3, DirUp, 1},
		{"wrap right from top-right", 1, DirRight, 0},
		{"wrap up from top-left", 0, DirUp, 2},
		{"wrap left from bottom-left", 2, DirLeft, 3},
		{"wrap down from bottom-right", 3, DirDown, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := neighborIndex(tt.current, tt.dir, gridRects); got != tt.want {
				t.Fatalf("neighborIndex(%d, %s) = %d, want %d", tt.current, tt.dir, got, tt.want)
			}
		})
	}
}

func TestNeighborIndex_PrefersNearest(t *testing.T) {
	rects := []tiling.Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 500, Y: 0, Width: 100, Height: 100},
		{X: 150, Y: 20, Width: 100, Height: 100},
	}
	if got := neighborIndex(0, DirRight, rects); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestNeighborIndex_SingleOrInvalid(t *testing.T) {
	one := gridRects[:1]
	if got := neighborIndex(0, DirRight, one); got != 0 {
		t.Fatalf("single rect: got %d, want 0", got)
	}
	if got := neighborIndex(7, DirRight, gridRects); got != 7 {
		t.Fatalf("out of range: got %d, want 7", got)
	}
}

func TestDirectionSide(t *testing.T) {
	tests := []struct {
		dir  Direction
		want tiling.Side
	}{
		{DirUp, tiling.SideTop},
		{DirDown, tiling.SideBottom},
		{DirLeft, tiling.SideLeft},
		{DirRight, tiling.SideRight},
	}
	for _, tt := range tests {
		if got := tt.dir.Side(); got != tt.want {
			t.Fatalf("%s.Side() = %s, want %s", tt.dir, got, tt.want)
		}
	}
}

func TestController_FocusDirection(t *testing.T) {
	c := newTestController(t)
	left := c.NewWindowAt("left", tiling.Rect{X: 0, Y: 0, Width: 200, Height: 200})
	right := c.NewWindowAt("right", tiling.Rect{X: 600, Y: 0, Width: 200, Height: 200})

	if got := c.FocusDirection(DirLeft); got != left.ID {
		t.Fatalf("focus left = %q, want %q", got, left.ID)
	}
	frames := c.Frames()
	if frames[len(frames)-1].ID != left.ID {
		t.Fatalf("expected %q raised to the top", left.ID)
	}
	if got := c.FocusDirection(DirRight); got != right.ID {
		t.Fatalf("focus right = %q, want %q", got, right.ID)
	}
}

func TestController_SnapFocused(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")

	if !c.SnapFocused(DirLeft) {
		t.Fatalf("expected snap")
	}
	if got := c.Engine().OccupantBounds()[a.ID]; got != (tiling.Rect{Width: 500, Height: 600}) {
		t.Fatalf("a = %+v", got)
	}

	b := c.NewWindow("b")
	if !c.SnapFocused(DirDown) {
		t.Fatalf("expected snap of b")
	}
	bounds := c.Engine().OccupantBounds()
	if bounds[b.ID] != (tiling.Rect{Y: 300, Width: 1000, Height: 300}) {
		t.Fatalf("b = %+v", bounds[b.ID])
	}

	// Re-snapping a snapped window moves it.
	if !c.SnapFocused(DirUp) {
		t.Fatalf("expected re-snap of b")
	}
	if got := c.Engine().OccupantBounds()[b.ID]; got.Y != 0 || got.Width != 1000 {
		t.Fatalf("b after re-snap = %+v", got)
	}
}

func TestController_KeyboardIgnoredWhileDragging(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")
	c.Press(tiling.Point{X: 310, Y: 190})

	if c.SnapFocused(DirLeft) {
		t.Fatalf("snap should be refused during a drag")
	}
	if got := c.FocusDirection(DirLeft); got != a.ID {
		t.Fatalf("focus changed during drag: %q", got)
	}
}
