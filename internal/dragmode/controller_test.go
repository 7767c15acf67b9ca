package dragmode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/snaptile/internal/actionlog"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("w%d", n)
	}
}

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	engine := tiling.NewEngine(tiling.WithViewport(tiling.Rect{Width: 1000, Height: 600}))
	return NewController(engine, append([]Option{WithIDFunc(sequentialIDs())}, opts...)...)
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInactive, "inactive"},
		{PhaseDragging, "dragging"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Fatalf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestNewWindow_CentredAndFocused(t *testing.T) {
	c := newTestController(t)
	win := c.NewWindow("")

	if win.ID != "w1" || win.Title != "window 1" {
		t.Fatalf("unexpected window %+v", win)
	}
	want := tiling.Rect{X: 300, Y: 180, Width: 400, Height: 240}
	if win.Float != want {
		t.Fatalf("float = %+v, want %+v", win.Float, want)
	}
	if c.Focused() != win.ID {
		t.Fatalf("focused = %q", c.Focused())
	}

	second := c.NewWindow("shell")
	if second.Float.X != want.X+cascadeStep || second.Float.Y != want.Y+cascadeStep {
		t.Fatalf("expected cascade offset, got %+v", second.Float)
	}
}

func TestNewWindow_DefaultIDsAreUUIDs(t *testing.T) {
	engine := tiling.NewEngine(tiling.WithViewport(tiling.Rect{Width: 100, Height: 100}))
	c := NewController(engine)
	a, b := c.NewWindow("a"), c.NewWindow("b")
	if len(a.ID) != 36 || a.ID == b.ID {
		t.Fatalf("expected distinct uuids, got %q and %q", a.ID, b.ID)
	}
}

func TestDrag_SnapToViewportLeft(t *testing.T) {
	c := newTestController(t)
	win := c.NewWindow("a")

	if !c.Press(tiling.Point{X: 310, Y: 190}) {
		t.Fatal("expected press to grab the window")
	}
	if st := c.State(); st.Phase != PhaseDragging || st.Grabbed != win.ID {
		t.Fatalf("unexpected state %+v", st)
	}

	preview, ok := c.Motion(tiling.Point{X: 5, Y: 300})
	if !ok || !preview.ViewportEdge() || preview.Side != tiling.SideLeft {
		t.Fatalf("unexpected preview %+v ok=%v", preview, ok)
	}
	if got := c.Window(win.ID).Float; got.X != -5 || got.Y != 290 {
		t.Fatalf("expected window to follow pointer, got %+v", got)
	}

	if _, ok := c.Release(tiling.Point{X: 5, Y: 300}); !ok {
		t.Fatal("expected release to snap")
	}
	if c.IsDragging() {
		t.Fatal("expected drag to end")
	}

	frames := c.Frames()
	if len(frames) != 1 || !frames[0].Snapped {
		t.Fatalf("unexpected frames %+v", frames)
	}
	if want := (tiling.Rect{Width: 500, Height: 600}); frames[0].Rect != want {
		t.Fatalf("rect = %+v, want %+v", frames[0].Rect, want)
	}
}

func TestDrag_ReleaseAwayFromEdgesFloats(t *testing.T) {
	c := newTestController(t)
	win := c.NewWindow("a")

	c.Press(tiling.Point{X: 310, Y: 190})
	if _, ok := c.Motion(tiling.Point{X: 500, Y: 300}); ok {
		t.Fatal("expected no preview in the middle")
	}
	if _, ok := c.Release(tiling.Point{X: 500, Y: 300}); ok {
		t.Fatal("expected release to miss")
	}

	if c.Engine().IsSnapped(win.ID) {
		t.Fatal("window must stay floating")
	}
	if got := c.Window(win.ID).Float; got.X != 490 || got.Y != 290 {
		t.Fatalf("float = %+v", got)
	}
}

func TestPress_SnappedWindowIsUnsnapped(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")
	b := c.NewWindow("b")
	c.Engine().Insert(a.ID, tiling.NoNode, tiling.SideLeft)
	empty := c.Engine().LeafAt(tiling.Point{X: 900, Y: 300})
	c.Engine().Insert(b.ID, empty.ID, tiling.SideRight)

	// b fills the right half.
	if !c.Press(tiling.Point{X: 900, Y: 300}) {
		t.Fatal("expected press on b")
	}
	if c.Engine().IsSnapped(b.ID) {
		t.Fatal("b should have left the tree")
	}
	st := c.State()
	if st.Grabbed != b.ID {
		t.Fatalf("grabbed %q, want %q", st.Grabbed, b.ID)
	}
	if st.Origin != (tiling.Rect{X: 500, Width: 500, Height: 600}) {
		t.Fatalf("origin = %+v", st.Origin)
	}

	c.Cancel()
	if c.IsDragging() {
		t.Fatal("expected cancel to end the drag")
	}
	if got := c.Window(b.ID).Float; got != st.Origin {
		t.Fatalf("float = %+v, want origin %+v", got, st.Origin)
	}
	if got := c.Engine().OccupantBounds()[a.ID]; got != (tiling.Rect{Width: 1000, Height: 600}) {
		t.Fatalf("a should fill the viewport, got %+v", got)
	}
}

func TestPress_TopmostWins(t *testing.T) {
	c := newTestController(t)
	c.NewWindow("bottom")
	top := c.NewWindow("top")

	// Both windows cover this point; the later one is on top.
	if !c.Press(tiling.Point{X: 400, Y: 250}) {
		t.Fatal("expected a hit")
	}
	if c.State().Grabbed != top.ID {
		t.Fatalf("grabbed %q, want %q", c.State().Grabbed, top.ID)
	}
}

func TestPress_MissesAndDoubleGrab(t *testing.T) {
	c := newTestController(t)
	c.NewWindow("a")

	if c.Press(tiling.Point{X: 5, Y: 5}) {
		t.Fatal("expected miss outside any window")
	}
	c.Press(tiling.Point{X: 310, Y: 190})
	if c.Press(tiling.Point{X: 310, Y: 190}) {
		t.Fatal("expected second press during a drag to be ignored")
	}
	if _, ok := c.Motion(tiling.Point{X: 1, Y: 1}); !ok {
		t.Fatal("expected motion near the corner to preview")
	}
}

func TestMotionAndReleaseWithoutDragAreNoops(t *testing.T) {
	c := newTestController(t)
	if _, ok := c.Motion(tiling.Point{X: 1, Y: 1}); ok {
		t.Fatal("expected no preview without a drag")
	}
	if _, ok := c.Release(tiling.Point{X: 1, Y: 1}); ok {
		t.Fatal("expected no drop without a drag")
	}
	c.Cancel()
}

func TestClose_RemovesFromTreeAndMovesFocus(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")
	b := c.NewWindow("b")
	c.Engine().Insert(b.ID, tiling.NoNode, tiling.SideTop)

	if !c.Close(b.ID) {
		t.Fatal("expected close to succeed")
	}
	if c.Engine().Root() != nil {
		t.Fatalf("expected empty tree, got:\n%s", tiling.Dump(c.Engine().Root()))
	}
	if c.Focused() != a.ID {
		t.Fatalf("focused = %q, want %q", c.Focused(), a.ID)
	}
	if c.Close(b.ID) {
		t.Fatal("expected second close to fail")
	}
}

func TestFocusNext_Cycles(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")
	b := c.NewWindow("b")

	if got := c.FocusNext(); got != a.ID {
		t.Fatalf("focus = %q, want %q", got, a.ID)
	}
	if got := c.FocusNext(); got != b.ID {
		t.Fatalf("focus = %q, want %q", got, b.ID)
	}
	frames := c.Frames()
	if !frames[len(frames)-1].Focused {
		t.Fatal("focused window must be topmost")
	}
}

func TestResize_RelaysOutTree(t *testing.T) {
	c := newTestController(t)
	a := c.NewWindow("a")
	c.Engine().Insert(a.ID, tiling.NoNode, tiling.SideLeft)

	c.Resize(tiling.Rect{Width: 400, Height: 300})
	if got := c.Engine().OccupantBounds()[a.ID]; got != (tiling.Rect{Width: 200, Height: 300}) {
		t.Fatalf("a = %+v", got)
	}
}

func TestController_LogsMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	logger, err := actionlog.New(actionlog.Options{Enabled: true, Level: actionlog.LevelDebug, FilePath: path})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c := newTestController(t, WithLogger(logger))

	win := c.NewWindow("a")
	c.Press(tiling.Point{X: 310, Y: 190})
	c.Motion(tiling.Point{X: 5, Y: 300})
	c.Release(tiling.Point{X: 5, Y: 300})
	c.Close(win.ID)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"[WINDOW-NEW]", "[PREVIEW]", "[DROP]", "side=left", "[WINDOW-CLOSE]"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in log:\n%s", want, data)
		}
	}
}

func TestController_AdoptRegistersSnappedOccupants(t *testing.T) {
	c := newTestController(t)
	eng := c.Engine()
	eng.Insert("left", tiling.NoNode, tiling.SideLeft)
	eng.Insert("right", eng.LeafAt(tiling.Point{X: 900, Y: 300}).ID, tiling.SideRight)
	known := c.NewWindow("known")

	if got := c.Adopt(); got != 2 {
		t.Fatalf("Adopt() = %d, want 2", got)
	}
	if got := c.Adopt(); got != 0 {
		t.Fatalf("second Adopt() = %d, want 0", got)
	}
	if c.Focused() != known.ID {
		t.Fatalf("focus should stay on %q, got %q", known.ID, c.Focused())
	}

	win := c.Window("left")
	if win == nil || win.Title != "left" {
		t.Fatalf("expected adopted window, got %+v", win)
	}
	if !c.Press(tiling.Point{X: 10, Y: 10}) {
		t.Fatalf("expected adopted window to be grabbable")
	}
	if c.State().Grabbed != "left" {
		t.Fatalf("grabbed = %q", c.State().Grabbed)
	}
}
