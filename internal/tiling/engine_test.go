package tiling

import (
	"reflect"
	"testing"
)

func newTestEngine() *Engine {
	return NewEngine(WithViewport(Rect{X: 0, Y: 0, Width: 1000, Height: 600}))
}

func TestEngine_DropAtViewportEdgeSnaps(t *testing.T) {
	e := newTestEngine()

	preview, ok := e.Drop("a", Point{X: 5, Y: 300})
	if !ok {
		t.Fatal("expected drop to snap")
	}
	if !preview.ViewportEdge() || preview.Side != SideLeft {
		t.Fatalf("unexpected preview %+v", preview)
	}
	if !e.IsSnapped("a") {
		t.Fatal("expected a to be snapped")
	}

	bounds := e.OccupantBounds()
	if got, want := bounds["a"], (Rect{X: 0, Y: 0, Width: 500, Height: 600}); got != want {
		t.Fatalf("a bounds = %+v, want %+v", got, want)
	}
}

func TestEngine_DropIntoEmptyPane(t *testing.T) {
	e := newTestEngine()
	e.Drop("a", Point{X: 5, Y: 300})

	// The empty right half; its left edge is at x=500.
	preview, ok := e.Drop("b", Point{X: 520, Y: 300})
	if !ok {
		t.Fatal("expected drop to snap")
	}
	if preview.ViewportEdge() {
		t.Fatal("expected a pane target")
	}

	want := map[OccupantID]Rect{
		"a": {X: 0, Y: 0, Width: 500, Height: 600},
		"b": {X: 500, Y: 0, Width: 500, Height: 600},
	}
	if got := e.OccupantBounds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
}

func TestEngine_DropAwayFromEdgesDoesNothing(t *testing.T) {
	e := newTestEngine()
	if _, ok := e.Drop("a", Point{X: 500, Y: 300}); ok {
		t.Fatal("expected no snap in the middle of an empty viewport")
	}
	if e.Root() != nil || e.IsSnapped("a") {
		t.Fatal("expected engine to stay empty")
	}
}

func TestEngine_InsertRejectsDuplicatesAndUnknownTargets(t *testing.T) {
	e := newTestEngine()
	if !e.Insert("a", NoNode, SideTop) {
		t.Fatal("expected first insert to succeed")
	}
	root := e.Root()

	if e.Insert("a", NoNode, SideBottom) {
		t.Fatal("expected duplicate insert to be rejected")
	}
	if e.Insert("b", 12345, SideLeft) {
		t.Fatal("expected unknown target to be rejected")
	}
	if e.Insert("", NoNode, SideLeft) {
		t.Fatal("expected empty occupant to be rejected")
	}
	if e.Root() != root {
		t.Fatal("expected tree to be unchanged")
	}
	if e.IsSnapped("b") {
		t.Fatal("b must not be marked snapped")
	}
}

func TestEngine_RemoveClearsSnapped(t *testing.T) {
	e := newTestEngine()
	e.Insert("a", NoNode, SideLeft)
	e.Insert("b", NoNode, SideRight)

	if !e.Remove("a") {
		t.Fatal("expected remove to succeed")
	}
	if e.IsSnapped("a") {
		t.Fatal("a still snapped")
	}
	if e.Remove("a") {
		t.Fatal("expected second remove to be a no-op")
	}
	if got := e.Occupants(); !reflect.DeepEqual(got, []OccupantID{"b"}) {
		t.Fatalf("occupants = %v, want [b]", got)
	}

	e.Remove("b")
	if e.Root() != nil {
		t.Fatalf("expected empty tree, got:\n%s", Dump(e.Root()))
	}
}

func TestEngine_ResizeRecomputesBounds(t *testing.T) {
	e := newTestEngine()
	e.Insert("a", NoNode, SideLeft)

	e.SetViewport(Rect{X: 0, Y: 0, Width: 301, Height: 200})
	if got, want := e.OccupantBounds()["a"], (Rect{X: 0, Y: 0, Width: 150, Height: 200}); got != want {
		t.Fatalf("a bounds = %+v, want %+v", got, want)
	}

	e.SetViewport(Rect{Width: -5, Height: -5})
	if v := e.Viewport(); v.Width != 0 || v.Height != 0 {
		t.Fatalf("expected negative size to clamp to zero, got %+v", v)
	}
}

func TestEngine_SnapThreshold(t *testing.T) {
	e := NewEngine(WithViewport(Rect{Width: 1000, Height: 600}), WithSnapThreshold(10))
	if e.Threshold() != 10 {
		t.Fatalf("threshold = %d, want 10", e.Threshold())
	}
	if _, ok := e.Preview(Point{X: 20, Y: 300}); ok {
		t.Fatal("expected no preview beyond a 10px threshold")
	}

	e.SetSnapThreshold(0)
	if e.Threshold() != 10 {
		t.Fatal("expected non-positive threshold to be ignored")
	}
	e.SetSnapThreshold(25)
	if _, ok := e.Preview(Point{X: 20, Y: 300}); !ok {
		t.Fatal("expected preview within a 25px threshold")
	}
}

func TestEngine_LeavesIncludesEmptyPanes(t *testing.T) {
	e := newTestEngine()
	e.Insert("a", NoNode, SideLeft)

	leaves := e.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if leaf := e.LeafAt(Point{X: 900, Y: 10}); leaf == nil || leaf.Occupied() {
		t.Fatalf("expected empty leaf on the right, got %+v", leaf)
	}
}
