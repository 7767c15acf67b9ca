package tiling

import (
	"fmt"
	"testing"
)

func TestInsert_FirstOccupantAtViewportLeft(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	ids := &IDSource{}

	root := Insert(nil, "a", NoNode, SideLeft, ids)

	if root.IsLeaf() || root.Orientation != Vertical {
		t.Fatalf("expected vertical split root, got:\n%s", Dump(root))
	}
	if root.Ratio != DefaultRatio {
		t.Fatalf("expected ratio %.2f, got %.2f", DefaultRatio, root.Ratio)
	}
	if !root.First.IsLeaf() || root.First.Occupant != "a" {
		t.Fatalf("expected first child to hold a, got:\n%s", Dump(root))
	}
	if !root.Second.IsLeaf() || root.Second.Occupant != "" {
		t.Fatalf("expected second child to be an empty leaf, got:\n%s", Dump(root))
	}

	bounds := ResolveBounds(root, outer)
	if got, want := bounds[root.First.ID], (Rect{X: 0, Y: 0, Width: 500, Height: 600}); got != want {
		t.Fatalf("a bounds = %+v, want %+v", got, want)
	}
	if got, want := bounds[root.Second.ID], (Rect{X: 500, Y: 0, Width: 500, Height: 600}); got != want {
		t.Fatalf("empty bounds = %+v, want %+v", got, want)
	}
}

func TestInsert_SplitsOccupiedLeafBySide(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	ids := &IDSource{last: 1}
	root := newLeaf(1, "a")

	root = Insert(root, "b", 1, SideBottom, ids)

	if root.IsLeaf() || root.Orientation != Horizontal {
		t.Fatalf("expected horizontal split, got:\n%s", Dump(root))
	}
	if root.First.Occupant != "a" || root.Second.Occupant != "b" {
		t.Fatalf("expected [a / b], got:\n%s", Dump(root))
	}

	bounds := ResolveBounds(root, outer)
	if got, want := bounds[root.First.ID], (Rect{X: 0, Y: 0, Width: 800, Height: 300}); got != want {
		t.Fatalf("a bounds = %+v, want %+v", got, want)
	}
	if got, want := bounds[root.Second.ID], (Rect{X: 0, Y: 300, Width: 800, Height: 300}); got != want {
		t.Fatalf("b bounds = %+v, want %+v", got, want)
	}
}

func TestInsert_SideOrdering(t *testing.T) {
	tests := []struct {
		side        Side
		orientation Orientation
		first       OccupantID
		second      OccupantID
	}{
		{SideLeft, Vertical, "new", "old"},
		{SideRight, Vertical, "old", "new"},
		{SideTop, Horizontal, "new", "old"},
		{SideBottom, Horizontal, "old", "new"},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			ids := &IDSource{last: 1}
			root := Insert(newLeaf(1, "old"), "new", 1, tt.side, ids)
			if root.Orientation != tt.orientation {
				t.Fatalf("orientation = %v, want %v", root.Orientation, tt.orientation)
			}
			if root.First.Occupant != tt.first || root.Second.Occupant != tt.second {
				t.Fatalf("children = [%s, %s], want [%s, %s]", root.First.Occupant, root.Second.Occupant, tt.first, tt.second)
			}
		})
	}
}

func TestInsert_EmptyLeafIsFilledWithoutGrowth(t *testing.T) {
	ids := &IDSource{}
	root := Insert(nil, "a", NoNode, SideLeft, ids)
	empty := root.Second

	next := Insert(root, "b", empty.ID, SideTop, ids)

	if next.IsLeaf() || next.First.Occupant != "a" {
		t.Fatalf("unexpected tree:\n%s", Dump(next))
	}
	if !next.Second.IsLeaf() || next.Second.Occupant != "b" || next.Second.ID != empty.ID {
		t.Fatalf("expected leaf %d to hold b, got:\n%s", empty.ID, Dump(next))
	}
	if next.ID != root.ID {
		t.Fatalf("expected root split to keep id %d, got %d", root.ID, next.ID)
	}
}

func TestInsert_ViewportEdgeWrapsWholeTree(t *testing.T) {
	ids := &IDSource{}
	root := Insert(nil, "a", NoNode, SideLeft, ids)

	next := Insert(root, "b", NoNode, SideBottom, ids)

	if next.Orientation != Horizontal || next.First != root || next.Second.Occupant != "b" {
		t.Fatalf("expected [old tree / b], got:\n%s", Dump(next))
	}
}

func TestInsert_SharesUntouchedSubtrees(t *testing.T) {
	ids := &IDSource{}
	root := Insert(nil, "a", NoNode, SideLeft, ids)
	root = Insert(root, "b", root.Second.ID, SideLeft, ids)
	root = Insert(root, "c", NoNode, SideRight, ids)
	// root = [[a | b] | c]
	untouched := root.Second
	left := root.First

	next := Insert(root, "d", FindOccupant(root, "a").ID, SideTop, ids)

	if next.Second != untouched {
		t.Fatal("expected sibling subtree to be reused")
	}
	if next.First == left {
		t.Fatal("expected path to target to be rebuilt")
	}
	if next.First.Second != left.Second {
		t.Fatal("expected b's leaf to be reused")
	}
	if FindOccupant(root, "d") != nil {
		t.Fatal("original tree must not change")
	}
}

func TestInsert_UnknownTargetIsNoop(t *testing.T) {
	ids := &IDSource{}
	root := Insert(nil, "a", NoNode, SideLeft, ids)

	if next := Insert(root, "b", 999, SideLeft, ids); next != root {
		t.Fatalf("expected unchanged root, got:\n%s", Dump(next))
	}
	if next := Insert(root, "b", root.ID, SideLeft, ids); next != root {
		t.Fatalf("expected split target to be ignored, got:\n%s", Dump(next))
	}
}

func TestRemove_CollapsesToSurvivingSibling(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	root := newSplit(3, Vertical, newLeaf(1, "a"), newLeaf(2, "b"))

	next := Remove(root, "a")

	if next == nil || !next.IsLeaf() || next.Occupant != "b" {
		t.Fatalf("expected single leaf b, got:\n%s", Dump(next))
	}
	if got := ResolveBounds(next, outer)[next.ID]; got != outer {
		t.Fatalf("b bounds = %+v, want %+v", got, outer)
	}
}

func TestRemove_AbsentOccupantReturnsSameRoot(t *testing.T) {
	root := newSplit(3, Vertical, newLeaf(1, "a"), newLeaf(2, "b"))
	if next := Remove(root, "zzz"); next != root {
		t.Fatalf("expected identical root, got:\n%s", Dump(next))
	}
	if next := Remove(root, ""); next != root {
		t.Fatalf("expected identical root for empty occupant, got:\n%s", Dump(next))
	}
	if next := Remove(nil, "a"); next != nil {
		t.Fatalf("expected nil, got:\n%s", Dump(next))
	}
}

func TestRemove_DeepCollapseKeepsOtherBranches(t *testing.T) {
	root, _ := buildTree(t, Rect{})
	before := Occupants(root)

	next := Remove(root, "d")

	after := Occupants(next)
	if len(after) != len(before)-1 {
		t.Fatalf("expected %d occupants, got %v", len(before)-1, after)
	}
	for _, occ := range after {
		if occ == "d" {
			t.Fatal("d still present")
		}
	}
	Walk(next, func(n *Node, _ int) bool {
		if !n.IsLeaf() && (n.First == nil || n.Second == nil) {
			t.Fatalf("split %d has a nil child", n.ID)
		}
		return true
	})
}

func TestRemove_EveryOccupantYieldsNil(t *testing.T) {
	orders := [][]OccupantID{
		{"a", "b", "c", "d", "e"},
		{"e", "d", "c", "b", "a"},
		{"c", "a", "e", "b", "d"},
	}
	for i, order := range orders {
		t.Run(fmt.Sprintf("order-%d", i), func(t *testing.T) {
			root, _ := buildTree(t, Rect{})
			for _, occ := range order {
				root = Remove(root, occ)
			}
			if root != nil {
				t.Fatalf("expected nil root, got:\n%s", Dump(root))
			}
		})
	}
}

func TestRemove_LastOccupantDropsPlaceholder(t *testing.T) {
	ids := &IDSource{}
	root := Insert(nil, "a", NoNode, SideRight, ids)
	if next := Remove(root, "a"); next != nil {
		t.Fatalf("expected nil root, got:\n%s", Dump(next))
	}
}

func TestInsertThenRemove_EmptyLeafTargetCollapses(t *testing.T) {
	ids := &IDSource{}
	base := Insert(nil, "a", NoNode, SideLeft, ids) // [a | empty]

	var empty NodeID
	Walk(base, func(n *Node, _ int) bool {
		if n.IsLeaf() && !n.Occupied() {
			empty = n.ID
		}
		return true
	})
	if empty == NoNode {
		t.Fatalf("expected an empty leaf in:\n%s", Dump(base))
	}

	inserted := Insert(base, "x", empty, SideRight, ids)
	if got := FindOccupant(inserted, "x"); got == nil || got.ID != empty {
		t.Fatalf("x should fill leaf %d:\n%s", empty, Dump(inserted))
	}

	// The placeholder is gone once x leaves, so the split collapses to a.
	restored := Remove(inserted, "x")
	if restored == nil || !restored.IsLeaf() || restored.Occupant != "a" {
		t.Fatalf("expected leaf a, got:\n%s", Dump(restored))
	}
	if Equivalent(restored, base) {
		t.Fatal("the empty placeholder should not come back")
	}
}

func TestInsertThenRemove_RestoresEquivalentTree(t *testing.T) {
	base, ids := buildTree(t, Rect{})

	// Empty-leaf targets collapse on removal instead; see
	// TestInsertThenRemove_EmptyLeafTargetCollapses.
	targets := []NodeID{NoNode}
	Walk(base, func(n *Node, _ int) bool {
		if n.Occupied() {
			targets = append(targets, n.ID)
		}
		return true
	})

	for _, target := range targets {
		for _, side := range sideOrder {
			name := fmt.Sprintf("target-%d-%s", target, side)
			t.Run(name, func(t *testing.T) {
				inserted := Insert(base, "x", target, side, ids)
				if FindOccupant(inserted, "x") == nil {
					t.Fatalf("x not inserted:\n%s", Dump(inserted))
				}
				restored := Remove(inserted, "x")
				if !Equivalent(restored, base) {
					t.Fatalf("tree not restored.\nbefore:\n%s\nafter:\n%s", Dump(base), Dump(restored))
				}
			})
		}
	}

	t.Run("from empty tree", func(t *testing.T) {
		inserted := Insert(nil, "x", NoNode, SideTop, ids)
		if restored := Remove(inserted, "x"); restored != nil {
			t.Fatalf("expected nil, got:\n%s", Dump(restored))
		}
	})
}

func TestIDSource_Monotonic(t *testing.T) {
	var ids IDSource
	prev := NoNode
	for i := 0; i < 1000; i++ {
		id := ids.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
}

func TestParseSide(t *testing.T) {
	for _, side := range sideOrder {
		got, err := ParseSide(side.String())
		if err != nil {
			t.Fatalf("ParseSide(%q): %v", side, err)
		}
		if got != side {
			t.Fatalf("ParseSide(%q) = %v", side, got)
		}
	}
	if _, err := ParseSide("middle"); err == nil {
		t.Fatal("expected error for unknown side")
	}
}
