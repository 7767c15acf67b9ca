package tiling

import (
	"fmt"
	"strings"
)

// DefaultRatio is the division ratio used for every split the engine creates.
const DefaultRatio = 0.5

// NodeID identifies a node within a single engine's tree.
type NodeID uint64

// NoNode is the zero NodeID. A snap preview targeting NoNode refers to a
// viewport edge rather than an existing pane.
const NoNode NodeID = 0

// OccupantID is a weak reference to a window owned by the host. The empty
// string means "no occupant".
type OccupantID string

// Orientation describes how a split divides its rectangle.
type Orientation int

const (
	// Vertical places children side by side (divider is a vertical line).
	Vertical Orientation = iota
	// Horizontal stacks children top to bottom.
	Horizontal
)

// String returns the string representation of the orientation
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Side is the edge a window is snapped against.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// sideOrder is the tie-break order used when several edges are equally near.
var sideOrder = [...]Side{SideLeft, SideRight, SideTop, SideBottom}

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseSide converts a side name to a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	default:
		return 0, fmt.Errorf("unknown side %q (want left, right, top or bottom)", s)
	}
}

// Orientation returns the split orientation produced by snapping to s.
func (s Side) Orientation() Orientation {
	if s == SideTop || s == SideBottom {
		return Horizontal
	}
	return Vertical
}

// Leading reports whether a window snapped to s becomes the first child.
func (s Side) Leading() bool {
	return s == SideLeft || s == SideTop
}

// Node is a split or a leaf in the layout tree. A node with no children is a
// leaf; a split always has exactly two. Nodes are never mutated after
// construction, so subtrees can be shared between successive roots.
type Node struct {
	ID NodeID

	// Leaf fields.
	Occupant OccupantID

	// Split fields.
	Orientation Orientation
	Ratio       float64
	First       *Node
	Second      *Node
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.First == nil && n.Second == nil
}

// Occupied reports whether n is a leaf holding a window.
func (n *Node) Occupied() bool {
	return n.IsLeaf() && n.Occupant != ""
}

func newLeaf(id NodeID, occupant OccupantID) *Node {
	return &Node{ID: id, Occupant: occupant}
}

func newSplit(id NodeID, o Orientation, first, second *Node) *Node {
	if first == nil || second == nil {
		panic("tiling: split requires two children")
	}
	return &Node{
		ID:          id,
		Orientation: o,
		Ratio:       DefaultRatio,
		First:       first,
		Second:      second,
	}
}

// withChildren returns a copy of split n with its children replaced.
func (n *Node) withChildren(first, second *Node) *Node {
	cp := *n
	cp.First = first
	cp.Second = second
	return &cp
}

// IDSource hands out monotonically increasing node ids. The zero value is
// ready to use and never returns NoNode.
type IDSource struct {
	last NodeID
}

// Next returns a fresh id.
func (s *IDSource) Next() NodeID {
	s.last++
	return s.last
}

// Walk visits every node in depth-first, first-before-second order. Returning
// false from fn stops the walk.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	if n.IsLeaf() {
		return true
	}
	return walk(n.First, depth+1, fn) && walk(n.Second, depth+1, fn)
}

// Find returns the node with the given id, or nil.
func Find(root *Node, id NodeID) *Node {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindOccupant returns the leaf holding occupant, or nil.
func FindOccupant(root *Node, occupant OccupantID) *Node {
	if occupant == "" {
		return nil
	}
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if n.IsLeaf() && n.Occupant == occupant {
			found = n
			return false
		}
		return true
	})
	return found
}

// Occupants lists every occupant in the tree in first-before-second order.
func Occupants(root *Node) []OccupantID {
	var out []OccupantID
	Walk(root, func(n *Node, _ int) bool {
		if n.Occupied() {
			out = append(out, n.Occupant)
		}
		return true
	})
	return out
}

// Equivalent reports whether a and b have the same shape, orientations,
// ratios and occupants. Node ids are ignored.
func Equivalent(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return a.Occupant == b.Occupant
	}
	return a.Orientation == b.Orientation &&
		a.Ratio == b.Ratio &&
		Equivalent(a.First, b.First) &&
		Equivalent(a.Second, b.Second)
}

// Dump renders the tree as indented text, one node per line.
func Dump(root *Node) string {
	if root == nil {
		return "(empty)\n"
	}
	var sb strings.Builder
	Walk(root, func(n *Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		if n.IsLeaf() {
			occupant := string(n.Occupant)
			if occupant == "" {
				occupant = "(empty)"
			}
			fmt.Fprintf(&sb, "leaf#%d %s\n", n.ID, occupant)
		} else {
			fmt.Fprintf(&sb, "split#%d %s %.2f\n", n.ID, n.Orientation, n.Ratio)
		}
		return true
	})
	return sb.String()
}
