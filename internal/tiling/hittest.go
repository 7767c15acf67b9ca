package tiling

// DeepestNodeAt returns the leaf whose rectangle contains pt, or nil when the
// tree is empty or pt lies outside outer.
func DeepestNodeAt(root *Node, outer Rect, pt Point) *Node {
	leaf, _ := leafAt(root, outer, pt)
	return leaf
}

// leafAt walks exactly one child per split, using the same arithmetic as
// ResolveBounds, and returns the leaf reached together with its rectangle.
func leafAt(root *Node, outer Rect, pt Point) (*Node, Rect) {
	if root == nil || !outer.Contains(pt) {
		return nil, Rect{}
	}

	n, r := root, outer
	for !n.IsLeaf() {
		first, second := splitRect(r, n.Orientation, n.Ratio)
		if first.Contains(pt) {
			n, r = n.First, first
		} else {
			n, r = n.Second, second
		}
	}
	return n, r
}
