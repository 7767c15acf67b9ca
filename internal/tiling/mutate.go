package tiling

// Insert places occupant into the tree and returns the new root.
//
// With no target (a viewport-edge snap) or an empty tree, the whole tree is
// wrapped in a new split next to a fresh leaf for occupant; an empty tree is
// first replaced by an unoccupied placeholder leaf. With a target leaf, an
// unoccupied leaf simply takes the occupant, and an occupied one is replaced
// by a split holding both windows ordered by side.
//
// Only the path from root to the target is rebuilt. An unknown target, or a
// target that is a split, returns root unchanged.
func Insert(root *Node, occupant OccupantID, target NodeID, side Side, ids *IDSource) *Node {
	if root == nil || target == NoNode {
		base := root
		if base == nil {
			base = newLeaf(ids.Next(), "")
		}
		return wrap(base, newLeaf(ids.Next(), occupant), side, ids)
	}

	next, ok := replaceLeaf(root, target, func(leaf *Node) *Node {
		if leaf.Occupant == "" {
			return newLeaf(leaf.ID, occupant)
		}
		return wrap(leaf, newLeaf(ids.Next(), occupant), side, ids)
	})
	if !ok {
		return root
	}
	return next
}

// wrap joins existing and incoming under a new split; incoming takes the
// first slot when side is left or top.
func wrap(existing, incoming *Node, side Side, ids *IDSource) *Node {
	if side.Leading() {
		return newSplit(ids.Next(), side.Orientation(), incoming, existing)
	}
	return newSplit(ids.Next(), side.Orientation(), existing, incoming)
}

// replaceLeaf rebuilds the path to the leaf with the given id, substituting
// the result of fn. Siblings off the path are reused.
func replaceLeaf(n *Node, id NodeID, fn func(*Node) *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.ID == id {
		if !n.IsLeaf() {
			return n, false
		}
		return fn(n), true
	}
	if n.IsLeaf() {
		return n, false
	}
	if first, ok := replaceLeaf(n.First, id, fn); ok {
		return n.withChildren(first, n.Second), true
	}
	if second, ok := replaceLeaf(n.Second, id, fn); ok {
		return n.withChildren(n.First, second), true
	}
	return n, false
}

// Remove deletes the leaf holding occupant and collapses the tree upward in
// one bottom-up pass: a split left with one child is replaced by that child,
// and a split left with none disappears. A second walk then drops a tree that
// holds only empty placeholder leaves, so when no occupant remains the result
// is nil. Removing an occupant that is not in the tree returns root unchanged.
func Remove(root *Node, occupant OccupantID) *Node {
	if occupant == "" {
		return root
	}
	next, found := remove(root, occupant)
	if !found {
		return root
	}
	if !hasOccupant(next) {
		return nil
	}
	return next
}

func hasOccupant(n *Node) bool {
	found := false
	Walk(n, func(node *Node, _ int) bool {
		found = node.Occupied()
		return !found
	})
	return found
}

func remove(n *Node, occupant OccupantID) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.IsLeaf() {
		if n.Occupant == occupant {
			return nil, true
		}
		return n, false
	}

	first, found := remove(n.First, occupant)
	second := n.Second
	if !found {
		second, found = remove(n.Second, occupant)
	}
	if !found {
		return n, false
	}

	switch {
	case first == nil && second == nil:
		return nil, true
	case first == nil:
		return second, true
	case second == nil:
		return first, true
	}
	return n.withChildren(first, second), true
}
