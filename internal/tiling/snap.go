package tiling

// DefaultSnapThreshold is the maximum distance in pixels between the pointer
// and an edge for a snap to be proposed.
const DefaultSnapThreshold = 50

// SnapPreview describes where a dragged window would land if released now.
type SnapPreview struct {
	// Target is the leaf that would be split, or NoNode for a viewport edge.
	Target NodeID
	Side   Side
	// Rect is the area the window would occupy.
	Rect Rect
}

// ViewportEdge reports whether the preview snaps against the viewport rather
// than an existing pane.
func (p SnapPreview) ViewportEdge() bool {
	return p.Target == NoNode
}

// ComputeSnapPreview proposes a snap for pt using DefaultSnapThreshold.
func ComputeSnapPreview(root *Node, outer Rect, pt Point) (SnapPreview, bool) {
	return ComputeSnapPreviewWithin(root, outer, pt, DefaultSnapThreshold)
}

// ComputeSnapPreviewWithin proposes a snap for pt.
//
// When pt is inside a pane, the nearest of that pane's edges is used and the
// preview is the matching half of the pane. A point inside a pane never falls
// back to the viewport edges. When no pane is hit, the viewport edges are
// tested in left, right, top, bottom order and the preview is half of the
// viewport. A point outside the viewport only snaps while it stays within
// threshold of the viewport on every side.
func ComputeSnapPreviewWithin(root *Node, outer Rect, pt Point, threshold int) (SnapPreview, bool) {
	if leaf, r := leafAt(root, outer, pt); leaf != nil {
		side, dist := nearestEdge(r, pt)
		if dist > threshold {
			return SnapPreview{}, false
		}
		return SnapPreview{
			Target: leaf.ID,
			Side:   side,
			Rect:   HalfRect(r, side),
		}, true
	}

	dists := edgeDistances(outer, pt)
	for _, d := range dists {
		if d < -threshold {
			return SnapPreview{}, false
		}
	}
	for _, side := range sideOrder {
		if abs(dists[side]) <= threshold {
			return SnapPreview{
				Target: NoNode,
				Side:   side,
				Rect:   HalfRect(outer, side),
			}, true
		}
	}
	return SnapPreview{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// edgeDistances returns the distance from pt to each edge of r, indexed by
// Side. Points outside r yield negative distances on the crossed edges.
func edgeDistances(r Rect, pt Point) [4]int {
	var d [4]int
	d[SideLeft] = pt.X - r.X
	d[SideRight] = r.X + r.Width - pt.X
	d[SideTop] = pt.Y - r.Y
	d[SideBottom] = r.Y + r.Height - pt.Y
	return d
}

// nearestEdge picks the side with the smallest distance; ties go to the side
// that comes first in sideOrder.
func nearestEdge(r Rect, pt Point) (Side, int) {
	dists := edgeDistances(r, pt)
	best := sideOrder[0]
	for _, side := range sideOrder[1:] {
		if dists[side] < dists[best] {
			best = side
		}
	}
	return best, dists[best]
}
