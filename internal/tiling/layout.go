package tiling

import (
	"math"

	"github.com/1broseidon/snaptile/internal/config"
)

// Rect represents a pane position and size in pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Point is a pointer position in pixels.
type Point struct {
	X int
	Y int
}

// Contains reports whether p lies inside r. Rectangles are half-open, so a
// point on the right or bottom edge belongs to the neighbour.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ResolveBounds computes the rectangle owned by every node in the tree rooted
// at root. A nil root yields an empty map.
func ResolveBounds(root *Node, outer Rect) map[NodeID]Rect {
	out := make(map[NodeID]Rect)
	resolveBounds(root, outer, out)
	return out
}

func resolveBounds(n *Node, r Rect, out map[NodeID]Rect) {
	if n == nil {
		return
	}
	out[n.ID] = r
	if n.IsLeaf() {
		return
	}
	first, second := splitRect(r, n.Orientation, n.Ratio)
	resolveBounds(n.First, first, out)
	resolveBounds(n.Second, second, out)
}

// splitRect divides r along the given orientation. The first part is floored,
// the second takes the remainder so the two always sum to the parent.
func splitRect(r Rect, o Orientation, ratio float64) (first, second Rect) {
	if o == Horizontal {
		h := int(math.Floor(float64(r.Height) * ratio))
		first = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
		second = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
		return first, second
	}
	w := int(math.Floor(float64(r.Width) * ratio))
	first = Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	second = Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return first, second
}

// HalfRect returns the half of r that a window snapped to side would occupy.
func HalfRect(r Rect, side Side) Rect {
	first, second := splitRect(r, side.Orientation(), DefaultRatio)
	if side.Leading() {
		return first
	}
	return second
}

// ApplyPadding shrinks a monitor rectangle by the configured screen padding,
// returning adjusted bounds.
func ApplyPadding(monitor Rect, padding config.Margins) Rect {
	adjusted := Rect{
		X:      monitor.X + padding.Left,
		Y:      monitor.Y + padding.Top,
		Width:  monitor.Width - padding.Left - padding.Right,
		Height: monitor.Height - padding.Top - padding.Bottom,
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted
}
