package dragmode

import (
	"github.com/1broseidon/snaptile/internal/actionlog"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Direction represents an arrow key direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Side maps a direction to the viewport side it points at.
func (d Direction) Side() tiling.Side {
	switch d {
	case DirUp:
		return tiling.SideTop
	case DirDown:
		return tiling.SideBottom
	case DirLeft:
		return tiling.SideLeft
	default:
		return tiling.SideRight
	}
}

// neighborIndex picks the rect nearest to rects[current] in direction dir,
// by Manhattan distance between centres. With nothing in that direction it
// wraps to the rect furthest the other way, preferring the same row or
// column. Returns current when there is nowhere to go.
func neighborIndex(current int, dir Direction, rects []tiling.Rect) int {
	if current < 0 || current >= len(rects) {
		return current
	}
	c := rects[current].Center()

	best, bestDist := -1, 0
	for i, r := range rects {
		if i == current {
			continue
		}
		rc := r.Center()
		var ahead bool
		switch dir {
		case DirUp:
			ahead = rc.Y < c.Y
		case DirDown:
			ahead = rc.Y > c.Y
		case DirLeft:
			ahead = rc.X < c.X
		case DirRight:
			ahead = rc.X > c.X
		}
		if !ahead {
			continue
		}
		dist := abs(rc.X-c.X) + abs(rc.Y-c.Y)
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 {
		return best
	}

	bestScore := 0
	for i, r := range rects {
		if i == current {
			continue
		}
		rc := r.Center()
		var score int
		switch dir {
		case DirUp:
			score = rc.Y*10000 - abs(rc.X-c.X)
		case DirDown:
			score = -rc.Y*10000 - abs(rc.X-c.X)
		case DirLeft:
			score = rc.X*10000 - abs(rc.Y-c.Y)
		case DirRight:
			score = -rc.X*10000 - abs(rc.Y-c.Y)
		}
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return best
	}
	return current
}

// FocusDirection focuses and raises the window nearest the focused one in
// direction dir. Returns the newly focused id.
func (c *Controller) FocusDirection(dir Direction) tiling.OccupantID {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.windows) == 0 || c.state.Phase == PhaseDragging {
		return c.focused
	}
	cur := c.indexOf(c.focused)
	if cur < 0 {
		cur = len(c.windows) - 1
	}

	bounds := c.engine.OccupantBounds()
	rects := make([]tiling.Rect, len(c.windows))
	for i, win := range c.windows {
		if r, ok := bounds[win.ID]; ok {
			rects[i] = r
		} else {
			rects[i] = win.Float
		}
	}

	next := neighborIndex(cur, dir, rects)
	c.raise(next)
	c.focused = c.windows[len(c.windows)-1].ID
	return c.focused
}

// SnapFocused moves the focused window against the viewport side dir points
// at, wrapping the whole layout. A snapped window is taken out first.
func (c *Controller) SnapFocused(dir Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.focused == "" || c.state.Phase == PhaseDragging {
		return false
	}
	id := c.focused
	side := dir.Side()
	if c.engine.IsSnapped(id) {
		c.engine.Remove(id)
	}
	if !c.engine.Insert(id, tiling.NoNode, side) {
		return false
	}
	c.log.Log(actionlog.ActionInsert, string(id), map[string]any{"target": "viewport", "side": side})
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
