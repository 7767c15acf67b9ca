package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/dragmode"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// cellKind tags a canvas cell with the style it is drawn in.
type cellKind uint8

const (
	kindBlank cellKind = iota
	kindPane
	kindBorder
	kindFocus
	kindPreview
)

const shadeRune = '░'

type boxRunes struct {
	h, v, tl, tr, bl, br rune
}

var (
	lightBox = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
	heavyBox = boxRunes{'━', '┃', '┏', '┓', '┗', '┛'}
	paneBox  = boxRunes{'┄', '┆', '·', '·', '·', '·'}
)

// canvas is a grid of runes in terminal cells. Rects given to it are in
// pixels and scaled by the cell size.
type canvas struct {
	cols, rows int
	cw, ch     int
	runes      [][]rune
	kinds      [][]cellKind
}

func newCanvas(cols, rows, cw, ch int) *canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	c := &canvas{cols: cols, rows: rows, cw: max(cw, 1), ch: max(ch, 1)}
	c.runes = make([][]rune, rows)
	c.kinds = make([][]cellKind, rows)
	for y := range c.runes {
		c.runes[y] = make([]rune, cols)
		c.kinds[y] = make([]cellKind, cols)
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
		}
	}
	return c
}

// cells maps a pixel rect to the inclusive cell range it covers.
func (c *canvas) cells(r tiling.Rect) (x1, y1, x2, y2 int) {
	x1 = floorDiv(r.X, c.cw)
	y1 = floorDiv(r.Y, c.ch)
	x2 = floorDiv(r.X+r.Width, c.cw) - 1
	y2 = floorDiv(r.Y+r.Height, c.ch) - 1
	return x1, y1, x2, y2
}

func (c *canvas) set(x, y int, r rune, k cellKind) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

func (c *canvas) fill(r tiling.Rect, ch rune, k cellKind) {
	x1, y1, x2, y2 := c.cells(r)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, ch, k)
		}
	}
}

// box clears r and draws its outline. Boxes smaller than 2x2 cells are skipped.
func (c *canvas) box(r tiling.Rect, b boxRunes, k cellKind) bool {
	x1, y1, x2, y2 := c.cells(r)
	if x2 <= x1 || y2 <= y1 {
		return false
	}
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			c.set(x, y, ' ', kindBlank)
		}
	}
	for x := x1 + 1; x < x2; x++ {
		c.set(x, y1, b.h, k)
		c.set(x, y2, b.h, k)
	}
	for y := y1 + 1; y < y2; y++ {
		c.set(x1, y, b.v, k)
		c.set(x2, y, b.v, k)
	}
	c.set(x1, y1, b.tl, k)
	c.set(x2, y1, b.tr, k)
	c.set(x1, y2, b.bl, k)
	c.set(x2, y2, b.br, k)
	return true
}

// label writes text into the top border of r, truncated to fit.
func (c *canvas) label(r tiling.Rect, text string, k cellKind) {
	x1, y1, x2, _ := c.cells(r)
	avail := x2 - x1 - 3
	if avail <= 0 || text == "" {
		return
	}
	runes := []rune(" " + text + " ")
	if len(runes) > avail {
		runes = append(runes[:avail-1], '…')
	}
	for i, ch := range runes {
		c.set(x1+2+i, y1, ch, k)
	}
}

// Lines returns the canvas as plain text.
func (c *canvas) Lines() []string {
	lines := make([]string, c.rows)
	for y, row := range c.runes {
		lines[y] = string(row)
	}
	return lines
}

// Render returns the canvas with runs of equally tagged cells styled.
func (c *canvas) Render(styles map[cellKind]lipgloss.Style) string {
	var sb strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.cols; x++ {
			if x < c.cols && c.kinds[y][x] == c.kinds[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if st, ok := styles[c.kinds[y][start]]; ok {
				run = st.Render(run)
			}
			sb.WriteString(run)
			start = x
		}
	}
	return sb.String()
}

// scene is everything the desktop draws in one frame.
type scene struct {
	Panes       map[tiling.NodeID]tiling.Rect // empty leaves
	Frames      []dragmode.Frame
	Preview     tiling.SnapPreview
	HasPreview  bool
	ShowNodeIDs bool
	NodeOf      map[tiling.OccupantID]tiling.NodeID
}

// draw paints empty panes, snapped frames, the snap preview and then the
// floating frames, in that order.
func (c *canvas) draw(s scene) {
	for id, r := range s.Panes {
		if c.box(r, paneBox, kindPane) {
			text := "empty"
			if s.ShowNodeIDs {
				text = "empty #" + strconv.Itoa(int(id))
			}
			c.label(r, text, kindPane)
		}
	}
	for _, f := range s.Frames {
		if f.Snapped {
			c.frame(f, s)
		}
	}
	if s.HasPreview {
		c.fill(s.Preview.Rect, shadeRune, kindPreview)
	}
	for _, f := range s.Frames {
		if !f.Snapped {
			c.frame(f, s)
		}
	}
}

func (c *canvas) frame(f dragmode.Frame, s scene) {
	b, k := lightBox, kindBorder
	if f.Focused {
		b, k = heavyBox, kindFocus
	}
	if !c.box(f.Rect, b, k) {
		return
	}
	text := f.Title
	if s.ShowNodeIDs {
		if id, ok := s.NodeOf[f.ID]; ok {
			text += " #" + strconv.Itoa(int(id))
		}
	}
	c.label(f.Rect, text, k)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
