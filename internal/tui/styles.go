package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/dragmode"
	"github.com/1broseidon/snaptile/internal/tiling"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// canvasStyles builds the per-cell styles from the tui colour settings.
func canvasStyles(cfg config.TUIConfig) map[cellKind]lipgloss.Style {
	return map[cellKind]lipgloss.Style{
		kindPane:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		kindBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.BorderColor)),
		kindFocus:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.FocusColor)).Bold(true),
		kindPreview: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.PreviewColor)),
	}
}

// statusLine summarises the desktop: window counts, drag state and the
// pending snap.
func statusLine(st dragmode.State, frames []dragmode.Frame, threshold int, note string) string {
	snapped := 0
	for _, f := range frames {
		if f.Snapped {
			snapped++
		}
	}

	var dot string
	if st.Phase == dragmode.PhaseDragging {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render("●")
	} else {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
	}

	parts := []string{
		dot + " " + st.Phase.String(),
		fmt.Sprintf("windows:%d snapped:%d", len(frames), snapped),
		fmt.Sprintf("threshold:%dpx", threshold),
	}
	if st.Phase == dragmode.PhaseDragging {
		parts = append(parts, "snap:"+describeSnap(st.Preview, st.HasPreview))
	}
	if note != "" {
		parts = append(parts, note)
	}
	return strings.Join(parts, "  ")
}

func describeSnap(p tiling.SnapPreview, ok bool) string {
	if !ok {
		return "none"
	}
	if p.ViewportEdge() {
		return "viewport " + p.Side.String()
	}
	return fmt.Sprintf("#%d %s", p.Target, p.Side)
}

func renderStatusBar(text string, width int) string {
	return statusBarStyle.Width(width).MaxHeight(1).Render(text)
}

func renderHelpBar(text string, width int) string {
	return helpBarStyle.Width(width).Render(text)
}
