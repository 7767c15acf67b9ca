package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/snaptile/internal/config"
)

// settingsForm edits the live tuning knobs of the desktop.
type settingsForm struct {
	form *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fThreshold   string
	fCellWidth   string
	fCellHeight  string
	fShowNodeIDs bool
}

func newSettingsForm(cfg *config.Config, width int) *settingsForm {
	s := &settingsForm{
		fThreshold:   strconv.Itoa(cfg.SnapThreshold),
		fCellWidth:   strconv.Itoa(cfg.TUI.CellWidth),
		fCellHeight:  strconv.Itoa(cfg.TUI.CellHeight),
		fShowNodeIDs: cfg.TUI.ShowNodeIDs,
	}

	w := max(width-4, 40)
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("snap_threshold").
				Title("Snap Threshold").
				Description("Pixels from an edge at which a drop snaps").
				Validate(positiveInt).
				Value(&s.fThreshold),
			huh.NewInput().
				Key("cell_width").
				Title("Cell Width").
				Description("Pixels per terminal column").
				Validate(positiveInt).
				Value(&s.fCellWidth),
			huh.NewInput().
				Key("cell_height").
				Title("Cell Height").
				Description("Pixels per terminal row").
				Validate(positiveInt).
				Value(&s.fCellHeight),
			huh.NewConfirm().
				Key("show_node_ids").
				Title("Show Node IDs").
				Value(&s.fShowNodeIDs),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
	return s
}

func (s *settingsForm) Init() tea.Cmd {
	return s.form.Init()
}

// Update forwards msg to the form and reports whether it was submitted.
func (s *settingsForm) Update(msg tea.Msg) (tea.Cmd, bool) {
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	return cmd, s.form.State == huh.StateCompleted
}

func (s *settingsForm) View() string {
	return s.form.View()
}

// apply writes the submitted values onto a copy of cfg.
func (s *settingsForm) apply(cfg *config.Config) (*config.Config, error) {
	next := *cfg
	var err error
	if next.SnapThreshold, err = strconv.Atoi(s.fThreshold); err != nil {
		return nil, fmt.Errorf("snap threshold: %w", err)
	}
	if next.TUI.CellWidth, err = strconv.Atoi(s.fCellWidth); err != nil {
		return nil, fmt.Errorf("cell width: %w", err)
	}
	if next.TUI.CellHeight, err = strconv.Atoi(s.fCellHeight); err != nil {
		return nil, fmt.Errorf("cell height: %w", err)
	}
	next.TUI.ShowNodeIDs = s.fShowNodeIDs
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
