package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/dragmode"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// statusBarHeight is the number of rows above the desktop canvas.
const statusBarHeight = 1

// model is the root bubbletea model for the desktop.
type model struct {
	configPath string
	cfg        *config.Config
	ctrl       *dragmode.Controller
	watcher    *configWatcher

	keys     keyMap
	help     help.Model
	settings *settingsForm

	note string
	err  error

	// Terminal dimensions
	width  int
	height int
}

func newModel(cfg *config.Config, configPath string, ctrl *dragmode.Controller) model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctrl.Engine().SetSnapThreshold(cfg.SnapThreshold)
	return model{
		configPath: configPath,
		cfg:        cfg,
		ctrl:       ctrl,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.watcher.wait()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case configChangedMsg:
		m.reload()
		return m, m.watcher.wait()
	case watchErrMsg:
		m.err = fmt.Errorf("config watch: %w", msg.err)
		return m, m.watcher.wait()
	}

	if m.settings != nil {
		return m.updateSettings(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.New):
		win := m.ctrl.NewWindow("")
		m.note = "opened " + win.Title
	case key.Matches(msg, m.keys.Close):
		if id := m.ctrl.Focused(); id != "" {
			title := m.title(id)
			if m.ctrl.Close(id) {
				m.note = "closed " + title
			}
		}
	case key.Matches(msg, m.keys.Focus):
		if id := m.ctrl.FocusNext(); id != "" {
			m.note = "focused " + m.title(id)
		}
	case key.Matches(msg, m.keys.FocusDir):
		if dir, ok := direction(msg.String()); ok {
			if id := m.ctrl.FocusDirection(dir); id != "" {
				m.note = "focused " + m.title(id)
			}
		}
	case key.Matches(msg, m.keys.SnapDir):
		if dir, ok := direction(msg.String()); ok {
			id := m.ctrl.Focused()
			if m.ctrl.SnapFocused(dir) {
				m.note = fmt.Sprintf("snapped %s viewport %s", m.title(id), dir.Side())
			}
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.IsDragging() {
			m.ctrl.Cancel()
			m.note = "drag cancelled"
		}
	case key.Matches(msg, m.keys.Settings):
		if m.ctrl.IsDragging() {
			m.ctrl.Cancel()
		}
		m.settings = newSettingsForm(m.cfg, m.width)
		return m, m.settings.Init()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

func (m model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.settings = nil
		m.note = "settings discarded"
		return m, nil
	}

	cmd, done := m.settings.Update(msg)
	if !done {
		return m, cmd
	}
	next, err := m.settings.apply(m.cfg)
	m.settings = nil
	if err != nil {
		m.err = err
		return m, nil
	}
	m.applyConfig(next)
	m.note = "settings applied (ctrl+s to save)"
	return m, nil
}

func (m *model) updateMouse(msg tea.MouseMsg) {
	pt := m.toPixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inCanvas(msg.Y) {
			return
		}
		if m.ctrl.Press(pt) {
			m.note = "dragging " + m.title(m.ctrl.State().Grabbed)
		}
	case tea.MouseActionMotion:
		if m.ctrl.IsDragging() {
			m.ctrl.Motion(pt)
		}
	case tea.MouseActionRelease:
		if !m.ctrl.IsDragging() {
			return
		}
		id := m.ctrl.State().Grabbed
		if preview, ok := m.ctrl.Release(pt); ok {
			m.note = fmt.Sprintf("snapped %s %s", m.title(id), describeSnap(preview, true))
		} else {
			m.note = m.title(id) + " floating"
		}
	}
}

func (m *model) applyConfig(next *config.Config) {
	m.cfg = next
	m.ctrl.Engine().SetSnapThreshold(next.SnapThreshold)
	m.resize()
}

func (m *model) reload() {
	res, err := config.LoadFromPath(m.configPath)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.applyConfig(res.Config)
	m.note = "config reloaded"
}

func (m *model) save() {
	if err := m.cfg.SaveTo(m.configPath); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.note = "saved " + m.configPath
}

// resize fits the layout viewport to the canvas area.
func (m *model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.ctrl.Resize(tiling.Rect{
		Width:  m.width * m.cfg.TUI.CellWidth,
		Height: m.canvasRows() * m.cfg.TUI.CellHeight,
	})
}

func (m model) canvasRows() int {
	return max(m.height-statusBarHeight-lipgloss.Height(m.helpView()), 1)
}

func (m model) inCanvas(row int) bool {
	return row >= statusBarHeight && row < statusBarHeight+m.canvasRows()
}

// toPixel maps a terminal cell to the pixel at its centre.
func (m model) toPixel(col, row int) tiling.Point {
	cw, ch := m.cfg.TUI.CellWidth, m.cfg.TUI.CellHeight
	return tiling.Point{
		X: col*cw + cw/2,
		Y: (row-statusBarHeight)*ch + ch/2,
	}
}

func (m model) title(id tiling.OccupantID) string {
	if win := m.ctrl.Window(id); win != nil {
		return win.Title
	}
	return string(id)
}

func (m model) helpView() string {
	return renderHelpBar(m.help.View(m.keys), m.width)
}

// scene collects what the canvas needs from the controller and engine.
func (m model) scene() scene {
	eng := m.ctrl.Engine()
	st := m.ctrl.State()
	s := scene{
		Panes:       map[tiling.NodeID]tiling.Rect{},
		Frames:      m.ctrl.Frames(),
		Preview:     st.Preview,
		HasPreview:  st.Phase == dragmode.PhaseDragging && st.HasPreview,
		ShowNodeIDs: m.cfg.TUI.ShowNodeIDs,
		NodeOf:      map[tiling.OccupantID]tiling.NodeID{},
	}
	leaves := eng.Leaves()
	tiling.Walk(eng.Root(), func(n *tiling.Node, _ int) bool {
		if !n.IsLeaf() {
			return true
		}
		if n.Occupied() {
			s.NodeOf[n.Occupant] = n.ID
		} else {
			s.Panes[n.ID] = leaves[n.ID]
		}
		return true
	})
	return s
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	note := m.note
	if m.err != nil {
		note = errorStyle.Render(m.err.Error())
	}
	frames := m.ctrl.Frames()
	statusBar := renderStatusBar(statusLine(m.ctrl.State(), frames, m.ctrl.Engine().Threshold(), note), m.width)
	helpBar := m.helpView()
	rows := m.canvasRows()

	var content string
	if m.settings != nil {
		content = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center,
			formStyle.Render(m.settings.View()))
	} else {
		c := newCanvas(m.width, rows, m.cfg.TUI.CellWidth, m.cfg.TUI.CellHeight)
		c.draw(m.scene())
		content = c.Render(canvasStyles(m.cfg.TUI))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}
