// internal/ui/model.go

// Package ui is the terminal front end: a browser pane over connections,
// schemas, and tables, an SQL editor, and a result grid, coordinated by the
// modal input engine in internal/vim.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/history"
	"github.com/hqnguyen/dbvim/internal/registry"
	"github.com/hqnguyen/dbvim/internal/vim"
)

// Focus names the pane receiving dispatched commands
type Focus int

const (
	FocusBrowser Focus = iota
	FocusEditor
	FocusViewer
)

// Model is the root Bubble Tea model
type Model struct {
	cfg  *config.Config
	reg  *registry.Registry
	hist *history.Store

	vim   vim.State
	focus Focus

	browser Browser
	editor  Editor
	viewer  Viewer

	width, height int

	spin spinner.Model
	busy int // outstanding async operations

	statusMsg string
	errMsg    string
	statusSeq int

	// popups; at most one is open at a time
	showHelp  bool
	connForm  *ConnForm
	histPopup *HistoryPopup
	colsPopup *bbtable.Model
	colsTitle string
}

// NewModel creates the root model
func NewModel(cfg *config.Config, reg *registry.Registry, store *history.Store) Model {
	InitStyles(cfg.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	b := NewBrowser()
	b.ProfileCount = len(cfg.Profiles)

	return Model{
		cfg:     cfg,
		reg:     reg,
		hist:    store,
		browser: b,
		editor:  NewEditor(),
		viewer:  NewViewer(),
		spin:    sp,
	}
}

// Init starts the spinner tick loop
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// activeConn resolves the connection the current action should run on: the
// viewer's connection when it holds rows, otherwise the browser's, otherwise
// the only live connection if there is exactly one.
func (m *Model) activeConn() (*registry.Conn, bool) {
	if m.viewer.ConnID != "" {
		if c, ok := m.reg.Get(m.viewer.ConnID); ok {
			return c, true
		}
	}
	if m.browser.ConnID != "" {
		if c, ok := m.reg.Get(m.browser.ConnID); ok {
			return c, true
		}
	}
	if live := m.reg.List(); len(live) == 1 {
		return live[0], true
	}
	return nil, false
}

// liveConn returns the connection for an async result, or false when the
// connection was closed while the work was in flight. Results for closed
// connections are discarded.
func (m *Model) liveConn(id string) (*registry.Conn, bool) {
	if id == "" {
		return nil, false
	}
	c, ok := m.reg.Get(id)
	if !ok || c.Closed() {
		return nil, false
	}
	return c, true
}

// setStatus shows a transient status message
func (m *Model) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.statusMsg = s
	m.errMsg = ""
	return m.statusClearCmd()
}

// setError shows an error on the status line until the next action
func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.errMsg = err.Error()
	m.statusMsg = ""
}

func (m *Model) cycleFocus(delta int) {
	m.focus = Focus((int(m.focus) + delta + 3) % 3)
}
