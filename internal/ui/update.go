// internal/ui/update.go
package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hqnguyen/dbvim/internal/config"
	eztable "github.com/hqnguyen/dbvim/internal/ui/components/table"
	"github.com/hqnguyen/dbvim/internal/vim"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnOpenedMsg:
		return m.onConnOpened(msg)
	case ConnTestedMsg:
		m.busy--
		if m.connForm != nil {
			if msg.Err != nil {
				m.connForm.errMsg = msg.Err.Error()
			} else {
				m.connForm.okMsg = "connection ok"
			}
			return m, nil
		}
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		return m, m.setStatus("connection ok")
	case SchemasLoadedMsg:
		return m.onSchemasLoaded(msg)
	case SchemaUsedMsg:
		return m.onSchemaUsed(msg)
	case TablesLoadedMsg:
		return m.onTablesLoaded(msg)
	case TableFetchedMsg:
		return m.onTableFetched(msg)
	case ColumnsLoadedMsg:
		return m.onColumnsLoaded(msg)
	case QueryDoneMsg:
		return m.onQueryDone(msg)
	case BufferExecutedMsg:
		return m.onBufferExecuted(msg)
	case CommitDoneMsg:
		return m.onCommitDone(msg)
	case HistoryLoadedMsg:
		m.busy--
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		m.histPopup = NewHistoryPopup(msg.Entries)
		return m, nil
	case ClipboardMsg:
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		return m, m.setStatus("yanked to clipboard")
	}

	return m, nil
}

// handleKey routes a key to the open popup, the cell input, or the modal
// engine, in that order.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.connForm != nil {
		if key.Type == tea.KeyCtrlT {
			p, err := m.connForm.parse()
			if err != nil {
				m.connForm.errMsg = err.Error()
				return m, nil
			}
			m.connForm.errMsg = ""
			m.connForm.okMsg = ""
			m.busy++
			return m, m.testConnCmd(p)
		}
		profile, done, cmd := m.connForm.Update(key)
		if profile != nil {
			if err := m.cfg.AddProfile(*profile); err != nil {
				m.connForm.errMsg = err.Error()
				return m, nil
			}
			m.connForm = nil
			m.browser.ProfileCount = len(m.cfg.Profiles)
			m.busy++
			return m, m.openConnCmd(*profile)
		}
		if done {
			m.connForm = nil
		}
		return m, cmd
	}

	if m.histPopup != nil {
		stmt, done, cmd := m.histPopup.Update(key)
		if done {
			m.histPopup = nil
		}
		if stmt != "" {
			m.editor.SetText(stmt)
			m.focus = FocusEditor
		}
		return m, cmd
	}

	if m.colsPopup != nil {
		switch {
		case key.Type == tea.KeyEsc,
			key.Type == tea.KeyRunes && len(key.Runes) == 1 && key.Runes[0] == 'q':
			m.colsPopup = nil
			return m, nil
		}
		var cmd tea.Cmd
		*m.colsPopup, cmd = m.colsPopup.Update(key)
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// a cell edit owns the keyboard until it commits or cancels
	if m.focus == FocusViewer && m.viewer.Editing() {
		switch key.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.viewer.CancelEdit()
			return m, nil
		case tea.KeyEnter:
			m.viewer.CommitCellEdit()
			return m, nil
		}
		var cmd tea.Cmd
		*m.viewer.Input(), cmd = m.viewer.Input().Update(key)
		return m, cmd
	}

	var c vim.Command
	m.vim, c = vim.Handle(m.vim, key)
	if c.Action == vim.ActionNone {
		return m, nil
	}
	m.errMsg = ""
	return m.dispatch(c)
}

// dispatch routes a semantic command: global actions first, then the
// focused pane.
func (m Model) dispatch(c vim.Command) (tea.Model, tea.Cmd) {
	switch c.Action {
	case vim.ActionQuit:
		return m, tea.Quit
	case vim.ActionNextPane:
		m.cycleFocus(1)
		return m, nil
	case vim.ActionPrevPane:
		m.cycleFocus(-1)
		return m, nil
	case vim.ActionHelp:
		m.showHelp = true
		return m, nil
	case vim.ActionEnterCommand, vim.ActionCancelCommandLine:
		return m, nil
	case vim.ActionSubmitCommandLine:
		return m.runColon(c.Text)
	}

	switch m.focus {
	case FocusEditor:
		return m.dispatchEditor(c)
	case FocusViewer:
		return m.dispatchViewer(c)
	default:
		return m.dispatchBrowser(c)
	}
}

func (m Model) dispatchBrowser(c vim.Command) (tea.Model, tea.Cmd) {
	m.browser.ProfileCount = len(m.cfg.Profiles)

	switch c.Action {
	case vim.ActionMoveDown:
		m.browser.Move(c.Count)
	case vim.ActionMoveUp:
		m.browser.Move(-c.Count)
	case vim.ActionGotoTop:
		m.browser.GotoTop()
	case vim.ActionGotoBottom:
		m.browser.GotoBottom()

	case vim.ActionSubmit, vim.ActionMoveRight:
		return m.browserDescend()

	case vim.ActionCancel, vim.ActionMoveLeft:
		return m.browserAscend()

	case vim.ActionDeleteConnection:
		return m.browserDisconnect()

	case vim.ActionDeleteLine:
		return m.browserDeleteProfile()

	case vim.ActionEnterInsert, vim.ActionEnterInsertLineBelow:
		// the form owns the keyboard; the engine's Insert mode does not apply
		m.vim = m.vim.Reset()
		m.connForm = NewConnForm()
		return m, nil

	case vim.ActionEnterEdit:
		if m.browser.Level == LevelTables {
			conn, ok := m.liveConn(m.browser.ConnID)
			if !ok {
				m.browser.Reset()
				return m, nil
			}
			table := m.browser.Selected(m.cfg.Profiles)
			if table == "" {
				return m, nil
			}
			m.busy++
			return m, m.loadColumnsCmd(conn, table)
		}

	case vim.ActionRefresh:
		return m.browserRefresh()
	}
	return m, nil
}

func (m Model) browserDescend() (tea.Model, tea.Cmd) {
	switch m.browser.Level {
	case LevelConnections:
		if m.browser.Cursor >= len(m.cfg.Profiles) {
			return m, nil
		}
		p := m.cfg.Profiles[m.browser.Cursor]
		if conn, ok := m.reg.Get(p.TargetKey()); ok {
			m.busy++
			return m, m.loadSchemasCmd(conn)
		}
		m.busy++
		return m, m.openConnCmd(p)

	case LevelSchemas:
		conn, ok := m.liveConn(m.browser.ConnID)
		if !ok {
			m.browser.Reset()
			return m, nil
		}
		schema := m.browser.Selected(m.cfg.Profiles)
		if schema == "" {
			return m, nil
		}
		m.busy++
		return m, m.useSchemaCmd(conn, schema)

	default: // LevelTables
		conn, ok := m.liveConn(m.browser.ConnID)
		if !ok {
			m.browser.Reset()
			return m, nil
		}
		table := m.browser.Selected(m.cfg.Profiles)
		if table == "" {
			return m, nil
		}
		m.busy++
		return m, m.fetchTableCmd(conn, table, m.cfg.FetchLimit)
	}
}

func (m Model) browserAscend() (tea.Model, tea.Cmd) {
	wasTables := m.browser.Level == LevelTables
	if !m.browser.Ascend() {
		return m, nil
	}
	if wasTables {
		// leaving the schema level clears the connection's schema context
		if conn, ok := m.liveConn(m.browser.ConnID); ok {
			m.busy++
			return m, m.clearSchemaCmd(conn)
		}
	}
	return m, nil
}

func (m Model) browserDisconnect() (tea.Model, tea.Cmd) {
	id := m.browser.ConnID
	if m.browser.Level == LevelConnections {
		if m.browser.Cursor >= len(m.cfg.Profiles) {
			return m, nil
		}
		id = m.cfg.Profiles[m.browser.Cursor].TargetKey()
	}
	if _, ok := m.reg.Get(id); !ok {
		return m, m.setStatus("not connected")
	}
	m.reg.Close(id)
	if m.viewer.ConnID == id {
		m.viewer.Clear()
	}
	if m.browser.ConnID == id {
		m.browser.Reset()
	}
	return m, m.setStatus("disconnected")
}

func (m Model) browserDeleteProfile() (tea.Model, tea.Cmd) {
	if m.browser.Level != LevelConnections || m.browser.Cursor >= len(m.cfg.Profiles) {
		return m, nil
	}
	p := m.cfg.Profiles[m.browser.Cursor]
	if _, ok := m.reg.Get(p.TargetKey()); ok {
		m.reg.Close(p.TargetKey())
		if m.viewer.ConnID == p.TargetKey() {
			m.viewer.Clear()
		}
	}
	if err := m.cfg.DeleteProfile(p.Name); err != nil {
		m.setError(err)
		return m, nil
	}
	m.browser.ProfileCount = len(m.cfg.Profiles)
	m.browser.Move(0)
	return m, m.setStatus("deleted " + p.Name)
}

func (m Model) browserRefresh() (tea.Model, tea.Cmd) {
	switch m.browser.Level {
	case LevelSchemas:
		if conn, ok := m.liveConn(m.browser.ConnID); ok {
			m.busy++
			return m, m.loadSchemasCmd(conn)
		}
	case LevelTables:
		if conn, ok := m.liveConn(m.browser.ConnID); ok {
			m.busy++
			return m, m.loadTablesCmd(conn, m.browser.Schema)
		}
	}
	return m, nil
}

func (m Model) dispatchEditor(c vim.Command) (tea.Model, tea.Cmd) {
	e := &m.editor
	switch c.Action {
	case vim.ActionMoveLeft:
		e.MoveLeft(c.Count)
	case vim.ActionMoveRight:
		e.MoveRight(c.Count)
	case vim.ActionMoveUp:
		e.MoveUp(c.Count)
	case vim.ActionMoveDown:
		e.MoveDown(c.Count)
	case vim.ActionWordForward:
		e.WordForward(c.Count)
	case vim.ActionWordBack:
		e.WordBack(c.Count)
	case vim.ActionLineStart:
		e.LineStart()
	case vim.ActionLineEnd:
		e.LineEnd()
	case vim.ActionGotoTop:
		e.GotoTop()
	case vim.ActionGotoBottom:
		e.GotoBottom()

	case vim.ActionEnterInsert:
		e.Snapshot()
	case vim.ActionEnterInsertAfter:
		e.Snapshot()
		e.MoveRight(1)
	case vim.ActionEnterInsertLineBelow:
		e.OpenLineBelow()
	case vim.ActionEnterInsertLineAbove:
		e.OpenLineAbove()

	case vim.ActionInsertRune:
		e.InsertRune(c.Rune)
	case vim.ActionInsertNewline:
		e.Newline()
	case vim.ActionBackspace:
		e.Backspace()

	case vim.ActionDeleteChar:
		e.DeleteChar(c.Count)
	case vim.ActionDeleteLine:
		m.vim.Register = e.DeleteLine(c.Count)
	case vim.ActionYankLine:
		m.vim.Register = e.YankLine()
		return m, copyToClipboardCmd(strings.TrimSuffix(m.vim.Register, "\n"))
	case vim.ActionPaste:
		e.Paste(m.vim.Register)
	case vim.ActionUndo:
		if !e.Undo() {
			return m, m.setStatus("nothing to undo")
		}

	case vim.ActionEnterVisual:
		e.StartVisual()
	case vim.ActionYankSelection:
		m.vim.Register = e.SelectionText()
		e.EndVisual()
		return m, copyToClipboardCmd(strings.TrimSuffix(m.vim.Register, "\n"))
	case vim.ActionDeleteSelection:
		m.vim.Register = e.DeleteSelection()
	case vim.ActionCancel:
		e.EndVisual()

	case vim.ActionSubmit, vim.ActionExecuteStatement:
		return m.execAtCursor()
	case vim.ActionExecuteBuffer:
		return m.execWholeBuffer()
	}
	return m, nil
}

func (m Model) execAtCursor() (tea.Model, tea.Cmd) {
	stmt := m.editor.StatementAtCursor()
	if strings.TrimSpace(stmt) == "" {
		return m, m.setStatus("no statement under cursor")
	}
	conn, ok := m.activeConn()
	if !ok {
		m.setError(errors.New("no active connection"))
		return m, nil
	}
	m.busy++
	return m, m.execStatementCmd(conn, stmt)
}

func (m Model) execWholeBuffer() (tea.Model, tea.Cmd) {
	if m.editor.Empty() {
		return m, m.setStatus("buffer is empty")
	}
	conn, ok := m.activeConn()
	if !ok {
		m.setError(errors.New("no active connection"))
		return m, nil
	}
	m.busy++
	return m, m.execBufferCmd(conn, m.editor.Text())
}

func (m Model) dispatchViewer(c vim.Command) (tea.Model, tea.Cmd) {
	v := &m.viewer
	switch c.Action {
	case vim.ActionMoveLeft:
		v.Move(0, -c.Count)
	case vim.ActionMoveRight:
		v.Move(0, c.Count)
	case vim.ActionMoveUp:
		v.Move(-c.Count, 0)
	case vim.ActionMoveDown:
		v.Move(c.Count, 0)
	case vim.ActionWordForward:
		v.Move(0, c.Count)
	case vim.ActionWordBack:
		v.Move(0, -c.Count)
	case vim.ActionLineStart:
		v.LineStart()
	case vim.ActionLineEnd:
		v.LineEnd()
	case vim.ActionGotoTop:
		v.GotoTop()
	case vim.ActionGotoBottom:
		v.GotoBottom()

	case vim.ActionEnterEdit, vim.ActionSubmit, vim.ActionEnterInsert:
		m.vim = m.vim.Reset()
		if !v.StartEdit() {
			return m, m.setStatus("rows are read-only")
		}
	case vim.ActionDeleteLine:
		if !v.ToggleDelete(c.Count) {
			return m, m.setStatus("rows are read-only")
		}
	case vim.ActionYankLine:
		if text := v.YankRow(); text != "" {
			m.vim.Register = text
			return m, copyToClipboardCmd(text)
		}
	case vim.ActionEnterVisual:
		v.StartVisual()
	case vim.ActionYankSelection:
		if text := v.YankSelection(); text != "" {
			m.vim.Register = text
			return m, copyToClipboardCmd(text)
		}
	case vim.ActionDeleteSelection:
		if n := v.DeleteSelection(); n > 0 {
			return m, m.setStatus(fmt.Sprintf("%d rows marked for deletion", n))
		}
	case vim.ActionCancel:
		v.EndVisual()

	case vim.ActionEnterInsertRow:
		if !v.AddRow() {
			return m, m.setStatus("rows are read-only")
		}
	case vim.ActionCommitEdits:
		return m.commitEdits()
	case vim.ActionRefresh:
		return m.refreshViewer()
	case vim.ActionExecuteStatement:
		m.focus = FocusEditor
		return m.execAtCursor()
	}
	return m, nil
}

func (m Model) commitEdits() (tea.Model, tea.Cmd) {
	if !m.viewer.Buffer().HasChanges() {
		return m, m.setStatus("no pending edits")
	}
	conn, ok := m.liveConn(m.viewer.ConnID)
	if !ok {
		m.setError(errors.New("connection is gone; edits cannot be applied"))
		return m, nil
	}
	ops, err := m.viewer.Plan(conn.Kind())
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.busy++
	return m, m.commitCmd(conn, m.viewer.Table, ops)
}

func (m Model) refreshViewer() (tea.Model, tea.Cmd) {
	if m.viewer.Table == "" {
		return m, nil
	}
	if m.viewer.Buffer().HasChanges() {
		m.setError(errors.New("pending edits; commit or discard them first"))
		return m, nil
	}
	conn, ok := m.liveConn(m.viewer.ConnID)
	if !ok {
		return m, nil
	}
	m.busy++
	return m, m.fetchTableCmd(conn, m.viewer.Table, m.cfg.FetchLimit)
}

// runColon executes a parsed command line
func (m Model) runColon(text string) (tea.Model, tea.Cmd) {
	cc, err := ParseColon(text)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	switch cc.Verb {
	case VerbNone:
		return m, nil

	case VerbQuit:
		return m, tea.Quit

	case VerbOpen:
		p, err := config.ParseDSN(filepath.Base(cc.Arg), cc.Arg)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.busy++
		return m, m.openConnCmd(p)

	case VerbMySQL, VerbMariaDB:
		scheme := "mysql"
		if cc.Verb == VerbMariaDB {
			scheme = "mariadb"
		}
		dsn := cc.Arg
		if !strings.Contains(dsn, "://") {
			dsn = scheme + "://" + dsn
		}
		if !strings.HasPrefix(dsn, scheme+"://") {
			m.setError(fmt.Errorf("expected a %s:// connection string", scheme))
			return m, nil
		}
		p, err := config.ParseDSN(dsn, dsn)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.busy++
		return m, m.openConnCmd(p)

	case VerbExec:
		if cc.Arg != "" {
			conn, ok := m.activeConn()
			if !ok {
				m.setError(errors.New("no active connection"))
				return m, nil
			}
			m.busy++
			return m, m.execStatementCmd(conn, cc.Arg)
		}
		return m.execAtCursor()

	case VerbClear:
		conn, ok := m.activeConn()
		if !ok {
			m.setError(errors.New("no active connection"))
			return m, nil
		}
		if m.browser.Level == LevelTables {
			m.browser.Ascend()
		}
		m.busy++
		return m, m.clearSchemaCmd(conn)

	case VerbDisconnect:
		return m.disconnectByArg(cc.Arg)

	case VerbRefresh:
		return m.refreshViewer()

	case VerbHistory:
		conn, ok := m.activeConn()
		if !ok {
			m.setError(errors.New("no active connection"))
			return m, nil
		}
		m.busy++
		return m, m.loadHistoryCmd(conn.ID, cc.Arg)

	case VerbHelp:
		m.showHelp = true
		return m, nil
	}
	return m, nil
}

// disconnectByArg closes the named connection, matching a profile name or a
// target key, or the active connection when no argument is given.
func (m Model) disconnectByArg(arg string) (tea.Model, tea.Cmd) {
	id := ""
	if arg == "" {
		conn, ok := m.activeConn()
		if !ok {
			m.setError(errors.New("no active connection"))
			return m, nil
		}
		id = conn.ID
	} else {
		for _, p := range m.cfg.Profiles {
			if p.Name == arg {
				id = p.TargetKey()
				break
			}
		}
		if id == "" {
			id = arg
		}
		if _, ok := m.reg.Get(id); !ok {
			m.setError(fmt.Errorf("no live connection: %s", arg))
			return m, nil
		}
	}

	m.reg.Close(id)
	if m.viewer.ConnID == id {
		m.viewer.Clear()
	}
	if m.browser.ConnID == id {
		m.browser.Reset()
	}
	return m, m.setStatus("disconnected")
}

func (m Model) onConnOpened(msg ConnOpenedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	conn, ok := m.liveConn(msg.ConnID)
	if !ok {
		return m, nil
	}
	// descend straight into the new connection's schemas
	m.focus = FocusBrowser
	m.busy++
	return m, tea.Batch(m.setStatus("connected: "+msg.Profile), m.loadSchemasCmd(conn))
}

func (m Model) onSchemasLoaded(msg SchemasLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	m.browser.EnterSchemas(msg.ConnID, msg.Schemas)
	return m, nil
}

func (m Model) onSchemaUsed(msg SchemaUsedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	if msg.Schema == "" {
		return m, m.setStatus("schema context cleared")
	}
	return m, nil
}

func (m Model) onTablesLoaded(msg TablesLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	m.browser.EnterTables(msg.Schema, msg.Tables)
	return m, nil
}

func (m Model) onTableFetched(msg TableFetchedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	m.viewer.SetTableResult(msg.ConnID, msg.Table, msg.Result, msg.Columns, msg.Limit)
	m.resizePanes()
	m.focus = FocusViewer
	if m.viewer.ResultSet().Truncated {
		return m, m.setStatus(fmt.Sprintf("showing first %d rows of %s", msg.Limit, msg.Table))
	}
	return m, nil
}

func (m Model) onColumnsLoaded(msg ColumnsLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	t := eztable.FromColumns(msg.Columns)
	m.colsPopup = &t
	m.colsTitle = msg.Table
	return m, nil
}

func (m Model) onQueryDone(msg QueryDoneMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	if msg.Result.IsSelect {
		m.viewer.SetQueryResult(msg.ConnID, msg.Result)
		m.resizePanes()
		m.focus = FocusViewer
		return m, m.setStatus(fmt.Sprintf("%d rows in %s", msg.Result.RowCount, msg.Result.Duration.Round(time.Millisecond)))
	}
	return m, m.setStatus(fmt.Sprintf("%d rows affected in %s", msg.Result.AffectedRows, msg.Result.Duration.Round(time.Millisecond)))
}

func (m Model) onBufferExecuted(msg BufferExecutedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if _, ok := m.liveConn(msg.ConnID); !ok {
		return m, nil
	}

	// the last SELECT's rows land in the viewer
	for i := len(msg.Outcomes) - 1; i >= 0; i-- {
		if out := msg.Outcomes[i]; out.Err == nil && out.Result != nil && out.Result.IsSelect {
			m.viewer.SetQueryResult(msg.ConnID, out.Result)
			m.resizePanes()
			break
		}
	}

	if msg.FailedAt >= 0 {
		failed := msg.Outcomes[msg.FailedAt]
		m.setError(fmt.Errorf("statement %d failed: %v", msg.FailedAt+1, failed.Err))
		return m, nil
	}
	return m, m.setStatus(fmt.Sprintf("%d statements executed", len(msg.Outcomes)))
}

func (m Model) onCommitDone(msg CommitDoneMsg) (tea.Model, tea.Cmd) {
	m.busy--
	conn, ok := m.liveConn(msg.ConnID)
	if !ok {
		return m, nil
	}
	if msg.Err != nil {
		// earlier operations stay applied; the buffer is kept for retry
		if msg.Failed != nil {
			label := fmt.Sprintf("row %d", msg.Failed.Row+1)
			if msg.Failed.Insert {
				label = fmt.Sprintf("new row %d", msg.Failed.Row+1)
			}
			m.setError(fmt.Errorf("commit stopped at %s after %d changes: %v", label, msg.Applied, msg.Err))
			return m, nil
		}
		m.setError(fmt.Errorf("commit stopped after %d changes: %v", msg.Applied, msg.Err))
		return m, nil
	}
	m.viewer.Buffer().Clear()
	m.busy++
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("applied %d changes to %s", msg.Applied, msg.Table)),
		m.fetchTableCmd(conn, msg.Table, m.cfg.FetchLimit),
	)
}

// resizePanes recomputes pane windows from the terminal size
func (m *Model) resizePanes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentHeight := m.height - 2 // status bar and hint line
	if contentHeight < 4 {
		contentHeight = 4
	}
	m.browser.SetVisibleRows(contentHeight - 3)

	editorHeight := contentHeight / 3
	if editorHeight < 3 {
		editorHeight = 3
	}
	viewerHeight := contentHeight - editorHeight - 6
	if viewerHeight < 3 {
		viewerHeight = 3
	}

	gridWidth := m.width - browserWidth - 6
	visibleCols := gridWidth / 18
	if visibleCols < 1 {
		visibleCols = 1
	}
	m.viewer.SetVisible(viewerHeight, visibleCols)
}
