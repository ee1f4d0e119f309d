// internal/ui/view.go
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/hqnguyen/dbvim/internal/ui/highlight"
)

const (
	browserWidth = 28
	cellWidth    = 16
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	rightWidth := m.width - browserWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
	}
	contentHeight := m.height - 2
	if contentHeight < 6 {
		contentHeight = 6
	}
	editorHeight := contentHeight / 3
	if editorHeight < 3 {
		editorHeight = 3
	}
	viewerHeight := contentHeight - editorHeight

	browser := m.paneStyle(FocusBrowser).
		Width(browserWidth).
		Height(contentHeight - 2).
		Render(m.renderBrowser(contentHeight - 3))

	editor := m.paneStyle(FocusEditor).
		Width(rightWidth).
		Height(editorHeight - 2).
		Render(m.renderEditor(rightWidth-2, editorHeight-2))

	viewer := m.paneStyle(FocusViewer).
		Width(rightWidth).
		Height(viewerHeight - 2).
		Render(m.renderViewer(rightWidth - 2))

	right := lipgloss.JoinVertical(lipgloss.Left, editor, viewer)
	main := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, browser, right),
		m.renderStatusBar(),
		m.renderCommandLine(),
	)

	if popup := m.renderPopup(); popup != "" {
		return overlay.Composite(popup, main, overlay.Center, overlay.Center, 0, 0)
	}
	return main
}

func (m Model) paneStyle(f Focus) lipgloss.Style {
	if m.focus == f {
		return FocusedPaneStyle
	}
	return PaneStyle
}

func (m Model) renderBrowser(visible int) string {
	var b strings.Builder

	switch m.browser.Level {
	case LevelSchemas:
		b.WriteString(TitleStyle.Render("Schemas"))
	case LevelTables:
		b.WriteString(TitleStyle.Render("Tables: " + m.browser.Schema))
	default:
		b.WriteString(TitleStyle.Render("Connections"))
	}
	b.WriteString("\n")

	items := m.browser.Items(m.cfg.Profiles)
	if len(items) == 0 {
		b.WriteString(MetaStyle.Render("  (empty; o to add)"))
		return b.String()
	}

	lo, hi := m.browser.Window(len(items))
	for i := lo; i < hi; i++ {
		label := items[i]
		if m.browser.Level == LevelConnections && i < len(m.cfg.Profiles) {
			p := m.cfg.Profiles[i]
			mark := "  "
			if _, live := m.reg.Get(p.TargetKey()); live {
				mark = SuccessStyle.Render("* ")
			}
			label = mark + p.Name + " " + MetaStyle.Render(p.Describe())
		} else {
			label = "  " + label
		}

		if i == m.browser.Cursor {
			b.WriteString(SelectedItemStyle.Render("> " + strings.TrimPrefix(label, "  ")))
		} else {
			b.WriteString(ItemStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEditor(width, height int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("SQL"))
	b.WriteString("\n")

	row, col := m.editor.Cursor()
	lines := m.editor.Lines()

	// window the lines around the cursor
	lo := 0
	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	if row >= visible {
		lo = row - visible + 1
	}
	hi := lo + visible
	if hi > len(lines) {
		hi = len(lines)
	}

	selLo, selHi := -1, -1
	if m.editor.Visual() {
		selLo, selHi = m.editor.SelectionRange()
	}

	for i := lo; i < hi; i++ {
		line := lines[i]
		switch {
		case i >= selLo && i <= selHi:
			b.WriteString(VisualSelectStyle.Render(line))
		case i == row && m.focus == FocusEditor:
			b.WriteString(m.renderCursorLine(line, col))
		default:
			b.WriteString(highlight.Line(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCursorLine shows the cursor as an inverted cell; syntax color is
// skipped on this line so the cursor position stays unambiguous.
func (m Model) renderCursorLine(line string, col int) string {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	before := string(runes[:col])
	at := " "
	after := ""
	if col < len(runes) {
		at = string(runes[col])
		after = string(runes[col+1:])
	}
	return before + CursorCellStyle.Render(at) + after
}

func (m Model) renderViewer(width int) string {
	rs := m.viewer.ResultSet()

	var b strings.Builder
	title := "Results"
	if m.viewer.Table != "" {
		title = m.viewer.Table
		if rs.Truncated {
			title += MetaStyle.Render(fmt.Sprintf(" (first %d rows)", len(rs.Rows)))
		}
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	if len(rs.Columns) == 0 {
		b.WriteString(MetaStyle.Render("no rows; pick a table or run a statement"))
		return b.String()
	}

	rowLo, rowHi, colLo, colHi := m.viewer.Window()

	// header
	for c := colLo; c < colHi; c++ {
		name := rs.Columns[c]
		style := TitleStyle
		if c == m.viewer.Col {
			style = SelectedItemStyle
		}
		b.WriteString(style.Render(pad(name, cellWidth)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	buf := m.viewer.Buffer()
	selLo, selHi := -1, -1
	if m.viewer.Visual() {
		selLo, selHi = m.viewer.SelectionRange()
	}
	for r := rowLo; r < rowHi; r++ {
		for c := colLo; c < colHi; c++ {
			text := pad(m.viewer.DisplayValue(r, c).String(), cellWidth)

			var style lipgloss.Style
			switch {
			case r == m.viewer.Row && c == m.viewer.Col && m.focus == FocusViewer:
				style = CursorCellStyle
			case r >= selLo && r <= selHi:
				style = VisualSelectStyle
			case !m.viewer.IsInsertRow(r) && buf.Deleted(r):
				style = DeletedRowStyle
			case m.viewer.IsInsertRow(r):
				style = InsertRowStyle
			case !m.viewer.IsInsertRow(r) && buf.Dirty(r, c):
				style = DirtyCellStyle
			case m.viewer.DisplayValue(r, c).IsNull():
				style = MetaStyle
			default:
				style = ItemStyle
			}
			b.WriteString(style.Render(text))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if m.viewer.Editing() {
		b.WriteString("\n")
		b.WriteString(PromptStyle.Render("edit "))
		b.WriteString(m.viewer.Input().View())
	} else if buf.HasChanges() {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(" PENDING EDITS ") +
			MetaStyle.Render(" ctrl+s to commit"))
	}
	return b.String()
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func (m Model) renderPopup() string {
	switch {
	case m.showHelp:
		return PopupStyle.Render(helpText())
	case m.connForm != nil:
		return PopupStyle.Render(m.connForm.View())
	case m.histPopup != nil:
		return PopupStyle.Render(m.histPopup.View())
	case m.colsPopup != nil:
		return PopupStyle.Render(
			TitleStyle.Render("Columns: "+m.colsTitle) + "\n\n" + m.colsPopup.View())
	}
	return ""
}
