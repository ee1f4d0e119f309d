// internal/ui/statusbar.go
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hqnguyen/dbvim/internal/vim"
)

func (m Model) renderStatusBar() string {
	var parts []string

	modeStyle := ModeStyle
	switch m.vim.Mode {
	case vim.Insert:
		modeStyle = InsertModeStyle
	case vim.Visual:
		modeStyle = VisualModeStyle
	}
	parts = append(parts, modeStyle.Render(m.vim.Mode.String()))

	if conn, ok := m.activeConn(); ok {
		info := conn.Profile.Name
		if info == "" {
			info = conn.Profile.Describe()
		}
		if m.browser.Schema != "" {
			info += "/" + m.browser.Schema
		}
		parts = append(parts, ConnectionStyle.Render(info))
	} else {
		parts = append(parts, ConnectionStyle.Render("not connected"))
	}

	if n := len(m.reg.List()); n > 1 {
		parts = append(parts, MetaStyle.Render(fmt.Sprintf(" %d live ", n)))
	}

	if m.viewer.Buffer().HasChanges() {
		parts = append(parts, WarningStyle.Render("+"))
	}

	if m.busy > 0 {
		parts = append(parts, " "+m.spin.View()+MetaStyle.Render("working"))
	}

	switch {
	case m.errMsg != "":
		parts = append(parts, " "+ErrorStyle.Render(truncate(m.errMsg, m.width/2)))
	case m.statusMsg != "":
		parts = append(parts, " "+SuccessStyle.Render(truncate(m.statusMsg, m.width/2)))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}

// renderCommandLine shows the command being typed, or a key hint
func (m Model) renderCommandLine() string {
	if m.vim.Mode == vim.Cmdline {
		return PromptStyle.Render(":") + m.vim.CmdBuffer
	}

	var hint string
	switch m.focus {
	case FocusEditor:
		hint = "i insert | ctrl+e run statement | ctrl+r run buffer | : command | ? help"
	case FocusViewer:
		hint = "e edit cell | dd delete row | ctrl+n new row | ctrl+s commit | ? help"
	default:
		hint = "enter open | esc back | o new connection | X disconnect | ? help"
	}
	return MetaStyle.Render(hint)
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
