// internal/ui/historypopup.go
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/hqnguyen/dbvim/internal/history"
	eztable "github.com/hqnguyen/dbvim/internal/ui/components/table"
)

// HistoryPopup lists the active connection's past statements
type HistoryPopup struct {
	table bbtable.Model
	empty bool
}

// NewHistoryPopup builds the popup from loaded entries
func NewHistoryPopup(entries []history.Entry) *HistoryPopup {
	return &HistoryPopup{
		table: eztable.FromHistory(entries),
		empty: len(entries) == 0,
	}
}

// Update handles a key. It returns the selected statement on Enter and
// done=true when the popup should close.
func (h *HistoryPopup) Update(msg tea.KeyMsg) (statement string, done bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return "", true, nil
	case tea.KeyEnter:
		if h.empty {
			return "", true, nil
		}
		row := h.table.HighlightedRow()
		if s, ok := row.Data[eztable.StatementKey].(string); ok {
			return s, true, nil
		}
		return "", true, nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == 'q' {
		return "", true, nil
	}

	var c tea.Cmd
	h.table, c = h.table.Update(msg)
	return "", false, c
}

// View renders the popup body
func (h *HistoryPopup) View() string {
	if h.empty {
		return TitleStyle.Render("History") + "\n\n" +
			MetaStyle.Render("no statements recorded for this connection")
	}
	return TitleStyle.Render("History") + "\n\n" + h.table.View()
}
