// internal/ui/components/table/table.go

// Package table wraps bubble-table construction for popup tables: column
// metadata and statement history.
package table

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/history"
)

// Nord colors
const (
	ColorForeground = "#D8DEE9"
	ColorGreen      = "#A3BE8C"
	ColorRed        = "#BF616A"
	ColorYellow     = "#EBCB8B"
	ColorTeal       = "#8FBCBB"
)

// StatementKey is the hidden row key holding a history entry's full
// statement; it is not a displayed column.
const StatementKey = "full_statement"

// New creates a bubble-table with the shared theme
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal)).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen)).
			Bold(true)).
		Focused(true).
		BorderRounded()
}

// FromColumns builds a table of column metadata
func FromColumns(cols []db.Column) bbtable.Model {
	headers := []string{"Column", "Type", "Null", "Key", "Default"}
	var display [][]string
	for _, c := range cols {
		null := "YES"
		if !c.Nullable {
			null = "NO"
		}
		key := ""
		if c.PrimaryKey {
			key = "PRI"
		}
		display = append(display, []string{c.Name, c.Type, null, key, c.Default})
	}

	widths := columnWidths(headers, display)
	var tcols []bbtable.Column
	for _, h := range headers {
		tcols = append(tcols, bbtable.NewColumn(h, h, widths[h]))
	}

	var rows []bbtable.Row
	for _, d := range display {
		rows = append(rows, bbtable.NewRow(bbtable.RowData{
			"Column":  d[0],
			"Type":    d[1],
			"Null":    d[2],
			"Key":     bbtable.NewStyledCell(d[3], lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))),
			"Default": d[4],
		}))
	}

	return New(tcols).WithRows(rows).WithNoPagination()
}

// FromHistory builds a table of recent statements. Each row carries the full
// statement under StatementKey so selecting it can reload the editor.
func FromHistory(entries []history.Entry) bbtable.Model {
	headers := []string{"When", "Statement", "Rows", "ms", "Status"}
	var display [][]string
	for _, e := range entries {
		display = append(display, []string{
			e.ExecutedAt.Format("01-02 15:04:05"),
			e.Summary(60),
			fmt.Sprintf("%d", e.RowCount),
			fmt.Sprintf("%d", e.DurationMs),
			e.Status,
		})
	}

	widths := columnWidths(headers, display)
	var tcols []bbtable.Column
	for _, h := range headers {
		w := widths[h]
		if h == "Statement" && w > 60 {
			w = 60
		}
		tcols = append(tcols, bbtable.NewColumn(h, h, w))
	}

	var rows []bbtable.Row
	for i, d := range display {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen))
		if !entries[i].Succeeded() {
			statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed))
		}
		rows = append(rows, bbtable.NewRow(bbtable.RowData{
			"When":       d[0],
			"Statement":  d[1],
			"Rows":       d[2],
			"ms":         d[3],
			"Status":     bbtable.NewStyledCell(d[4], statusStyle),
			StatementKey: entries[i].Statement,
		}))
	}

	return New(tcols).WithRows(rows).WithPageSize(15).
		WithStaticFooter("enter to reuse, esc to close")
}

func columnWidths(headers []string, rows [][]string) map[string]int {
	widths := make(map[string]int)
	for _, h := range headers {
		widths[h] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(headers) && len(val) > widths[headers[i]] {
				widths[headers[i]] = len(val)
			}
		}
	}
	for h := range widths {
		widths[h] += 2
	}
	return widths
}
