// internal/ui/viewer.go
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/grid"
	"github.com/hqnguyen/dbvim/internal/value"
)

// Viewer is the result grid pane: a fetched row set with the sparse edit
// overlay on top. New rows appear below the fetched rows, newest first.
type Viewer struct {
	ConnID string
	Table  string

	rs   *grid.ResultSet
	buf  *grid.EditBuffer
	cols []db.Column

	Row, Col int
	vp       grid.Viewport

	visual bool
	anchor int

	editing bool
	input   textinput.Model
}

// NewViewer creates an empty viewer
func NewViewer() Viewer {
	ti := textinput.New()
	ti.CharLimit = 4096
	return Viewer{
		rs:    &grid.ResultSet{},
		buf:   grid.NewEditBuffer(),
		input: ti,
		vp:    grid.Viewport{VisibleRows: 20, VisibleCols: 6},
	}
}

// SetTableResult loads a bounded table fetch, replacing the row set and
// dropping any pending edits.
func (v *Viewer) SetTableResult(connID, table string, res *db.Result, cols []db.Column, limit int) {
	v.ConnID = connID
	v.Table = table
	v.rs = grid.NewTableResultSet(res, table, limit)
	v.cols = cols
	v.buf = grid.NewEditBuffer()
	v.Row, v.Col = 0, 0
	v.vp.RowOffset, v.vp.ColOffset = 0, 0
	v.visual = false
	v.editing = false
}

// SetQueryResult loads an ad hoc statement's rows. Query results have no
// target table and cannot be edited.
func (v *Viewer) SetQueryResult(connID string, res *db.Result) {
	v.ConnID = connID
	v.Table = ""
	v.rs = grid.NewResultSet(res)
	v.cols = nil
	v.buf = grid.NewEditBuffer()
	v.Row, v.Col = 0, 0
	v.vp.RowOffset, v.vp.ColOffset = 0, 0
	v.visual = false
	v.editing = false
}

// Clear empties the viewer, used when its connection goes away
func (v *Viewer) Clear() {
	v.ConnID = ""
	v.Table = ""
	v.rs = &grid.ResultSet{}
	v.cols = nil
	v.buf = grid.NewEditBuffer()
	v.Row, v.Col = 0, 0
	v.visual = false
	v.editing = false
}

// ResultSet exposes the fetched rows for rendering
func (v *Viewer) ResultSet() *grid.ResultSet { return v.rs }

// Buffer exposes the pending edits for rendering
func (v *Viewer) Buffer() *grid.EditBuffer { return v.buf }

// Columns exposes the table's column metadata
func (v *Viewer) Columns() []db.Column { return v.cols }

// RowCount counts fetched rows plus pending new rows
func (v *Viewer) RowCount() int {
	return len(v.rs.Rows) + len(v.buf.InsertRows())
}

// IsInsertRow reports whether a grid row is a pending new row
func (v *Viewer) IsInsertRow(row int) bool {
	return row >= len(v.rs.Rows)
}

func (v *Viewer) insertIndex(row int) int {
	return row - len(v.rs.Rows)
}

// DisplayValue resolves the value shown at a grid cell: overlay first for
// fetched rows, the pending row itself for new rows.
func (v *Viewer) DisplayValue(row, col int) value.Value {
	if v.IsInsertRow(row) {
		rows := v.buf.InsertRows()
		i := v.insertIndex(row)
		if i < len(rows) && col < len(rows[i]) {
			return rows[i][col]
		}
		return value.Null
	}
	return v.buf.ValueAt(v.rs, row, col)
}

// Move shifts the cursor, keeping it visible
func (v *Viewer) Move(dRow, dCol int) {
	v.Row = grid.Clamp(v.Row+dRow, v.RowCount())
	v.Col = grid.Clamp(v.Col+dCol, len(v.rs.Columns))
	v.vp.EnsureRowVisible(v.Row)
	v.vp.EnsureColVisible(v.Col)
}

// LineStart selects the first column
func (v *Viewer) LineStart() {
	v.Col = 0
	v.vp.EnsureColVisible(0)
}

// LineEnd selects the last column
func (v *Viewer) LineEnd() {
	v.Col = grid.Clamp(len(v.rs.Columns)-1, len(v.rs.Columns))
	v.vp.EnsureColVisible(v.Col)
}

// GotoTop selects the first row
func (v *Viewer) GotoTop() {
	v.Row = 0
	v.vp.EnsureRowVisible(0)
}

// GotoBottom selects the last row
func (v *Viewer) GotoBottom() {
	v.Row = grid.Clamp(v.RowCount()-1, v.RowCount())
	v.vp.EnsureRowVisible(v.Row)
}

// SetVisible resizes the grid window
func (v *Viewer) SetVisible(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	v.vp.VisibleRows = rows
	v.vp.VisibleCols = cols
	v.vp.EnsureRowVisible(v.Row)
	v.vp.EnsureColVisible(v.Col)
}

// Window returns the visible row and column bounds
func (v *Viewer) Window() (rowLo, rowHi, colLo, colHi int) {
	rowLo = v.vp.RowOffset
	rowHi = rowLo + v.vp.VisibleRows
	if n := v.RowCount(); rowHi > n {
		rowHi = n
	}
	colLo = v.vp.ColOffset
	colHi = colLo + v.vp.VisibleCols
	if n := len(v.rs.Columns); colHi > n {
		colHi = n
	}
	return
}

// Editable reports whether the grid can accept edits
func (v *Viewer) Editable() bool {
	return v.rs.Editable()
}

// Editing reports whether a cell edit is in progress
func (v *Viewer) Editing() bool { return v.editing }

// Input exposes the cell edit field for rendering and key forwarding
func (v *Viewer) Input() *textinput.Model { return &v.input }

// StartEdit opens the cell input prefilled with the current value. It fails
// when the rows have no target table.
func (v *Viewer) StartEdit() bool {
	if !v.Editable() || v.RowCount() == 0 || len(v.rs.Columns) == 0 {
		return false
	}
	cur := v.DisplayValue(v.Row, v.Col)
	text := ""
	if !cur.IsNull() {
		text = cur.String()
	}
	v.input.SetValue(text)
	v.input.CursorEnd()
	v.input.Focus()
	v.editing = true
	return true
}

// CommitCellEdit parses the typed text and records it in the overlay
func (v *Viewer) CommitCellEdit() {
	if !v.editing {
		return
	}
	hint := value.KindText
	if v.IsInsertRow(v.Row) {
		// shape hint comes from the fetched rows when there are any
		if len(v.rs.Rows) > 0 {
			hint = v.rs.At(0, v.Col).Kind()
		}
	} else {
		hint = v.rs.At(v.Row, v.Col).Kind()
	}
	val := value.ParseInput(v.input.Value(), hint)

	if v.IsInsertRow(v.Row) {
		v.buf.SetInsertCell(v.insertIndex(v.Row), v.Col, val)
	} else {
		v.buf.SetCell(v.Row, v.Col, val)
	}
	v.input.Blur()
	v.editing = false
}

// CancelEdit drops the cell input without recording anything
func (v *Viewer) CancelEdit() {
	v.input.Blur()
	v.editing = false
}

// ToggleDelete toggles the deletion mark on n fetched rows starting at the
// cursor. New rows are not marked; deleting a pending insert is out of scope
// for the overlay.
func (v *Viewer) ToggleDelete(n int) bool {
	if !v.Editable() || v.IsInsertRow(v.Row) || len(v.rs.Rows) == 0 {
		return false
	}
	end := v.Row + n
	if end > len(v.rs.Rows) {
		end = len(v.rs.Rows)
	}
	for r := v.Row; r < end; r++ {
		v.buf.MarkDelete(r)
	}
	return true
}

// AddRow prepends a pending new row and moves the cursor onto it
func (v *Viewer) AddRow() bool {
	if !v.Editable() {
		return false
	}
	idx := v.buf.AddInsertRow(len(v.rs.Columns))
	v.Row = len(v.rs.Rows) + idx
	v.Col = 0
	v.vp.EnsureRowVisible(v.Row)
	v.vp.EnsureColVisible(0)
	return true
}

// YankRow returns the cursor row's display values, tab separated
func (v *Viewer) YankRow() string {
	if v.RowCount() == 0 {
		return ""
	}
	parts := make([]string, len(v.rs.Columns))
	for c := range v.rs.Columns {
		parts[c] = v.DisplayValue(v.Row, c).String()
	}
	return strings.Join(parts, "\t")
}

// YankCell returns the cursor cell's display value
func (v *Viewer) YankCell() string {
	if v.RowCount() == 0 || len(v.rs.Columns) == 0 {
		return ""
	}
	return v.DisplayValue(v.Row, v.Col).String()
}

// StartVisual anchors a row selection at the cursor
func (v *Viewer) StartVisual() {
	v.visual = true
	v.anchor = v.Row
}

// EndVisual drops the selection
func (v *Viewer) EndVisual() { v.visual = false }

// Visual reports whether a row selection is active
func (v *Viewer) Visual() bool { return v.visual }

// SelectionRange returns the selected row range, inclusive
func (v *Viewer) SelectionRange() (lo, hi int) {
	lo, hi = v.anchor, v.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// YankSelection returns the selected rows, one per line
func (v *Viewer) YankSelection() string {
	lo, hi := v.SelectionRange()
	var lines []string
	for r := lo; r <= hi && r < v.RowCount(); r++ {
		parts := make([]string, len(v.rs.Columns))
		for c := range v.rs.Columns {
			parts[c] = v.DisplayValue(r, c).String()
		}
		lines = append(lines, strings.Join(parts, "\t"))
	}
	v.visual = false
	return strings.Join(lines, "\n")
}

// DeleteSelection marks every selected fetched row for deletion
func (v *Viewer) DeleteSelection() int {
	if !v.Editable() {
		v.visual = false
		return 0
	}
	lo, hi := v.SelectionRange()
	marked := 0
	for r := lo; r <= hi && r < len(v.rs.Rows); r++ {
		if !v.buf.Deleted(r) {
			v.buf.MarkDelete(r)
			marked++
		}
	}
	v.visual = false
	return marked
}

// PrimaryKeyColumns returns the table's key column names
func (v *Viewer) PrimaryKeyColumns() []string {
	var pk []string
	for _, c := range v.cols {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

// Plan materializes the pending edits into a commit plan
func (v *Viewer) Plan(kind db.Kind) ([]grid.CommitOp, error) {
	return v.buf.Plan(v.rs, kind, v.PrimaryKeyColumns())
}
