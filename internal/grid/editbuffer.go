// internal/grid/editbuffer.go
package grid

import (
	"fmt"
	"sort"

	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/value"
)

// CellRef addresses one cell of the fetched rows
type CellRef struct {
	Row, Col int
}

// EditBuffer overlays pending edits on a ResultSet. Existing rows collect
// dirty cells, new rows live in their own index space, and deletions are a
// marked set. Nothing touches the fetched rows themselves.
type EditBuffer struct {
	dirty   map[CellRef]value.Value
	inserts [][]value.Value // newest first, one full column vector each
	deletes map[int]struct{}
}

// NewEditBuffer creates an empty overlay
func NewEditBuffer() *EditBuffer {
	return &EditBuffer{
		dirty:   make(map[CellRef]value.Value),
		deletes: make(map[int]struct{}),
	}
}

// SetCell records a replacement value for an existing row's cell
func (b *EditBuffer) SetCell(row, col int, v value.Value) {
	b.dirty[CellRef{row, col}] = v
}

// Dirty reports whether a cell has an uncommitted edit
func (b *EditBuffer) Dirty(row, col int) bool {
	_, ok := b.dirty[CellRef{row, col}]
	return ok
}

// ValueAt resolves overlay-then-base for an existing row's cell
func (b *EditBuffer) ValueAt(rs *ResultSet, row, col int) value.Value {
	if v, ok := b.dirty[CellRef{row, col}]; ok {
		return v
	}
	return rs.At(row, col)
}

// AddInsertRow prepends a blank new row (all NULL, backend defaults apply on
// commit) and returns its index in the insert space. Prepending shifts the
// indexes of earlier pending rows by one.
func (b *EditBuffer) AddInsertRow(columns int) int {
	row := make([]value.Value, columns)
	for i := range row {
		row[i] = value.Null
	}
	b.inserts = append([][]value.Value{row}, b.inserts...)
	return 0
}

// SetInsertCell sets a column of a pending new row
func (b *EditBuffer) SetInsertCell(insertRow, col int, v value.Value) {
	if insertRow < 0 || insertRow >= len(b.inserts) {
		return
	}
	row := b.inserts[insertRow]
	if col < 0 || col >= len(row) {
		return
	}
	row[col] = v
}

// InsertRows returns the pending new rows, newest first
func (b *EditBuffer) InsertRows() [][]value.Value {
	return b.inserts
}

// MarkDelete toggles an existing row's deletion mark
func (b *EditBuffer) MarkDelete(row int) {
	if _, ok := b.deletes[row]; ok {
		delete(b.deletes, row)
		return
	}
	b.deletes[row] = struct{}{}
}

// Deleted reports whether a row is marked for deletion
func (b *EditBuffer) Deleted(row int) bool {
	_, ok := b.deletes[row]
	return ok
}

// HasChanges reports whether anything would be written on commit
func (b *EditBuffer) HasChanges() bool {
	return len(b.dirty) > 0 || len(b.inserts) > 0 || len(b.deletes) > 0
}

// Clear drops every pending edit. Called only after a fully successful
// commit, so a failed commit loses nothing.
func (b *EditBuffer) Clear() {
	b.dirty = make(map[CellRef]value.Value)
	b.inserts = nil
	b.deletes = make(map[int]struct{})
}

// CommitOp is one statement of a commit plan with the edit it came from
type CommitOp struct {
	Stmt db.Statement

	// Row is the existing-row index for updates/deletes, or the creation
	// index for inserts, for failure reporting.
	Row    int
	Insert bool
}

// Plan materializes the overlay into parameterized statements: one UPDATE
// per dirty existing row keyed by the primary key's original values (all
// original values when the table has no primary key), one INSERT per new row
// in creation order, then one DELETE per marked row. The buffer itself is
// not changed.
func (b *EditBuffer) Plan(rs *ResultSet, kind db.Kind, pkCols []string) ([]CommitOp, error) {
	if !rs.Editable() {
		return nil, fmt.Errorf("result set has no target table")
	}

	keyFor := func(row int) ([]db.ColumnValue, error) {
		if row < 0 || row >= len(rs.Rows) {
			return nil, fmt.Errorf("row %d out of range", row)
		}
		var keys []db.ColumnValue
		if len(pkCols) > 0 {
			for _, name := range pkCols {
				idx := rs.ColumnIndex(name)
				if idx < 0 {
					return nil, fmt.Errorf("key column %q not in result set", name)
				}
				keys = append(keys, db.ColumnValue{Column: name, Value: rs.At(row, idx)})
			}
			return keys, nil
		}
		// no primary key: fall back to full-row equality on original values
		for i, name := range rs.Columns {
			keys = append(keys, db.ColumnValue{Column: name, Value: rs.At(row, i)})
		}
		return keys, nil
	}

	var ops []CommitOp

	// group dirty cells by row, rows in ascending order
	byRow := make(map[int][]db.ColumnValue)
	for ref, v := range b.dirty {
		if b.Deleted(ref.Row) {
			continue // the row is going away anyway
		}
		if ref.Col < 0 || ref.Col >= len(rs.Columns) {
			return nil, fmt.Errorf("column %d out of range", ref.Col)
		}
		byRow[ref.Row] = append(byRow[ref.Row], db.ColumnValue{
			Column: rs.Columns[ref.Col],
			Value:  v,
		})
	}
	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	for _, row := range rows {
		sets := byRow[row]
		sort.Slice(sets, func(i, j int) bool {
			return rs.ColumnIndex(sets[i].Column) < rs.ColumnIndex(sets[j].Column)
		})
		keys, err := keyFor(row)
		if err != nil {
			return nil, err
		}
		stmt, err := db.BuildUpdate(kind, rs.Table, sets, keys)
		if err != nil {
			return nil, err
		}
		ops = append(ops, CommitOp{Stmt: stmt, Row: row})
	}

	// the list is newest first, so walk it backwards for creation order
	for i := len(b.inserts) - 1; i >= 0; i-- {
		newRow := b.inserts[i]
		created := len(b.inserts) - 1 - i
		cvs := make([]db.ColumnValue, len(rs.Columns))
		for c, name := range rs.Columns {
			v := value.Null
			if c < len(newRow) {
				v = newRow[c]
			}
			cvs[c] = db.ColumnValue{Column: name, Value: v}
		}
		stmt, err := db.BuildInsert(kind, rs.Table, cvs)
		if err != nil {
			return nil, fmt.Errorf("new row %d: %w", created+1, err)
		}
		ops = append(ops, CommitOp{Stmt: stmt, Row: created, Insert: true})
	}

	delRows := make([]int, 0, len(b.deletes))
	for row := range b.deletes {
		delRows = append(delRows, row)
	}
	sort.Ints(delRows)
	for _, row := range delRows {
		keys, err := keyFor(row)
		if err != nil {
			return nil, err
		}
		stmt, err := db.BuildDelete(kind, rs.Table, keys)
		if err != nil {
			return nil, err
		}
		ops = append(ops, CommitOp{Stmt: stmt, Row: row})
	}

	return ops, nil
}
