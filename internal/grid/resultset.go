// internal/grid/resultset.go

// Package grid holds a fetched row set and the sparse overlay of pending
// edits on top of it. Fetched rows are never mutated in place; commits
// materialize the overlay into parameterized statements and the set is
// replaced wholesale on refresh.
package grid

import (
	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/value"
)

// ResultSet is an immutable fetched row set
type ResultSet struct {
	Columns []string
	Rows    [][]value.Value

	// Table is set when the rows came from a bounded table fetch; ad hoc
	// query results leave it empty and cannot be edited.
	Table string

	// Truncated reports the fetch hit its row limit
	Truncated bool
}

// NewResultSet wraps a backend result
func NewResultSet(res *db.Result) *ResultSet {
	if res == nil {
		return &ResultSet{}
	}
	return &ResultSet{Columns: res.Columns, Rows: res.Rows}
}

// NewTableResultSet wraps a bounded table fetch, keeping the table identity
// writes need.
func NewTableResultSet(res *db.Result, table string, limit int) *ResultSet {
	rs := NewResultSet(res)
	rs.Table = table
	rs.Truncated = limit > 0 && len(rs.Rows) >= limit
	return rs
}

// Editable reports whether the rows have a target table for writes
func (rs *ResultSet) Editable() bool {
	return rs != nil && rs.Table != ""
}

// At returns the fetched value at (row, col)
func (rs *ResultSet) At(row, col int) value.Value {
	if rs == nil || row < 0 || row >= len(rs.Rows) {
		return value.Null
	}
	r := rs.Rows[row]
	if col < 0 || col >= len(r) {
		return value.Null
	}
	return r[col]
}

// ColumnIndex finds a column by name, -1 when absent
func (rs *ResultSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
