// internal/grid/editbuffer_test.go
package grid

import (
	"strings"
	"testing"

	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/value"
)

func usersResultSet() *ResultSet {
	return &ResultSet{
		Table:   "users",
		Columns: []string{"id", "name"},
		Rows: [][]value.Value{
			{value.Int(1), value.Text("alice")},
			{value.Int(2), value.Text("bob")},
		},
	}
}

func TestDirtyCellProducesOneUpdateKeyedByPK(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()
	b.SetCell(0, 1, value.Text("Ann"))

	ops, err := b.Plan(rs, db.SQLite, []string{"id"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want exactly 1 update", len(ops))
	}

	stmt := ops[0].Stmt
	want := `UPDATE "users" SET "name" = ? WHERE "id" = ?`
	if stmt.SQL != want {
		t.Errorf("sql = %q, want %q", stmt.SQL, want)
	}
	if stmt.Args[0] != "Ann" || stmt.Args[1] != int64(1) {
		t.Errorf("args = %v, want [Ann 1]", stmt.Args)
	}
	if ops[0].Row != 0 {
		t.Errorf("op row = %d", ops[0].Row)
	}
}

func TestDirtyStateSurvivesUntilClear(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()
	b.SetCell(0, 1, value.Text("Ann"))

	if !b.Dirty(0, 1) {
		t.Fatal("cell should be dirty before commit")
	}

	// a failed commit leaves the buffer untouched
	if _, err := b.Plan(rs, db.SQLite, []string{"id"}); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !b.Dirty(0, 1) {
		t.Fatal("planning must not clear the buffer")
	}

	// success clears it
	b.Clear()
	if b.Dirty(0, 1) || b.HasChanges() {
		t.Fatal("buffer should be empty after Clear")
	}
}

func TestMultipleCellsSameRowGroupIntoOneUpdate(t *testing.T) {
	rs := &ResultSet{
		Table:   "t",
		Columns: []string{"id", "a", "b"},
		Rows:    [][]value.Value{{value.Int(1), value.Int(10), value.Int(20)}},
	}
	b := NewEditBuffer()
	b.SetCell(0, 1, value.Int(11))
	b.SetCell(0, 2, value.Int(22))

	ops, err := b.Plan(rs, db.SQLite, []string{"id"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1 grouped update", len(ops))
	}
	want := `UPDATE "t" SET "a" = ?, "b" = ? WHERE "id" = ?`
	if ops[0].Stmt.SQL != want {
		t.Errorf("sql = %q, want %q", ops[0].Stmt.SQL, want)
	}
}

func TestInsertRowsKeepCreationOrder(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()

	first := b.AddInsertRow(len(rs.Columns))
	b.SetInsertCell(first, 1, value.Text("carol"))
	second := b.AddInsertRow(len(rs.Columns))
	b.SetInsertCell(second, 1, value.Text("dave"))

	// each new row is prepended, so the newest is listed first
	if got := b.InsertRows()[0][1].String(); got != "dave" {
		t.Fatalf("newest row lists %q first, want dave", got)
	}
	if got := b.InsertRows()[1][1].String(); got != "carol" {
		t.Fatalf("older row = %q, want carol", got)
	}

	ops, err := b.Plan(rs, db.SQLite, []string{"id"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want one insert per new row", len(ops))
	}
	for i, who := range []string{"carol", "dave"} {
		if !ops[i].Insert {
			t.Errorf("op %d is not an insert", i)
		}
		if ops[i].Stmt.Args[0] != who {
			t.Errorf("insert %d carries %v, want %s first", i, ops[i].Stmt.Args, who)
		}
	}
}

func TestPlanWithoutPKFallsBackToFullRow(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()
	b.SetCell(1, 1, value.Text("bobby"))

	ops, err := b.Plan(rs, db.SQLite, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	sql := ops[0].Stmt.SQL
	if !strings.Contains(sql, `WHERE "id" = ? AND "name" = ?`) {
		t.Errorf("fallback key should match all original columns, got %q", sql)
	}
	// WHERE binds the ORIGINAL value, not the edited one
	args := ops[0].Stmt.Args
	if args[len(args)-1] != "bob" {
		t.Errorf("where binds %v, want original name bob", args[len(args)-1])
	}
}

func TestDeletedRowSkipsItsDirtyCells(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()
	b.SetCell(0, 1, value.Text("ignored"))
	b.MarkDelete(0)

	ops, err := b.Plan(rs, db.SQLite, []string{"id"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want only the delete", len(ops))
	}
	if !strings.HasPrefix(ops[0].Stmt.SQL, "DELETE FROM") {
		t.Errorf("op = %q", ops[0].Stmt.SQL)
	}

	// marking again toggles the deletion off
	b.MarkDelete(0)
	ops, _ = b.Plan(rs, db.SQLite, []string{"id"})
	if len(ops) != 1 || !strings.HasPrefix(ops[0].Stmt.SQL, "UPDATE") {
		t.Errorf("after toggle: %v", ops)
	}
}

func TestPlanRejectsAdHocResults(t *testing.T) {
	rs := &ResultSet{Columns: []string{"n"}, Rows: [][]value.Value{{value.Int(1)}}}
	b := NewEditBuffer()
	b.SetCell(0, 0, value.Int(2))
	if _, err := b.Plan(rs, db.SQLite, nil); err == nil {
		t.Fatal("expected error for result set without a table")
	}
}

func TestValueAtPrefersOverlay(t *testing.T) {
	rs := usersResultSet()
	b := NewEditBuffer()
	if got := b.ValueAt(rs, 0, 1).String(); got != "alice" {
		t.Fatalf("base value = %q", got)
	}
	b.SetCell(0, 1, value.Text("Ann"))
	if got := b.ValueAt(rs, 0, 1).String(); got != "Ann" {
		t.Fatalf("overlay value = %q", got)
	}
	if got := rs.At(0, 1).String(); got != "alice" {
		t.Fatalf("fetched row mutated to %q", got)
	}
}
