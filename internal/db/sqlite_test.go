// internal/db/sqlite_test.go
package db

import (
	"context"
	"errors"
	"testing"

	"github.com/hqnguyen/dbvim/internal/value"
)

func openMemDB(t *testing.T) *SQLiteDriver {
	t.Helper()
	d := &SQLiteDriver{}
	if err := d.Connect(ConnectParams{Path: ":memory:"}); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSQLiteConnectMissingFile(t *testing.T) {
	d := &SQLiteDriver{}
	err := d.Connect(ConnectParams{Path: "/no/such/dir/missing.db"})
	if err == nil {
		t.Fatal("expected connect error for missing file")
	}
	var ce *ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectError, got %T", err)
	}
	if ce.Class != ConnectNotFound {
		t.Errorf("class = %v, want not found", ce.Class)
	}
}

func TestSQLiteSchemaAndTables(t *testing.T) {
	d := openMemDB(t)
	ctx := context.Background()

	schemas, err := d.ListSchemas(ctx)
	if err != nil {
		t.Fatalf("list schemas: %v", err)
	}
	if len(schemas) != 1 || schemas[0] != "main" {
		t.Fatalf("schemas = %v, want [main]", schemas)
	}

	if err := d.UseSchema(ctx, "other"); err == nil {
		t.Fatal("expected error switching to unknown schema")
	}

	if _, err := d.Execute(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	tables, err := d.ListTables(ctx)
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	if len(tables) != 1 || tables[0] != "users" {
		t.Fatalf("tables = %v, want [users]", tables)
	}
}

func TestSQLiteTableColumnsPrimaryKey(t *testing.T) {
	d := openMemDB(t)
	ctx := context.Background()

	if _, err := d.Execute(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	cols, err := d.TableColumns(ctx, "users")
	if err != nil {
		t.Fatalf("table columns: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}
	if !cols[0].PrimaryKey || cols[0].Name != "id" {
		t.Errorf("column 0 = %+v, want primary key id", cols[0])
	}
	if cols[1].Nullable {
		t.Errorf("name should be NOT NULL")
	}
}

func TestSQLiteFetchRowsBoundedAndOrdered(t *testing.T) {
	d := openMemDB(t)
	ctx := context.Background()

	mustExec(t, d, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	mustExec(t, d, "INSERT INTO users (name) VALUES ('alice')")
	mustExec(t, d, "INSERT INTO users (name) VALUES ('bob')")
	mustExec(t, d, "INSERT INTO users (name) VALUES ('carol')")

	res, err := d.FetchRows(ctx, "users", 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want limit of 2", len(res.Rows))
	}
	if res.Columns[0] != "id" || res.Columns[1] != "name" {
		t.Fatalf("column order = %v, want [id name]", res.Columns)
	}
	if res.Rows[0][1].String() != "alice" {
		t.Errorf("row 0 name = %q", res.Rows[0][1].String())
	}
}

func TestSQLiteExecuteBoundArgs(t *testing.T) {
	d := openMemDB(t)
	ctx := context.Background()

	mustExec(t, d, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")

	res, err := d.Execute(ctx, "INSERT INTO notes (body) VALUES (?)", "it's quoted")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if res.AffectedRows != 1 {
		t.Fatalf("affected = %d, want 1", res.AffectedRows)
	}

	// NULL binds as nil, not as the text "NULL"
	if _, err := d.Execute(ctx, "INSERT INTO notes (body) VALUES (?)", nil); err != nil {
		t.Fatalf("insert null: %v", err)
	}
	out, err := d.Execute(ctx, "SELECT body FROM notes ORDER BY id")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Rows[0][0].String() != "it's quoted" {
		t.Errorf("row 0 = %q", out.Rows[0][0].String())
	}
	if !out.Rows[1][0].IsNull() {
		t.Errorf("row 1 should be NULL, got %v", out.Rows[1][0])
	}
}

func TestSQLiteExecuteBadStatementSurfacesBackendError(t *testing.T) {
	d := openMemDB(t)
	_, err := d.Execute(context.Background(), "SELEC nonsense")
	if err == nil {
		t.Fatal("expected query error")
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %T", err)
	}
}

func TestSQLiteUpdateRoundTrip(t *testing.T) {
	d := openMemDB(t)
	ctx := context.Background()

	mustExec(t, d, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	mustExec(t, d, "INSERT INTO users (name) VALUES ('alice')")
	mustExec(t, d, "INSERT INTO users (name) VALUES ('bob')")

	stmt, err := BuildUpdate(SQLite, "users",
		[]ColumnValue{{Column: "name", Value: value.Text("Ann")}},
		[]ColumnValue{{Column: "id", Value: value.Int(1)}})
	if err != nil {
		t.Fatalf("build update: %v", err)
	}
	res, err := d.Execute(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		t.Fatalf("execute update: %v", err)
	}
	if res.AffectedRows != 1 {
		t.Fatalf("affected = %d, want exactly 1", res.AffectedRows)
	}

	out, err := d.FetchRows(ctx, "users", 0)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if out.Rows[0][1].String() != "Ann" {
		t.Errorf("row 0 name = %q, want Ann", out.Rows[0][1].String())
	}
	if out.Rows[1][1].String() != "bob" {
		t.Errorf("row 1 name = %q, want bob untouched", out.Rows[1][1].String())
	}
}

func mustExec(t *testing.T, d Driver, stmt string) {
	t.Helper()
	if _, err := d.Execute(context.Background(), stmt); err != nil {
		t.Fatalf("%s: %v", stmt, err)
	}
}
