// internal/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriver implements Driver for SQLite files
type SQLiteDriver struct {
	db   *sql.DB
	path string
}

// Connect opens the database file. The file must already exist; a modal
// client should not silently create databases on a typo'd path.
func (d *SQLiteDriver) Connect(params ConnectParams) error {
	path := strings.TrimPrefix(params.Path, "sqlite://")
	if path == "" {
		return &ConnectError{Class: ConnectBadDSN, Underlying: fmt.Errorf("empty sqlite path")}
	}

	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if _, err := os.Stat(path); err != nil {
			return WrapConnectionError(err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return WrapConnectionError(err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma foreign_keys: %w", err))
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 10000"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma busy_timeout: %w", err))
	}

	d.db = db
	d.path = path
	return nil
}

// Close closes the database handle
func (d *SQLiteDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Ping checks if the database is reachable
func (d *SQLiteDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return WrapConnectionError(fmt.Errorf("not connected"))
	}
	return d.db.PingContext(ctx)
}

// Kind returns the backend kind
func (d *SQLiteDriver) Kind() Kind {
	return SQLite
}

// ListSchemas returns the single implicit schema
func (d *SQLiteDriver) ListSchemas(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, WrapConnectionError(fmt.Errorf("not connected"))
	}
	return []string{"main"}, nil
}

// UseSchema is a no-op for the implicit schema and an error otherwise
func (d *SQLiteDriver) UseSchema(ctx context.Context, name string) error {
	if name != "main" {
		return &SchemaSwitchError{Schema: name, Underlying: fmt.Errorf("sqlite has a single schema")}
	}
	return nil
}

// ClearSchemaContext is a no-op; the file is the schema
func (d *SQLiteDriver) ClearSchemaContext(ctx context.Context) error {
	return nil
}

// ListTables returns user tables in sqlite_master order
func (d *SQLiteDriver) ListTables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapQueryError(err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableColumns returns column metadata via table_info
func (d *SQLiteDriver) TableColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(SQLite, table)))
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull, pk int
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dflt, &pk); err != nil {
			return nil, WrapQueryError(err)
		}

		def := ""
		if dflt != nil {
			def = fmt.Sprintf("%v", dflt)
		}
		columns = append(columns, Column{
			Name:       name,
			Type:       dataType,
			Nullable:   notNull == 0,
			Default:    def,
			PrimaryKey: pk > 0,
		})
	}
	return columns, rows.Err()
}

// FetchRows returns up to limit rows from a table in backend column order
func (d *SQLiteDriver) FetchRows(ctx context.Context, table string, limit int) (*Result, error) {
	return fetchTableRows(ctx, d.db, QuoteIdent(SQLite, table), limit)
}

// Execute runs one statement with bound args
func (d *SQLiteDriver) Execute(ctx context.Context, stmt string, args ...interface{}) (*Result, error) {
	if d.db == nil {
		return nil, WrapConnectionError(fmt.Errorf("not connected"))
	}
	return executeStatement(ctx, d.db, stmt, args...)
}
