// internal/db/driver.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hqnguyen/dbvim/internal/value"
)

// Kind identifies a supported backend
type Kind string

const (
	SQLite  Kind = "sqlite"
	MySQL   Kind = "mysql"
	MariaDB Kind = "mariadb"
)

// DefaultFetchLimit caps table fetches when no explicit limit is given
const DefaultFetchLimit = 1000

// Column holds table column metadata
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	Default    string
	PrimaryKey bool
}

// ConnectParams holds backend connection details. SQLite uses Path only;
// MySQL/MariaDB use the network fields.
type ConnectParams struct {
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSH      *SSHConfig
}

// Driver is the capability set implemented per backend
type Driver interface {
	Connect(params ConnectParams) error
	Close() error
	Ping(ctx context.Context) error
	Kind() Kind

	ListSchemas(ctx context.Context) ([]string, error)
	UseSchema(ctx context.Context, name string) error
	ClearSchemaContext(ctx context.Context) error
	ListTables(ctx context.Context) ([]string, error)
	TableColumns(ctx context.Context, table string) ([]Column, error)

	FetchRows(ctx context.Context, table string, limit int) (*Result, error)
	Execute(ctx context.Context, stmt string, args ...interface{}) (*Result, error)
}

// Result is the outcome of a statement: rows for reads, an affected-row
// count for writes.
type Result struct {
	Columns      []string
	Rows         [][]value.Value
	Duration     time.Duration
	RowCount     int
	IsSelect     bool
	AffectedRows int64
}

// NewDriver creates a driver instance for a backend kind. MariaDB speaks the
// MySQL wire protocol and shares its driver.
func NewDriver(kind Kind) (Driver, error) {
	switch kind {
	case SQLite:
		return &SQLiteDriver{}, nil
	case MySQL:
		return &MySQLDriver{kind: MySQL}, nil
	case MariaDB:
		return &MySQLDriver{kind: MariaDB}, nil
	default:
		return nil, fmt.Errorf("unknown backend kind: %s", kind)
	}
}

// executeStatement runs one statement and collects its outcome
func executeStatement(ctx context.Context, db *sql.DB, stmt string, args ...interface{}) (*Result, error) {
	start := time.Now()
	if isReadStatement(stmt) {
		return executeSelect(ctx, db, stmt, args, start)
	}
	return executeWrite(ctx, db, stmt, args, start)
}

func isReadStatement(stmt string) bool {
	trimmed := strings.TrimSpace(strings.ToUpper(stmt))
	for _, prefix := range []string{"SELECT", "WITH", "EXPLAIN", "DESCRIBE", "SHOW", "PRAGMA"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func executeSelect(ctx context.Context, db *sql.DB, stmt string, args []interface{}, start time.Time) (*Result, error) {
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, WrapQueryError(err)
	}

	var results [][]value.Value
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, WrapQueryError(err)
		}

		row := make([]value.Value, len(columns))
		for i, v := range raw {
			row[i] = value.FromNative(v)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}

	return &Result{
		Columns:  columns,
		Rows:     results,
		Duration: time.Since(start),
		RowCount: len(results),
		IsSelect: true,
	}, nil
}

func executeWrite(ctx context.Context, db *sql.DB, stmt string, args []interface{}, start time.Time) (*Result, error) {
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	affected, _ := res.RowsAffected()
	return &Result{
		Duration:     time.Since(start),
		IsSelect:     false,
		AffectedRows: affected,
	}, nil
}

// fetchTableRows issues the bounded default fetch shared by the backends
func fetchTableRows(ctx context.Context, db *sql.DB, quotedTable string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return executeStatement(ctx, db, fmt.Sprintf("SELECT * FROM %s LIMIT %d", quotedTable, limit))
}
