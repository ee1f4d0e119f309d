// internal/db/mysql.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// systemSchemas are hidden when listing databases
var systemSchemas = map[string]bool{
	"information_schema": true,
	"performance_schema": true,
	"mysql":              true,
	"sys":                true,
}

// MySQLDriver implements Driver for MySQL and MariaDB (same wire protocol)
type MySQLDriver struct {
	db      *sql.DB
	kind    Kind
	schema  string // active schema, empty until UseSchema
	tunnel  *SSHTunnel
	netName string // registered network name for SSH dialing
}

// Connect establishes the connection. The database segment of the profile is
// optional; without it the connection starts with no schema context and the
// browser lists databases first.
func (d *MySQLDriver) Connect(params ConnectParams) error {
	protocol := "tcp"
	address := fmt.Sprintf("%s:%d", params.Host, params.Port)

	if params.SSH != nil && params.SSH.Host != "" {
		tunnel, err := NewSSHTunnel(params.SSH)
		if err != nil {
			return WrapConnectionError(fmt.Errorf("ssh tunnel: %w", err))
		}
		d.tunnel = tunnel

		d.netName = fmt.Sprintf("mysql+ssh+%d", time.Now().UnixNano())
		mysql.RegisterDialContext(d.netName, func(ctx context.Context, addr string) (net.Conn, error) {
			return tunnel.Dial("tcp", addr)
		})
		protocol = d.netName
	}

	cfg := mysql.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.Net = protocol
	cfg.Addr = address
	cfg.DBName = params.Database
	cfg.Timeout = 10 * time.Second
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		d.Close()
		return WrapConnectionError(err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// sql.Open is lazy, verify now so a bad DSN fails at connect time
	if err := db.Ping(); err != nil {
		db.Close()
		d.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	d.schema = params.Database
	return nil
}

// Close closes the connection and any SSH tunnel
func (d *MySQLDriver) Close() error {
	var dbErr error
	if d.db != nil {
		dbErr = d.db.Close()
	}
	if d.tunnel != nil {
		if err := d.tunnel.Close(); err != nil {
			if dbErr != nil {
				return fmt.Errorf("db close: %v, tunnel close: %w", dbErr, err)
			}
			return err
		}
	}
	return dbErr
}

// Ping checks if the server is reachable
func (d *MySQLDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return WrapConnectionError(fmt.Errorf("not connected"))
	}
	return d.db.PingContext(ctx)
}

// Kind returns the backend kind, MySQL or MariaDB
func (d *MySQLDriver) Kind() Kind {
	return d.kind
}

// ListSchemas lists user databases
func (d *MySQLDriver) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapQueryError(err)
		}
		if !systemSchemas[name] {
			schemas = append(schemas, name)
		}
	}
	return schemas, rows.Err()
}

// UseSchema switches the active schema and verifies the switch took effect.
// On failure the prior context is left unchanged.
func (d *MySQLDriver) UseSchema(ctx context.Context, name string) error {
	if _, err := d.db.ExecContext(ctx, "USE "+QuoteIdent(d.kind, name)); err != nil {
		return &SchemaSwitchError{Schema: name, Underlying: err}
	}

	var current sql.NullString
	if err := d.db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&current); err != nil {
		return &SchemaSwitchError{Schema: name, Underlying: err}
	}
	if !current.Valid || current.String != name {
		return &SchemaSwitchError{Schema: name, Underlying: fmt.Errorf("server kept schema %q", current.String)}
	}

	d.schema = name
	return nil
}

// ClearSchemaContext resets to no specific active schema so the connection
// can switch databases cleanly.
func (d *MySQLDriver) ClearSchemaContext(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, "USE information_schema"); err != nil {
		return WrapQueryError(err)
	}
	d.schema = ""
	return nil
}

// ListTables lists tables of the active schema
func (d *MySQLDriver) ListTables(ctx context.Context) ([]string, error) {
	if d.schema == "" {
		return nil, WrapQueryError(fmt.Errorf("no database selected"))
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name",
		d.schema)
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

// TableColumns returns column metadata for a table in the active schema
func (d *MySQLDriver) TableColumns(ctx context.Context, table string) ([]Column, error) {
	if d.schema == "" {
		return nil, WrapQueryError(fmt.Errorf("no database selected"))
	}
	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			IS_NULLABLE = 'YES',
			IFNULL(COLUMN_DEFAULT, ''),
			COLUMN_KEY = 'PRI'
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = ? AND TABLE_SCHEMA = ?
		ORDER BY ORDINAL_POSITION`

	rows, err := d.db.QueryContext(ctx, query, table, d.schema)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable, &col.Default, &col.PrimaryKey); err != nil {
			return nil, WrapQueryError(err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// FetchRows returns up to limit rows, qualifying the table with the active
// schema so a later context switch cannot redirect the read.
func (d *MySQLDriver) FetchRows(ctx context.Context, table string, limit int) (*Result, error) {
	if d.schema == "" {
		return nil, WrapQueryError(fmt.Errorf("no database selected"))
	}
	qualified := QuoteIdent(d.kind, d.schema) + "." + QuoteIdent(d.kind, table)
	return fetchTableRows(ctx, d.db, qualified, limit)
}

// Execute runs one statement with bound args
func (d *MySQLDriver) Execute(ctx context.Context, stmt string, args ...interface{}) (*Result, error) {
	if d.db == nil {
		return nil, WrapConnectionError(fmt.Errorf("not connected"))
	}
	return executeStatement(ctx, d.db, stmt, args...)
}
