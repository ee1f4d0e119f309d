// internal/db/statement.go
package db

import (
	"fmt"
	"strings"

	"github.com/hqnguyen/dbvim/internal/value"
)

// Statement is a parameterized statement ready for Execute. Values are
// always bound, never interpolated into the SQL text.
type Statement struct {
	SQL  string
	Args []interface{}
}

// ColumnValue pairs a column name with a value for SET/VALUES clauses
type ColumnValue struct {
	Column string
	Value  value.Value
}

// QuoteIdent quotes an identifier for a backend's dialect
func QuoteIdent(kind Kind, ident string) string {
	switch kind {
	case MySQL, MariaDB:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// BuildUpdate builds one parameterized UPDATE for a single row. The WHERE
// clause is keyed by the key columns' original values; NULL keys compare
// with IS NULL since ? = NULL never matches.
func BuildUpdate(kind Kind, table string, sets []ColumnValue, keys []ColumnValue) (Statement, error) {
	if table == "" {
		return Statement{}, fmt.Errorf("update: empty table name")
	}
	if len(sets) == 0 {
		return Statement{}, fmt.Errorf("update: no columns to set")
	}
	if len(keys) == 0 {
		return Statement{}, fmt.Errorf("update: no key columns for row identity")
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString("UPDATE ")
	sb.WriteString(QuoteIdent(kind, table))
	sb.WriteString(" SET ")
	for i, cv := range sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(QuoteIdent(kind, cv.Column))
		sb.WriteString(" = ?")
		args = append(args, cv.Value.Native())
	}

	sb.WriteString(" WHERE ")
	for i, cv := range keys {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(QuoteIdent(kind, cv.Column))
		if cv.Value.IsNull() {
			sb.WriteString(" IS NULL")
			continue
		}
		sb.WriteString(" = ?")
		args = append(args, cv.Value.Native())
	}

	return Statement{SQL: sb.String(), Args: args}, nil
}

// BuildInsert builds one parameterized INSERT for a new row. Columns left
// NULL by the user are omitted so backend defaults (auto-increment keys)
// apply.
func BuildInsert(kind Kind, table string, row []ColumnValue) (Statement, error) {
	if table == "" {
		return Statement{}, fmt.Errorf("insert: empty table name")
	}

	var cols []string
	var args []interface{}
	for _, cv := range row {
		if cv.Value.IsNull() {
			continue
		}
		cols = append(cols, QuoteIdent(kind, cv.Column))
		args = append(args, cv.Value.Native())
	}
	if len(cols) == 0 {
		return Statement{}, fmt.Errorf("insert: no values for table %s", table)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(kind, table), strings.Join(cols, ", "), placeholders)

	return Statement{SQL: sql, Args: args}, nil
}

// BuildDelete builds one parameterized DELETE keyed like BuildUpdate
func BuildDelete(kind Kind, table string, keys []ColumnValue) (Statement, error) {
	if table == "" {
		return Statement{}, fmt.Errorf("delete: empty table name")
	}
	if len(keys) == 0 {
		return Statement{}, fmt.Errorf("delete: no key columns for row identity")
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString("DELETE FROM ")
	sb.WriteString(QuoteIdent(kind, table))
	sb.WriteString(" WHERE ")
	for i, cv := range keys {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(QuoteIdent(kind, cv.Column))
		if cv.Value.IsNull() {
			sb.WriteString(" IS NULL")
			continue
		}
		sb.WriteString(" = ?")
		args = append(args, cv.Value.Native())
	}

	return Statement{SQL: sb.String(), Args: args}, nil
}
