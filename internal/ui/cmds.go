// internal/ui/cmds.go
package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/grid"
	"github.com/hqnguyen/dbvim/internal/history"
	"github.com/hqnguyen/dbvim/internal/registry"
)

const (
	queryTimeout = 30 * time.Second
	metaTimeout  = 10 * time.Second
)

func (m Model) openConnCmd(profile config.Profile) tea.Cmd {
	return func() tea.Msg {
		conn, err := m.reg.Open(profile)
		if err != nil {
			return ConnOpenedMsg{Profile: profile.Name, Err: err}
		}
		return ConnOpenedMsg{ConnID: conn.ID, Profile: profile.Name}
	}
}

func (m Model) testConnCmd(profile config.Profile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		err := m.reg.Test(ctx, profile)
		return ConnTestedMsg{Target: profile.TargetKey(), Err: err}
	}
}

func (m Model) loadSchemasCmd(conn *registry.Conn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		schemas, err := conn.ListSchemas(ctx)
		return SchemasLoadedMsg{ConnID: conn.ID, Schemas: schemas, Err: err}
	}
}

func (m Model) useSchemaCmd(conn *registry.Conn, schema string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		if err := conn.UseSchema(ctx, schema); err != nil {
			return SchemaUsedMsg{ConnID: conn.ID, Schema: schema, Err: err}
		}
		tables, err := conn.ListTables(ctx)
		if err != nil {
			return SchemaUsedMsg{ConnID: conn.ID, Schema: schema, Err: err}
		}
		return TablesLoadedMsg{ConnID: conn.ID, Schema: schema, Tables: tables}
	}
}

func (m Model) loadTablesCmd(conn *registry.Conn, schema string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		tables, err := conn.ListTables(ctx)
		return TablesLoadedMsg{ConnID: conn.ID, Schema: schema, Tables: tables, Err: err}
	}
}

func (m Model) clearSchemaCmd(conn *registry.Conn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		err := conn.ClearSchemaContext(ctx)
		return SchemaUsedMsg{ConnID: conn.ID, Schema: "", Err: err}
	}
}

func (m Model) loadColumnsCmd(conn *registry.Conn, table string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaTimeout)
		defer cancel()
		cols, err := conn.TableColumns(ctx, table)
		return ColumnsLoadedMsg{ConnID: conn.ID, Table: table, Columns: cols, Err: err}
	}
}

func (m Model) fetchTableCmd(conn *registry.Conn, table string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		res, err := conn.FetchRows(ctx, table, limit)
		if err != nil {
			return TableFetchedMsg{ConnID: conn.ID, Table: table, Err: err}
		}
		cols, err := conn.TableColumns(ctx, table)
		if err != nil {
			return TableFetchedMsg{ConnID: conn.ID, Table: table, Err: err}
		}
		return TableFetchedMsg{ConnID: conn.ID, Table: table, Result: res, Columns: cols, Limit: limit}
	}
}

func (m Model) execStatementCmd(conn *registry.Conn, stmt string) tea.Cmd {
	store := m.hist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		res, err := conn.Execute(ctx, stmt)
		entry := recordHistory(store, conn.ID, stmt, res, err)
		return QueryDoneMsg{ConnID: conn.ID, Statement: stmt, Result: res, Entry: entry, Err: err}
	}
}

// execBufferCmd runs every statement of the buffer in order and stops at the
// first failure. Earlier results are kept.
func (m Model) execBufferCmd(conn *registry.Conn, text string) tea.Cmd {
	store := m.hist
	return func() tea.Msg {
		stmts := db.SplitStatements(text)
		msg := BufferExecutedMsg{ConnID: conn.ID, FailedAt: -1}

		for i, stmt := range stmts {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			res, err := conn.Execute(ctx, stmt)
			cancel()

			recordHistory(store, conn.ID, stmt, res, err)
			msg.Outcomes = append(msg.Outcomes, StatementOutcome{Statement: stmt, Result: res, Err: err})
			if err != nil {
				msg.FailedAt = i
				break
			}
		}
		return msg
	}
}

// commitCmd applies a commit plan in order, stopping at the first failing
// operation. It does not touch the edit buffer; Update clears it only when
// every operation applied.
func (m Model) commitCmd(conn *registry.Conn, table string, ops []grid.CommitOp) tea.Cmd {
	return func() tea.Msg {
		applied := 0
		for i := range ops {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			_, err := conn.Execute(ctx, ops[i].Stmt.SQL, ops[i].Stmt.Args...)
			cancel()
			if err != nil {
				return CommitDoneMsg{ConnID: conn.ID, Table: table, Applied: applied, Failed: &ops[i], Err: err}
			}
			applied++
		}
		return CommitDoneMsg{ConnID: conn.ID, Table: table, Applied: applied}
	}
}

func (m Model) loadHistoryCmd(target, query string) tea.Cmd {
	store := m.hist
	return func() tea.Msg {
		var (
			entries []history.Entry
			err     error
		)
		if query != "" {
			entries, err = store.Search(target, query, 100)
		} else {
			entries, err = store.List(target, 100)
		}
		return HistoryLoadedMsg{Target: target, Entries: entries, Err: err}
	}
}

func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Err: clipboard.WriteAll(text)}
	}
}

func (m Model) statusClearCmd() tea.Cmd {
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// recordHistory is best effort; a history write failure never fails the query
func recordHistory(store *history.Store, target, stmt string, res *db.Result, execErr error) *history.Entry {
	if store == nil {
		return nil
	}
	e := &history.Entry{
		Target:     target,
		Statement:  stmt,
		ExecutedAt: time.Now(),
		Status:     "success",
	}
	if res != nil {
		e.DurationMs = res.Duration.Milliseconds()
		e.RowCount = res.RowCount
		if !res.IsSelect {
			e.RowCount = int(res.AffectedRows)
		}
	}
	if execErr != nil {
		e.Status = "error"
		e.ErrorText = execErr.Error()
	}
	store.Add(e)
	return e
}
