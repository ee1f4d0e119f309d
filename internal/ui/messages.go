// internal/ui/messages.go
package ui

import (
	"github.com/hqnguyen/dbvim/internal/db"
	"github.com/hqnguyen/dbvim/internal/grid"
	"github.com/hqnguyen/dbvim/internal/history"
)

// Every message that comes back from a connection carries the connection's
// identity. Update drops messages whose connection is no longer live, so
// closing a connection implicitly cancels its in-flight work.

// ConnOpenedMsg is sent when a connection attempt completes
type ConnOpenedMsg struct {
	ConnID  string
	Profile string // profile name, for the status line
	Err     error
}

// ConnTestedMsg is sent when a test round trip completes. Tests never
// register a connection.
type ConnTestedMsg struct {
	Target string
	Err    error
}

// SchemasLoadedMsg is sent when the schema list loads
type SchemasLoadedMsg struct {
	ConnID  string
	Schemas []string
	Err     error
}

// SchemaUsedMsg is sent when a schema switch completes
type SchemaUsedMsg struct {
	ConnID string
	Schema string
	Err    error
}

// TablesLoadedMsg is sent when the table list loads
type TablesLoadedMsg struct {
	ConnID string
	Schema string
	Tables []string
	Err    error
}

// ColumnsLoadedMsg is sent when column metadata loads for the columns popup
type ColumnsLoadedMsg struct {
	ConnID  string
	Table   string
	Columns []db.Column
	Err     error
}

// TableFetchedMsg is sent when a bounded table fetch completes
type TableFetchedMsg struct {
	ConnID  string
	Table   string
	Result  *db.Result
	Columns []db.Column
	Limit   int
	Err     error
}

// QueryDoneMsg is sent when a single statement finishes
type QueryDoneMsg struct {
	ConnID    string
	Statement string
	Result    *db.Result
	Entry     *history.Entry
	Err       error
}

// StatementOutcome is one statement's result within a buffer run
type StatementOutcome struct {
	Statement string
	Result    *db.Result
	Err       error
}

// BufferExecutedMsg is sent when a sequential buffer run finishes. Execution
// stops at the first failing statement; FailedAt is its index, or -1.
type BufferExecutedMsg struct {
	ConnID   string
	Outcomes []StatementOutcome
	FailedAt int
}

// CommitDoneMsg is sent when a pending-edit commit finishes. A failure names
// the operation that stopped the commit; earlier operations stay applied and
// the edit buffer is kept.
type CommitDoneMsg struct {
	ConnID  string
	Table   string
	Applied int
	Failed  *grid.CommitOp
	Err     error
}

// HistoryLoadedMsg is sent when statement history loads from SQLite
type HistoryLoadedMsg struct {
	Target  string
	Entries []history.Entry
	Err     error
}

// ClipboardMsg is sent when a clipboard write completes
type ClipboardMsg struct {
	Err error
}

// statusClearMsg expires a transient status line message
type statusClearMsg struct {
	seq int
}
