// internal/history/entry.go
package history

import "time"

// Entry is one executed statement
type Entry struct {
	ID         int64
	Target     string // normalized connection target key
	Statement  string
	ExecutedAt time.Time
	DurationMs int64
	RowCount   int
	Status     string // "success" or "error"
	ErrorText  string
}

// Succeeded reports whether the statement ran without error
func (e *Entry) Succeeded() bool { return e.Status == "success" }

// Summary returns the statement truncated for list display
func (e *Entry) Summary(maxLen int) string {
	s := e.Statement
	if maxLen > 3 && len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
