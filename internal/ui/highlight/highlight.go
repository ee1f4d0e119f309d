// internal/ui/highlight/highlight.go

// Package highlight renders SQL with ANSI colors for the editor pane and
// the history popup.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	lexer     = "sql"
	formatter = "terminal256"
	style     = "nord"
)

// SQL returns the statement with terminal color codes. On any highlighting
// failure the input is returned unchanged; display must not depend on the
// lexer.
func SQL(sql string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, sql, lexer, formatter, style); err != nil {
		return sql
	}
	// chroma appends a trailing reset-and-newline the caller didn't ask for
	return strings.TrimSuffix(b.String(), "\n")
}

// Line highlights a single line, preserving emptiness
func Line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	return SQL(line)
}
