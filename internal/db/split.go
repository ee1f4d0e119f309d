// internal/db/split.go
package db

import "strings"

// SplitStatements splits editor text into statements. Statements are
// delimited by semicolons outside quotes and by blank lines. No SQL
// validation happens here; the backend judges each statement.
func SplitStatements(text string) []string {
	var statements []string
	for _, sp := range statementSpans(text) {
		statements = append(statements, text[sp.start:sp.end])
	}
	return statements
}

// StatementAt returns the statement whose span contains the byte offset, or
// "" if the offset sits between statements. A cursor just past a
// statement's last character still belongs to it.
func StatementAt(text string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	for _, sp := range statementSpans(text) {
		if offset >= sp.start && offset <= sp.end {
			return text[sp.start:sp.end]
		}
	}
	return ""
}

type span struct {
	start, end int
}

// statementSpans finds the trimmed [start, end) byte ranges of each
// statement, honoring single/double quotes and backslash escapes.
func statementSpans(text string) []span {
	var spans []span
	inSingle := false
	inDouble := false
	segStart := 0
	lineHasContent := false

	close := func(end int) {
		seg := text[segStart:end]
		trimmed := strings.TrimSpace(seg)
		if trimmed != "" {
			lead := strings.Index(seg, trimmed)
			spans = append(spans, span{segStart + lead, segStart + lead + len(trimmed)})
		}
		segStart = end + 1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if (inSingle || inDouble) && c == '\\' && i+1 < len(text) {
			i++
			continue
		}
		if c == '\'' && !inDouble {
			inSingle = !inSingle
		} else if c == '"' && !inSingle {
			inDouble = !inDouble
		}
		if inSingle || inDouble {
			continue
		}

		switch {
		case c == ';':
			close(i)
			lineHasContent = false
		case c == '\n':
			if !lineHasContent {
				// blank line ends the current statement
				close(i)
			}
			lineHasContent = false
		case c != ' ' && c != '\t':
			lineHasContent = true
		}
	}
	close(len(text))

	return spans
}
