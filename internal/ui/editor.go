// internal/ui/editor.go
package ui

import (
	"strings"
	"unicode"

	"github.com/hqnguyen/dbvim/internal/db"
)

// Editor is the SQL text pane: a line buffer with a cursor and an optional
// linewise visual selection. All mutation happens through the methods the
// dispatcher calls; it has no key handling of its own.
type Editor struct {
	lines []string
	row   int
	col   int // rune index into the current line

	visual bool
	anchor int // selection anchor row

	// single-level undo: buffer and cursor before the last edit
	undoLines []string
	undoRow   int
	undoCol   int
}

// NewEditor creates an empty one-line editor
func NewEditor() Editor {
	return Editor{lines: []string{""}}
}

// Text joins the buffer with newlines
func (e *Editor) Text() string {
	return strings.Join(e.lines, "\n")
}

// SetText replaces the buffer and homes the cursor
func (e *Editor) SetText(s string) {
	e.Snapshot()
	e.lines = strings.Split(s, "\n")
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.row, e.col = 0, 0
	e.visual = false
}

// Empty reports whether the buffer holds no text
func (e *Editor) Empty() bool {
	return len(e.lines) == 1 && e.lines[0] == ""
}

// Cursor returns the cursor position
func (e *Editor) Cursor() (row, col int) { return e.row, e.col }

// Lines returns the line buffer for rendering
func (e *Editor) Lines() []string { return e.lines }

// CursorOffset returns the cursor's byte offset into Text(), the anchor for
// statement-at-cursor execution.
func (e *Editor) CursorOffset() int {
	off := 0
	for i := 0; i < e.row; i++ {
		off += len(e.lines[i]) + 1
	}
	runes := []rune(e.lines[e.row])
	col := e.col
	if col > len(runes) {
		col = len(runes)
	}
	return off + len(string(runes[:col]))
}

// StatementAtCursor returns the statement under the cursor
func (e *Editor) StatementAtCursor() string {
	return db.StatementAt(e.Text(), e.CursorOffset())
}

// Snapshot saves the buffer for Undo. Called before each Normal-mode edit
// and once on entering Insert mode, so one undo reverts a whole insert run.
func (e *Editor) Snapshot() {
	e.undoLines = append([]string(nil), e.lines...)
	e.undoRow, e.undoCol = e.row, e.col
}

// Undo restores the last snapshot and reports whether there was one
func (e *Editor) Undo() bool {
	if e.undoLines == nil {
		return false
	}
	e.lines, e.undoLines = e.undoLines, nil
	e.row, e.col = e.undoRow, e.undoCol
	e.visual = false
	e.clampCol()
	return true
}

func (e *Editor) line() []rune { return []rune(e.lines[e.row]) }

func (e *Editor) clampCol() {
	n := len(e.line())
	if e.col > n {
		e.col = n
	}
	if e.col < 0 {
		e.col = 0
	}
}

// MoveLeft moves the cursor left within the line
func (e *Editor) MoveLeft(n int) {
	e.col -= n
	if e.col < 0 {
		e.col = 0
	}
}

// MoveRight moves the cursor right within the line
func (e *Editor) MoveRight(n int) {
	e.col += n
	e.clampCol()
}

// MoveUp moves the cursor up
func (e *Editor) MoveUp(n int) {
	e.row -= n
	if e.row < 0 {
		e.row = 0
	}
	e.clampCol()
}

// MoveDown moves the cursor down
func (e *Editor) MoveDown(n int) {
	e.row += n
	if e.row >= len(e.lines) {
		e.row = len(e.lines) - 1
	}
	e.clampCol()
}

// LineStart moves to column zero
func (e *Editor) LineStart() { e.col = 0 }

// LineEnd moves past the last rune of the line
func (e *Editor) LineEnd() { e.col = len(e.line()) }

// GotoTop moves to the first line
func (e *Editor) GotoTop() {
	e.row, e.col = 0, 0
}

// GotoBottom moves to the last line
func (e *Editor) GotoBottom() {
	e.row = len(e.lines) - 1
	e.clampCol()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordForward moves to the start of the next word, crossing line boundaries
func (e *Editor) WordForward(n int) {
	for ; n > 0; n-- {
		runes := e.line()
		i := e.col
		// leave the current word
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		// skip separators
		for i < len(runes) && !isWordRune(runes[i]) {
			i++
		}
		if i >= len(runes) && e.row < len(e.lines)-1 {
			e.row++
			e.col = 0
			continue
		}
		e.col = i
	}
	e.clampCol()
}

// WordBack moves to the start of the previous word
func (e *Editor) WordBack(n int) {
	for ; n > 0; n-- {
		if e.col == 0 {
			if e.row == 0 {
				return
			}
			e.row--
			e.col = len(e.line())
		}
		runes := e.line()
		i := e.col
		for i > 0 && !isWordRune(runes[i-1]) {
			i--
		}
		for i > 0 && isWordRune(runes[i-1]) {
			i--
		}
		e.col = i
	}
}

// InsertRune inserts a rune at the cursor
func (e *Editor) InsertRune(r rune) {
	runes := e.line()
	e.clampCol()
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:e.col]...)
	out = append(out, r)
	out = append(out, runes[e.col:]...)
	e.lines[e.row] = string(out)
	e.col++
}

// Newline splits the current line at the cursor
func (e *Editor) Newline() {
	runes := e.line()
	e.clampCol()
	left, right := string(runes[:e.col]), string(runes[e.col:])
	e.lines[e.row] = left
	rest := append([]string{right}, e.lines[e.row+1:]...)
	e.lines = append(e.lines[:e.row+1], rest...)
	e.row++
	e.col = 0
}

// Backspace deletes the rune before the cursor, joining lines at column zero
func (e *Editor) Backspace() {
	if e.col > 0 {
		runes := e.line()
		e.lines[e.row] = string(append(runes[:e.col-1:e.col-1], runes[e.col:]...))
		e.col--
		return
	}
	if e.row == 0 {
		return
	}
	prev := []rune(e.lines[e.row-1])
	e.lines[e.row-1] = string(prev) + e.lines[e.row]
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
	e.col = len(prev)
}

// DeleteChar deletes n runes under and after the cursor
func (e *Editor) DeleteChar(n int) {
	runes := e.line()
	if e.col >= len(runes) {
		return
	}
	e.Snapshot()
	end := e.col + n
	if end > len(runes) {
		end = len(runes)
	}
	e.lines[e.row] = string(append(runes[:e.col:e.col], runes[end:]...))
	e.clampCol()
}

// DeleteLine removes n lines starting at the cursor and returns them with a
// trailing newline, vim's linewise register convention.
func (e *Editor) DeleteLine(n int) string {
	e.Snapshot()
	end := e.row + n
	if end > len(e.lines) {
		end = len(e.lines)
	}
	removed := strings.Join(e.lines[e.row:end], "\n") + "\n"
	e.lines = append(e.lines[:e.row:e.row], e.lines[end:]...)
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	if e.row >= len(e.lines) {
		e.row = len(e.lines) - 1
	}
	e.clampCol()
	return removed
}

// YankLine returns the current line with a trailing newline
func (e *Editor) YankLine() string {
	return e.lines[e.row] + "\n"
}

// OpenLineBelow inserts an empty line after the cursor and moves onto it
func (e *Editor) OpenLineBelow() {
	e.Snapshot()
	rest := append([]string{""}, e.lines[e.row+1:]...)
	e.lines = append(e.lines[:e.row+1], rest...)
	e.row++
	e.col = 0
}

// OpenLineAbove inserts an empty line before the cursor and moves onto it
func (e *Editor) OpenLineAbove() {
	e.Snapshot()
	e.lines = append(e.lines[:e.row:e.row], append([]string{""}, e.lines[e.row:]...)...)
	e.col = 0
}

// StartVisual anchors a linewise selection at the cursor
func (e *Editor) StartVisual() {
	e.visual = true
	e.anchor = e.row
}

// EndVisual drops the selection
func (e *Editor) EndVisual() {
	e.visual = false
}

// Visual reports whether a selection is active
func (e *Editor) Visual() bool { return e.visual }

// SelectionRange returns the selected line range, inclusive
func (e *Editor) SelectionRange() (lo, hi int) {
	lo, hi = e.anchor, e.row
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// SelectionText returns the selected lines with a trailing newline
func (e *Editor) SelectionText() string {
	lo, hi := e.SelectionRange()
	return strings.Join(e.lines[lo:hi+1], "\n") + "\n"
}

// DeleteSelection removes the selected lines and returns them
func (e *Editor) DeleteSelection() string {
	e.Snapshot()
	lo, hi := e.SelectionRange()
	removed := strings.Join(e.lines[lo:hi+1], "\n") + "\n"
	e.lines = append(e.lines[:lo:lo], e.lines[hi+1:]...)
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.row = lo
	if e.row >= len(e.lines) {
		e.row = len(e.lines) - 1
	}
	e.clampCol()
	e.visual = false
	return removed
}

// Paste inserts register text at the cursor. Text with a trailing newline is
// linewise and goes below the current line; anything else splices in place.
func (e *Editor) Paste(text string) {
	if text == "" {
		return
	}
	e.Snapshot()
	if strings.HasSuffix(text, "\n") {
		pasted := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		rest := append(pasted, e.lines[e.row+1:]...)
		e.lines = append(e.lines[:e.row+1], rest...)
		e.row++
		e.col = 0
		return
	}
	for _, r := range text {
		if r == '\n' {
			e.Newline()
			continue
		}
		e.InsertRune(r)
	}
}
