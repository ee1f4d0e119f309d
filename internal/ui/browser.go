// internal/ui/browser.go
package ui

import (
	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/grid"
)

// BrowserLevel is the browser's position in the connection tree
type BrowserLevel int

const (
	LevelConnections BrowserLevel = iota
	LevelSchemas
	LevelTables
)

// Browser is the navigation pane: saved connections at the top level, then
// the live connection's schemas, then the active schema's tables. It holds
// only list state; descending and ascending are driven by the dispatcher.
type Browser struct {
	Level  BrowserLevel
	Cursor int

	// ConnID is set while descended into a live connection
	ConnID  string
	Schemas []string
	Schema  string
	Tables  []string

	// ProfileCount is kept in sync by the dispatcher; the browser does not
	// hold the config.
	ProfileCount int

	vp grid.Viewport
}

// NewBrowser creates a browser at the connection level
func NewBrowser() Browser {
	return Browser{vp: grid.Viewport{VisibleRows: 20}}
}

// Items returns the current level's list entries
func (b *Browser) Items(profiles []config.Profile) []string {
	switch b.Level {
	case LevelSchemas:
		return b.Schemas
	case LevelTables:
		return b.Tables
	default:
		names := make([]string, len(profiles))
		for i, p := range profiles {
			names[i] = p.Name
		}
		return names
	}
}

// Selected returns the entry under the cursor, "" when the list is empty
func (b *Browser) Selected(profiles []config.Profile) string {
	items := b.Items(profiles)
	if len(items) == 0 {
		return ""
	}
	return items[grid.Clamp(b.Cursor, len(items))]
}

// Move advances the cursor by delta, keeping it visible
func (b *Browser) Move(delta int) {
	b.Cursor = grid.Clamp(b.Cursor+delta, b.count())
	b.vp.EnsureRowVisible(b.Cursor)
}

// GotoTop selects the first entry
func (b *Browser) GotoTop() {
	b.Cursor = 0
	b.vp.EnsureRowVisible(0)
}

// GotoBottom selects the last entry
func (b *Browser) GotoBottom() {
	b.Cursor = grid.Clamp(b.count()-1, b.count())
	b.vp.EnsureRowVisible(b.Cursor)
}

func (b *Browser) count() int {
	switch b.Level {
	case LevelSchemas:
		return len(b.Schemas)
	case LevelTables:
		return len(b.Tables)
	default:
		return b.ProfileCount
	}
}

// EnterSchemas descends into a live connection's schema list
func (b *Browser) EnterSchemas(connID string, schemas []string) {
	b.Level = LevelSchemas
	b.ConnID = connID
	b.Schemas = schemas
	b.Cursor = 0
	b.vp.RowOffset = 0
}

// EnterTables descends into a schema's table list
func (b *Browser) EnterTables(schema string, tables []string) {
	b.Level = LevelTables
	b.Schema = schema
	b.Tables = tables
	b.Cursor = 0
	b.vp.RowOffset = 0
}

// Ascend goes back up one level. It reports whether the browser left a
// schema context the connection should clear.
func (b *Browser) Ascend() (leftSchema bool) {
	switch b.Level {
	case LevelTables:
		left := b.Schema
		b.Level = LevelSchemas
		b.Schema = ""
		b.Tables = nil
		b.Cursor = indexOf(b.Schemas, left)
		if b.Cursor < 0 {
			b.Cursor = 0
		}
		b.vp.RowOffset = 0
		return true
	case LevelSchemas:
		b.Level = LevelConnections
		b.ConnID = ""
		b.Schemas = nil
		b.Cursor = 0
		b.vp.RowOffset = 0
		return false
	default:
		return false
	}
}

// Reset drops the browser back to the connection level, used when its
// connection is closed underneath it.
func (b *Browser) Reset() {
	b.Level = LevelConnections
	b.ConnID = ""
	b.Schemas = nil
	b.Schema = ""
	b.Tables = nil
	b.Cursor = 0
	b.vp.RowOffset = 0
}

// SetVisibleRows resizes the browser's window
func (b *Browser) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	b.vp.VisibleRows = n
	b.vp.EnsureRowVisible(b.Cursor)
}

// Window returns the visible slice bounds over n items
func (b *Browser) Window(n int) (lo, hi int) {
	lo = b.vp.RowOffset
	hi = lo + b.vp.VisibleRows
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return -1
}
