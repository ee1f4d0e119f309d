// internal/grid/viewport.go
package grid

// Viewport tracks the visible window over the grid. EnsureColVisible and
// EnsureRowVisible advance or retreat the offsets minimally so the selected
// index always lands inside [offset, offset+visible).
type Viewport struct {
	ColOffset   int
	VisibleCols int
	RowOffset   int
	VisibleRows int
}

// EnsureColVisible adjusts the horizontal offset for a selected column
func (v *Viewport) EnsureColVisible(col int) {
	if v.VisibleCols <= 0 {
		return
	}
	if col < v.ColOffset {
		v.ColOffset = col
	} else if col >= v.ColOffset+v.VisibleCols {
		v.ColOffset = col - (v.VisibleCols - 1)
	}
	if v.ColOffset < 0 {
		v.ColOffset = 0
	}
}

// EnsureRowVisible adjusts the vertical offset for a selected row
func (v *Viewport) EnsureRowVisible(row int) {
	if v.VisibleRows <= 0 {
		return
	}
	if row < v.RowOffset {
		v.RowOffset = row
	} else if row >= v.RowOffset+v.VisibleRows {
		v.RowOffset = row - (v.VisibleRows - 1)
	}
	if v.RowOffset < 0 {
		v.RowOffset = 0
	}
}

// Clamp keeps an index inside [0, count)
func Clamp(i, count int) int {
	if count <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}
