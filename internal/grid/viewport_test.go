// internal/grid/viewport_test.go
package grid

import "testing"

func TestEnsureColVisibleInvariant(t *testing.T) {
	// for any selected column k, after adjustment
	// k ∈ [offset, offset+visible)
	const columns = 40
	for visible := 1; visible <= 10; visible++ {
		v := &Viewport{VisibleCols: visible}
		// walk right then jump around
		ks := []int{0, 1, 5, 39, 12, 0, 20, 19, 21, 39, 38}
		for _, k := range ks {
			v.EnsureColVisible(k)
			if k < v.ColOffset || k >= v.ColOffset+visible {
				t.Fatalf("visible=%d k=%d offset=%d: selection outside window", visible, k, v.ColOffset)
			}
			if v.ColOffset < 0 || v.ColOffset > columns-1 {
				t.Fatalf("offset %d out of range", v.ColOffset)
			}
		}
	}
}

func TestEnsureColVisibleMovesMinimally(t *testing.T) {
	v := &Viewport{VisibleCols: 3}

	// moving right one past the window advances by one
	v.EnsureColVisible(3)
	if v.ColOffset != 1 {
		t.Errorf("offset = %d, want 1", v.ColOffset)
	}
	// moving left of the window retreats exactly to the selection
	v.EnsureColVisible(0)
	if v.ColOffset != 0 {
		t.Errorf("offset = %d, want 0", v.ColOffset)
	}
	// a selection already inside the window leaves the offset alone
	v.ColOffset = 2
	v.EnsureColVisible(3)
	if v.ColOffset != 2 {
		t.Errorf("offset = %d, want unchanged 2", v.ColOffset)
	}
}

func TestEnsureRowVisible(t *testing.T) {
	v := &Viewport{VisibleRows: 5}
	v.EnsureRowVisible(12)
	if 12 < v.RowOffset || 12 >= v.RowOffset+5 {
		t.Fatalf("row 12 outside [%d, %d)", v.RowOffset, v.RowOffset+5)
	}
	v.EnsureRowVisible(2)
	if v.RowOffset != 2 {
		t.Fatalf("offset = %d, want 2", v.RowOffset)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{-1, 5, 0},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 4},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.i, c.n); got != c.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", c.i, c.n, got, c.want)
		}
	}
}
