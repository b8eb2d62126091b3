package game

import "testing"

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		coordinate int
		axisLength int
		want       int
	}{
		{"overshoot right edge", 640, 640, 0},
		{"undershoot left edge", -20, 640, 620},
		{"in range", 20, 640, 20},
		{"origin", 0, 640, 0},
		{"last cell", 620, 640, 620},
		{"overshoot bottom edge", 480, 480, 0},
		{"undershoot top edge", -20, 480, 460},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.coordinate, tc.axisLength); got != tc.want {
				t.Errorf("Wrap(%d, %d) = %d, want %d", tc.coordinate, tc.axisLength, got, tc.want)
			}
		})
	}
}

func TestGridSpaceStepWrapsEveryEdge(t *testing.T) {
	grid := NewGridSpace(32, 24, 20)

	tests := []struct {
		from Cell
		dir  Direction
		want Cell
	}{
		{Cell{620, 240}, Right, Cell{0, 240}},
		{Cell{0, 240}, Left, Cell{620, 240}},
		{Cell{320, 0}, Up, Cell{320, 460}},
		{Cell{320, 460}, Down, Cell{320, 0}},
		{Cell{320, 240}, Right, Cell{340, 240}},
		{Cell{320, 240}, Up, Cell{320, 220}},
	}

	for _, tc := range tests {
		got := grid.Step(tc.from, tc.dir)
		if got != tc.want {
			t.Errorf("Step(%v, %s) = %v, want %v", tc.from, tc.dir, got, tc.want)
		}
		if !grid.Contains(got) {
			t.Errorf("Step(%v, %s) left the board: %v", tc.from, tc.dir, got)
		}
	}
}

func TestGridSpaceCenter(t *testing.T) {
	if got := NewGridSpace(32, 24, 20).Center(); got != (Cell{320, 240}) {
		t.Errorf("Center() = %v, want {320 240}", got)
	}
	// odd dimensions snap to the grid
	grid := NewGridSpace(31, 23, 20)
	if got := grid.Center(); got != (Cell{300, 220}) || !grid.Contains(got) {
		t.Errorf("Center() = %v, want {300 220}", got)
	}
}

func TestGridSpaceContains(t *testing.T) {
	grid := NewGridSpace(4, 3, 10)

	for _, c := range []Cell{{0, 0}, {30, 20}, {10, 10}} {
		if !grid.Contains(c) {
			t.Errorf("Contains(%v) = false, want true", c)
		}
	}
	for _, c := range []Cell{{-10, 0}, {40, 0}, {0, 30}, {5, 0}} {
		if grid.Contains(c) {
			t.Errorf("Contains(%v) = true, want false", c)
		}
	}
	if col, row := grid.ColumnRow(Cell{30, 20}); col != 3 || row != 2 {
		t.Errorf("ColumnRow = (%d, %d), want (3, 2)", col, row)
	}
}
