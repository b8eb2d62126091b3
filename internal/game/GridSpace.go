package game

// Cell is one grid-aligned position. X and Y are in board units and are
// always exact multiples of the cell size.
type Cell struct {
	X int
	Y int
}

// GridSpace is the toroidal board: Columns x Rows cells of CellSize units.
type GridSpace struct {
	columns  int
	rows     int
	cellSize int
}

func NewGridSpace(columns, rows, cellSize int) GridSpace {
	return GridSpace{
		columns:  columns,
		rows:     rows,
		cellSize: cellSize,
	}
}

// Wrap folds a coordinate that stepped one cell past either edge back onto
// the axis. Only valid for single-cell overshoots: axisLength lands on 0 and
// -cellSize lands on axisLength-cellSize.
func Wrap(coordinate, axisLength int) int {
	if coordinate >= 0 && coordinate < axisLength {
		return coordinate
	}
	return axisLength - abs(coordinate)
}

func (g GridSpace) Step(from Cell, dir Direction) Cell {
	return Cell{
		X: Wrap(from.X+dir.Dx*g.cellSize, g.Width()),
		Y: Wrap(from.Y+dir.Dy*g.cellSize, g.Height()),
	}
}

func (g GridSpace) Columns() int  { return g.columns }
func (g GridSpace) Rows() int     { return g.rows }
func (g GridSpace) CellSize() int { return g.cellSize }
func (g GridSpace) Width() int    { return g.columns * g.cellSize }
func (g GridSpace) Height() int   { return g.rows * g.cellSize }
func (g GridSpace) CellCount() int {
	return g.columns * g.rows
}

// Center is the spawn cell, snapped down to the grid on odd dimensions.
func (g GridSpace) Center() Cell {
	return g.CellAt(g.columns/2, g.rows/2)
}

func (g GridSpace) CellAt(col, row int) Cell {
	return Cell{X: col * g.cellSize, Y: row * g.cellSize}
}

func (g GridSpace) ColumnRow(c Cell) (int, int) {
	return c.X / g.cellSize, c.Y / g.cellSize
}

func (g GridSpace) Contains(c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= g.Width() || c.Y >= g.Height() {
		return false
	}
	return c.X%g.cellSize == 0 && c.Y%g.cellSize == 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
