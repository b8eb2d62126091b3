package game

// Snapshot is a read-only copy of the simulation handed to renderers and
// pilots. Mutating it never touches the GameState it came from.
type Snapshot struct {
	Cells      []Cell
	Food       Cell
	Vacated    *Cell
	Direction  Direction
	Length     int
	Tick       uint64
	Resets     int
	BestLength int
	Phase      Phase

	Columns  int
	Rows     int
	CellSize int
}

func (s Snapshot) Head() (Cell, bool) {
	if len(s.Cells) == 0 {
		return Cell{}, false
	}
	return s.Cells[0], true
}

func (s Snapshot) Grid() GridSpace {
	return NewGridSpace(s.Columns, s.Rows, s.CellSize)
}

// Occupancy indexes body cells by position; the value is the segment index,
// 0 being the head.
func (s Snapshot) Occupancy() map[Cell]int {
	occupancy := make(map[Cell]int, len(s.Cells))
	for i := len(s.Cells) - 1; i >= 0; i-- {
		occupancy[s.Cells[i]] = i
	}
	return occupancy
}
