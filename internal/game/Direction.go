package game

type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: -1}
	Down  = Direction{Dx: 0, Dy: 1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
)

// Directions lists the four legal headings; reset picks one of them at random.
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) Opposite() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

// IsOpposite reports whether d would turn the snake straight back onto other.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && d.Opposite() == other
}

func (d Direction) Valid() bool {
	for _, dir := range Directions {
		if d == dir {
			return true
		}
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}
