package game

import (
	"errors"
	"math/rand"
)

var ErrEmptyBody = errors.New("snake body is empty")

type AdvanceOutcome int

const (
	OutcomeContinued AdvanceOutcome = iota
	OutcomeAteFood
	OutcomeCollided
)

func (o AdvanceOutcome) String() string {
	switch o {
	case OutcomeContinued:
		return "continued"
	case OutcomeAteFood:
		return "ate_food"
	case OutcomeCollided:
		return "collided"
	}
	return "unknown"
}

// SnakeBody owns the occupied cells, head first. After every Advance the
// number of cells equals length.
type SnakeBody struct {
	grid GridSpace
	rng  *rand.Rand

	positions []Cell
	length    int
	direction Direction
	pending   *Direction
	vacated   *Cell
}

func NewSnakeBody(grid GridSpace, rng *rand.Rand, start Cell, dir Direction) *SnakeBody {
	return &SnakeBody{
		grid:      grid,
		rng:       rng,
		positions: []Cell{start},
		length:    1,
		direction: dir,
	}
}

func (s *SnakeBody) Head() (Cell, error) {
	if len(s.positions) == 0 {
		return Cell{}, ErrEmptyBody
	}
	return s.positions[0], nil
}

// SetPendingDirection queues a turn for the next Advance. Turning back onto the
// active direction is dropped without error, even when another turn is pending.
func (s *SnakeBody) SetPendingDirection(dir Direction) {
	if !dir.Valid() || dir.IsOpposite(s.direction) {
		return
	}
	s.pending = &dir
}

func (s *SnakeBody) ApplyPendingDirection() {
	if s.pending == nil {
		return
	}
	s.direction = *s.pending
	s.pending = nil
}

// Advance moves the head one cell. Collision is tested against the body as it
// was before the move, tail included, so a collision leaves the body as is.
func (s *SnakeBody) Advance(food Cell) (AdvanceOutcome, error) {
	s.vacated = nil

	head, err := s.Head()
	if err != nil {
		return OutcomeCollided, err
	}

	newHead := s.grid.Step(head, s.direction)
	if s.Contains(newHead) {
		return OutcomeCollided, nil
	}

	s.positions = append(s.positions, Cell{})
	copy(s.positions[1:], s.positions)
	s.positions[0] = newHead

	if newHead == food {
		s.length++
		return OutcomeAteFood, nil
	}

	tail := s.positions[len(s.positions)-1]
	s.positions = s.positions[:len(s.positions)-1]
	s.vacated = &tail
	return OutcomeContinued, nil
}

func (s *SnakeBody) Reset(initial Cell) {
	s.positions = []Cell{initial}
	s.length = 1
	s.direction = Directions[s.rng.Intn(len(Directions))]
	s.pending = nil
	s.vacated = nil
}

func (s *SnakeBody) Contains(c Cell) bool {
	for _, p := range s.positions {
		if p == c {
			return true
		}
	}
	return false
}

// Occupied returns the body as a set, the shape FoodSpawner samples against.
func (s *SnakeBody) Occupied() map[Cell]struct{} {
	occupied := make(map[Cell]struct{}, len(s.positions))
	for _, p := range s.positions {
		occupied[p] = struct{}{}
	}
	return occupied
}

func (s *SnakeBody) Cells() []Cell {
	cells := make([]Cell, len(s.positions))
	copy(cells, s.positions)
	return cells
}

func (s *SnakeBody) Len() int             { return len(s.positions) }
func (s *SnakeBody) Length() int          { return s.length }
func (s *SnakeBody) Direction() Direction { return s.direction }

// Vacated is the tail cell dropped by the last Advance, nil when nothing was.
func (s *SnakeBody) Vacated() *Cell {
	if s.vacated == nil {
		return nil
	}
	c := *s.vacated
	return &c
}
