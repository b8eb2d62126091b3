package game

import (
	"errors"
	"math/rand"
)

var ErrBoardFull = errors.New("no free cell left for food")

type FoodSpawner struct {
	grid     GridSpace
	rng      *rand.Rand
	position Cell
}

func NewFoodSpawner(grid GridSpace, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{grid: grid, rng: rng}
}

func (f *FoodSpawner) Position() Cell {
	return f.position
}

// Relocate samples cells uniformly until one is outside occupied. A board with
// no free cell returns ErrBoardFull and the previous position is kept.
func (f *FoodSpawner) Relocate(occupied map[Cell]struct{}) (Cell, error) {
	if len(occupied) >= f.grid.CellCount() {
		return f.position, ErrBoardFull
	}

	for {
		candidate := f.grid.CellAt(f.rng.Intn(f.grid.Columns()), f.rng.Intn(f.grid.Rows()))
		if _, taken := occupied[candidate]; taken {
			continue
		}
		f.position = candidate
		return candidate, nil
	}
}
