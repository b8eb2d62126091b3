package game

import (
	"fmt"
	"math/rand"
	"time"
)

type Phase int

const (
	PhaseRunning Phase = iota
	// PhaseCollided only lasts inside the Tick that detected the collision.
	PhaseCollided
)

func (p Phase) String() string {
	if p == PhaseCollided {
		return "collided"
	}
	return "running"
}

type TickResult struct {
	AteFood bool
	Vacated *Cell
	Reset   bool
}

// GameState is the single-player simulation. It is not safe for concurrent
// use; GameManager drives it from one goroutine.
type GameState struct {
	grid  GridSpace
	snake *SnakeBody
	food  *FoodSpawner
	phase Phase

	tick       uint64
	resets     int
	bestLength int
}

func NewGameState(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return newGameState(cfg.Grid(), rand.New(rand.NewSource(seed)))
}

func newGameState(grid GridSpace, rng *rand.Rand) (*GameState, error) {
	gs := &GameState{
		grid:       grid,
		snake:      NewSnakeBody(grid, rng, grid.Center(), Right),
		food:       NewFoodSpawner(grid, rng),
		phase:      PhaseRunning,
		bestLength: 1,
	}

	if _, err := gs.food.Relocate(gs.snake.Occupied()); err != nil {
		return nil, fmt.Errorf("placing initial food: %w", err)
	}
	return gs, nil
}

// Tick runs one simulation step. input may be nil when no key was pressed.
func (gs *GameState) Tick(input *Direction) (TickResult, error) {
	gs.tick++

	if input != nil {
		gs.snake.SetPendingDirection(*input)
	}
	gs.snake.ApplyPendingDirection()

	outcome, err := gs.snake.Advance(gs.food.Position())
	if err != nil {
		return TickResult{}, fmt.Errorf("tick %d: %w", gs.tick, err)
	}

	switch outcome {
	case OutcomeCollided:
		gs.phase = PhaseCollided
		gs.resets++
		gs.snake.Reset(gs.grid.Center())
		if _, err := gs.food.Relocate(gs.snake.Occupied()); err != nil {
			return TickResult{Reset: true}, fmt.Errorf("tick %d: relocating food after reset: %w", gs.tick, err)
		}
		gs.phase = PhaseRunning
		return TickResult{Reset: true}, nil

	case OutcomeAteFood:
		gs.bestLength = max(gs.bestLength, gs.snake.Length())
		if _, err := gs.food.Relocate(gs.snake.Occupied()); err != nil {
			return TickResult{AteFood: true}, fmt.Errorf("tick %d: %w", gs.tick, err)
		}
		return TickResult{AteFood: true}, nil
	}

	return TickResult{Vacated: gs.snake.Vacated()}, nil
}

func (gs *GameState) Phase() Phase {
	return gs.phase
}

func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		Cells:      gs.snake.Cells(),
		Food:       gs.food.Position(),
		Vacated:    gs.snake.Vacated(),
		Direction:  gs.snake.Direction(),
		Length:     gs.snake.Length(),
		Tick:       gs.tick,
		Resets:     gs.resets,
		BestLength: gs.bestLength,
		Phase:      gs.phase,
		Columns:    gs.grid.Columns(),
		Rows:       gs.grid.Rows(),
		CellSize:   gs.grid.CellSize(),
	}
}
