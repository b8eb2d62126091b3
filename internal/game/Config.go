package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultColumns        = 32
	DefaultRows           = 24
	DefaultCellSize       = 20
	DefaultTicksPerSecond = 10

	MaxBoardColumns   = 200
	MaxBoardRows      = 200
	MaxTicksPerSecond = 60

	directionBufferSize = 10
	updateBufferSize    = 16
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config holds everything the simulation needs from setup. Cells are measured
// in the same linear units as CellSize, so the board is
// Columns*CellSize wide and Rows*CellSize high.
type Config struct {
	Columns        int
	Rows           int
	CellSize       int
	TicksPerSecond int
	// Seed for the food and reset-direction RNG. Zero picks a time based seed.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Columns:        DefaultColumns,
		Rows:           DefaultRows,
		CellSize:       DefaultCellSize,
		TicksPerSecond: DefaultTicksPerSecond,
	}
}

func (c Config) Validate() error {
	if c.Columns < 1 || c.Columns > MaxBoardColumns {
		return fmt.Errorf("%w: columns must be in [1, %d], got %d", ErrInvalidConfig, MaxBoardColumns, c.Columns)
	}
	if c.Rows < 1 || c.Rows > MaxBoardRows {
		return fmt.Errorf("%w: rows must be in [1, %d], got %d", ErrInvalidConfig, MaxBoardRows, c.Rows)
	}
	if c.Columns*c.Rows < 2 {
		return fmt.Errorf("%w: board needs at least two cells", ErrInvalidConfig)
	}
	if c.CellSize < 1 {
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	}
	if c.TicksPerSecond < 1 || c.TicksPerSecond > MaxTicksPerSecond {
		return fmt.Errorf("%w: ticks per second must be in [1, %d], got %d", ErrInvalidConfig, MaxTicksPerSecond, c.TicksPerSecond)
	}
	return nil
}

func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

func (c Config) Grid() GridSpace {
	return NewGridSpace(c.Columns, c.Rows, c.CellSize)
}
