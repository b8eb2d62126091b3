package game

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// GameTickMsg is published after every tick and once before the first one.
type GameTickMsg struct {
	Snapshot Snapshot
	Result   TickResult
}

// BoardClearedMsg is the last message of a game whose snake filled the board.
type BoardClearedMsg struct {
	Snapshot Snapshot
}

// GameErrorMsg is the last message of a game stopped by a broken invariant.
type GameErrorMsg struct {
	Err error
}

// GameManager is the control loop around one GameState. It owns the state
// exclusively: inputs come in over DirectionChannel and snapshots go out over
// UpdateChannel.
type GameManager struct {
	DirectionChannel chan Direction
	UpdateChannel    chan tea.Msg

	config Config
	state  *GameState
	pilot  Pilot
	logger *log.Logger

	isRunning atomic.Bool
	finished  atomic.Bool
}

type Option func(*GameManager)

func WithPilot(pilot Pilot) Option {
	return func(gm *GameManager) { gm.pilot = pilot }
}

func WithLogger(logger *log.Logger) Option {
	return func(gm *GameManager) {
		if logger != nil {
			gm.logger = logger
		}
	}
}

func NewGameManager(cfg Config, opts ...Option) (*GameManager, error) {
	state, err := NewGameState(cfg)
	if err != nil {
		return nil, err
	}

	gm := &GameManager{
		DirectionChannel: make(chan Direction, directionBufferSize),
		UpdateChannel:    make(chan tea.Msg, updateBufferSize),
		config:           cfg,
		state:            state,
		logger:           log.Default(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm, nil
}

func (gm *GameManager) Config() Config {
	return gm.config
}

func (gm *GameManager) Autopilot() bool {
	return gm.pilot != nil
}

func (gm *GameManager) IsRunning() bool {
	return gm.isRunning.Load()
}

// Steer hands a player intent to the loop without blocking the caller.
// Intents beyond the buffer are dropped.
func (gm *GameManager) Steer(dir Direction) {
	select {
	case gm.DirectionChannel <- dir:
	default:
		gm.logger.Debug("Direction buffer full, dropping input", "direction", dir)
	}
}

var (
	ErrAlreadyRunning = errors.New("game loop already running")
	ErrGameFinished   = errors.New("game loop already finished")
)

// Run ticks the game until ctx is done or the game can not go on. A full
// board ends the run without error. A GameManager runs once; UpdateChannel is
// closed when Run returns.
func (gm *GameManager) Run(ctx context.Context) error {
	if gm.finished.Load() {
		return ErrGameFinished
	}
	if !gm.isRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		gm.finished.Store(true)
		gm.isRunning.Store(false)
		close(gm.UpdateChannel)
	}()

	if closer, ok := gm.pilot.(io.Closer); ok {
		defer closer.Close()
	}

	gm.logger.Info("Game loop started.",
		"columns", gm.config.Columns,
		"rows", gm.config.Rows,
		"tps", gm.config.TicksPerSecond,
		"autopilot", gm.Autopilot())

	if !gm.publish(ctx, GameTickMsg{Snapshot: gm.state.Snapshot()}) {
		return nil
	}

	ticker := time.NewTicker(gm.config.TickDuration())
	defer ticker.Stop()

	var intent *Direction
	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("Game loop stopped.")
			return nil

		case dir := <-gm.DirectionChannel:
			// the latest intent between two ticks wins
			intent = &dir

		case <-ticker.C:
			msg, err := gm.step(intent)
			intent = nil
			if !gm.publish(ctx, msg) {
				return nil
			}
			if errors.Is(err, ErrBoardFull) {
				gm.logger.Info("Board cleared, stopping game loop.", "length", gm.state.snake.Length())
				return nil
			}
			if err != nil {
				gm.logger.Error("Game loop aborted", "error", err)
				return err
			}
		}
	}
}

func (gm *GameManager) step(intent *Direction) (tea.Msg, error) {
	if intent == nil && gm.pilot != nil {
		dir, err := gm.pilot.NextDirection(gm.state.Snapshot())
		if err != nil {
			gm.logger.Warn("Pilot failed, keeping heading", "error", err)
		} else {
			intent = dir
		}
	}

	result, err := gm.state.Tick(intent)
	snapshot := gm.state.Snapshot()

	switch {
	case errors.Is(err, ErrBoardFull):
		return BoardClearedMsg{Snapshot: snapshot}, err
	case err != nil:
		return GameErrorMsg{Err: err}, err
	}

	if result.Reset {
		gm.logger.Debug("Snake collided with itself, reset", "tick", snapshot.Tick, "resets", snapshot.Resets)
	} else if result.AteFood {
		gm.logger.Debug("Food eaten", "tick", snapshot.Tick, "length", snapshot.Length)
	}

	return GameTickMsg{Snapshot: snapshot, Result: result}, nil
}

func (gm *GameManager) publish(ctx context.Context, msg tea.Msg) bool {
	select {
	case gm.UpdateChannel <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}
