package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Test Helpers ---

type fixedPilot struct {
	dir   *Direction
	err   error
	calls int
}

func (p *fixedPilot) NextDirection(view Snapshot) (*Direction, error) {
	p.calls++
	return p.dir, p.err
}

func testConfig() Config {
	return Config{
		Columns:        32,
		Rows:           24,
		CellSize:       20,
		TicksPerSecond: MaxTicksPerSecond,
		Seed:           42,
	}
}

func receive(t *testing.T, gm *GameManager) any {
	t.Helper()
	select {
	case msg := <-gm.UpdateChannel:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for game update")
		return nil
	}
}

// --- Tests ---

func TestNewGameManagerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Columns = 0
	if _, err := NewGameManager(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("NewGameManager error = %v, want ErrInvalidConfig", err)
	}
}

func TestStepUsesPilotWithoutPlayerInput(t *testing.T) {
	up := Up
	pilot := &fixedPilot{dir: &up}
	gm, err := NewGameManager(testConfig(), WithPilot(pilot))
	if err != nil {
		t.Fatal(err)
	}
	gm.state.food.position = Cell{0, 0}

	msg, err := gm.step(nil)
	if err != nil {
		t.Fatal(err)
	}
	tick, ok := msg.(GameTickMsg)
	if !ok {
		t.Fatalf("msg = %T, want GameTickMsg", msg)
	}
	if tick.Snapshot.Direction != Up || pilot.calls != 1 {
		t.Errorf("direction = %s, pilot calls = %d", tick.Snapshot.Direction, pilot.calls)
	}
}

func TestStepPlayerInputOverridesPilot(t *testing.T) {
	up := Up
	pilot := &fixedPilot{dir: &up}
	gm, err := NewGameManager(testConfig(), WithPilot(pilot))
	if err != nil {
		t.Fatal(err)
	}
	gm.state.food.position = Cell{0, 0}

	down := Down
	msg, _ := gm.step(&down)
	if dir := msg.(GameTickMsg).Snapshot.Direction; dir != Down {
		t.Errorf("direction = %s, want down", dir)
	}
	if pilot.calls != 0 {
		t.Errorf("pilot called %d times, want 0", pilot.calls)
	}
}

func TestStepPilotErrorKeepsHeading(t *testing.T) {
	gm, err := NewGameManager(testConfig(), WithPilot(&fixedPilot{err: ErrPilotScript}))
	if err != nil {
		t.Fatal(err)
	}
	gm.state.food.position = Cell{0, 0}

	msg, err := gm.step(nil)
	if err != nil {
		t.Fatalf("pilot failure leaked out of step: %v", err)
	}
	if dir := msg.(GameTickMsg).Snapshot.Direction; dir != Right {
		t.Errorf("direction = %s, want right", dir)
	}
}

func TestRunPublishesTicksUntilCancelled(t *testing.T) {
	gm, err := NewGameManager(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gm.Run(ctx) }()

	first, ok := receive(t, gm).(GameTickMsg)
	if !ok || first.Snapshot.Tick != 0 {
		t.Fatalf("first message = %+v, want initial snapshot", first)
	}

	gm.Steer(Up)
	for i := uint64(1); i <= 3; i++ {
		msg, ok := receive(t, gm).(GameTickMsg)
		if !ok {
			t.Fatalf("tick %d: got %T", i, msg)
		}
		if msg.Snapshot.Tick != i {
			t.Fatalf("tick = %d, want %d", msg.Snapshot.Tick, i)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}
	for range gm.UpdateChannel {
	}
	if gm.IsRunning() {
		t.Error("IsRunning() still true after Run returned")
	}
}

func TestRunStopsOnBoardCleared(t *testing.T) {
	cfg := testConfig()
	cfg.Columns, cfg.Rows = 2, 1
	gm, err := NewGameManager(cfg)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- gm.Run(context.Background()) }()

	if _, ok := receive(t, gm).(GameTickMsg); !ok {
		t.Fatal("first message is not the initial snapshot")
	}
	cleared, ok := receive(t, gm).(BoardClearedMsg)
	if !ok {
		t.Fatal("second message is not BoardClearedMsg")
	}
	if cleared.Snapshot.Length != 2 {
		t.Errorf("length = %d, want 2", cleared.Snapshot.Length)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after the board was cleared")
	}
}

func TestRunRejectsSecondLoop(t *testing.T) {
	gm, err := NewGameManager(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go gm.Run(ctx)
	receive(t, gm)

	if err := gm.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Run error = %v, want ErrAlreadyRunning", err)
	}
}

func TestRunClosesUpdatesAndRunsOnce(t *testing.T) {
	gm, err := NewGameManager(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := gm.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	for range gm.UpdateChannel {
	}
	if err := gm.Run(context.Background()); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("Run after finish error = %v, want ErrGameFinished", err)
	}
}

func TestSteerNeverBlocks(t *testing.T) {
	gm, err := NewGameManager(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < directionBufferSize*3; i++ {
		gm.Steer(Up)
	}
	if got := len(gm.DirectionChannel); got != directionBufferSize {
		t.Errorf("buffered inputs = %d, want %d", got, directionBufferSize)
	}
}
