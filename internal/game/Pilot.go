package game

// Pilot steers the snake when no player input arrived for a tick.
// A nil direction means keep going.
type Pilot interface {
	NextDirection(view Snapshot) (*Direction, error)
}
