package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func pilotView(cells []Cell, dir Direction, food Cell) Snapshot {
	return Snapshot{
		Cells:     cells,
		Food:      food,
		Direction: dir,
		Length:    len(cells),
		Columns:   32,
		Rows:      24,
		CellSize:  20,
	}
}

func TestDefaultPilotHeadsForFood(t *testing.T) {
	pilot, err := NewScriptedPilot("default", DefaultPilotScript)
	if err != nil {
		t.Fatal(err)
	}
	defer pilot.Close()

	tests := []struct {
		name string
		view Snapshot
		want Direction
	}{
		{"food above", pilotView([]Cell{{320, 240}}, Right, Cell{320, 100}), Up},
		{"food below", pilotView([]Cell{{320, 240}}, Right, Cell{320, 400}), Down},
		{"food ahead", pilotView([]Cell{{320, 240}}, Right, Cell{400, 240}), Right},
		{"shorter across the edge", pilotView([]Cell{{20, 240}}, Up, Cell{600, 240}), Left},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, err := pilot.NextDirection(tc.view)
			if err != nil {
				t.Fatal(err)
			}
			if dir == nil || *dir != tc.want {
				t.Errorf("NextDirection() = %v, want %s", dir, tc.want)
			}
		})
	}
}

func TestDefaultPilotNeverReversesOrBitesItself(t *testing.T) {
	pilot, err := NewScriptedPilot("default", DefaultPilotScript)
	if err != nil {
		t.Fatal(err)
	}
	defer pilot.Close()

	// heading down with the neck right above the head
	view := pilotView([]Cell{{320, 240}, {320, 220}, {300, 220}}, Down, Cell{200, 240})

	dir, err := pilot.NextDirection(view)
	if err != nil {
		t.Fatal(err)
	}
	if dir == nil {
		t.Fatal("NextDirection() = nil, want a turn")
	}
	if *dir == Up {
		t.Error("pilot reversed into its own neck")
	}
	if *dir != Left {
		t.Errorf("NextDirection() = %s, want left", *dir)
	}
}

func TestScriptedPilotNilMeansKeepGoing(t *testing.T) {
	pilot, err := NewScriptedPilot("idle", `function nextDirection(view) return nil end`)
	if err != nil {
		t.Fatal(err)
	}
	defer pilot.Close()

	dir, err := pilot.NextDirection(pilotView([]Cell{{0, 0}}, Right, Cell{20, 20}))
	if err != nil || dir != nil {
		t.Errorf("NextDirection() = %v, %v; want nil, nil", dir, err)
	}
}

func TestScriptedPilotErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"not a table", `function nextDirection(view) return 5 end`},
		{"diagonal", `function nextDirection(view) return {Dx = 1, Dy = 1} end`},
		{"runtime error", `function nextDirection(view) error("boom") end`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pilot, err := NewScriptedPilot(tc.name, tc.source)
			if err != nil {
				t.Fatal(err)
			}
			defer pilot.Close()

			if _, err := pilot.NextDirection(pilotView([]Cell{{0, 0}}, Right, Cell{20, 20})); !errors.Is(err, ErrPilotScript) {
				t.Errorf("NextDirection() error = %v, want ErrPilotScript", err)
			}
		})
	}
}

func TestNewScriptedPilotRejectsBadScripts(t *testing.T) {
	if _, err := NewScriptedPilot("syntax", `function nextDirection(`); !errors.Is(err, ErrPilotScript) {
		t.Errorf("syntax error: got %v, want ErrPilotScript", err)
	}
	if _, err := NewScriptedPilot("missing", `local x = 1`); !errors.Is(err, ErrPilotScript) {
		t.Errorf("missing function: got %v, want ErrPilotScript", err)
	}
}

func TestLoadScriptedPilot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "north.lua")
	if err := os.WriteFile(path, []byte(`function nextDirection(view) return {Dx = 0, Dy = -1} end`), 0o644); err != nil {
		t.Fatal(err)
	}

	pilot, err := LoadScriptedPilot(path)
	if err != nil {
		t.Fatal(err)
	}
	defer pilot.Close()

	dir, err := pilot.NextDirection(pilotView([]Cell{{0, 0}}, Right, Cell{20, 20}))
	if err != nil {
		t.Fatal(err)
	}
	if dir == nil || *dir != Up {
		t.Errorf("NextDirection() = %v, want up", dir)
	}

	if _, err := LoadScriptedPilot(filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, ErrPilotScript) {
		t.Errorf("missing file: got %v, want ErrPilotScript", err)
	}
}
