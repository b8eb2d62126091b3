package game

import (
	"errors"
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

const pilotFunctionName = "nextDirection"

// DefaultPilotScript greedily heads for the food along the shorter way around
// the board and refuses cells the body covers.
const DefaultPilotScript = `
local dirs = {
	{Dx = 0, Dy = -1},
	{Dx = 0, Dy = 1},
	{Dx = -1, Dy = 0},
	{Dx = 1, Dy = 0},
}

local function wrap(v, axis)
	if v >= 0 and v < axis then
		return v
	end
	return axis - math.abs(v)
end

local function distance(a, b, axis)
	local d = math.abs(a - b)
	return math.min(d, axis - d)
end

function nextDirection(view)
	local best, bestScore = nil, math.huge
	for _, dir in ipairs(dirs) do
		if not (dir.Dx == -view.dx and dir.Dy == -view.dy) then
			local x = wrap(view.headX + dir.Dx * view.cellSize, view.width)
			local y = wrap(view.headY + dir.Dy * view.cellSize, view.height)
			if not view.occupied[x .. "," .. y] then
				local score = distance(x, view.foodX, view.width) + distance(y, view.foodY, view.height)
				if score < bestScore then
					best, bestScore = dir, score
				end
			end
		end
	end
	return best
end
`

var ErrPilotScript = errors.New("pilot script error")

// ScriptedPilot runs a Lua nextDirection(view) function each tick. It keeps
// one Lua state for its whole life and must only be used from one goroutine.
type ScriptedPilot struct {
	Name       string
	luaState   *lua.LState
	definition lua.LValue
}

func NewScriptedPilot(name, source string) (*ScriptedPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(source); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w: could not parse %s: %v", ErrPilotScript, name, err)
	}
	return newScriptedPilot(name, luaState)
}

func LoadScriptedPilot(path string) (*ScriptedPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoFile(path); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w: could not load %s: %v", ErrPilotScript, path, err)
	}
	return newScriptedPilot(path, luaState)
}

func newScriptedPilot(name string, luaState *lua.LState) (*ScriptedPilot, error) {
	definition := luaState.GetGlobal(pilotFunctionName)
	if definition.Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w: %s does not define %s(view)", ErrPilotScript, name, pilotFunctionName)
	}
	return &ScriptedPilot{Name: name, luaState: luaState, definition: definition}, nil
}

func (p *ScriptedPilot) NextDirection(view Snapshot) (*Direction, error) {
	head, ok := view.Head()
	if !ok {
		return nil, ErrEmptyBody
	}

	if err := p.luaState.CallByParam(lua.P{
		Fn:      p.definition,
		NRet:    1,
		Protect: true,
	}, p.viewTable(view, head)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPilotScript, p.Name, err)
	}

	luaReturn := p.luaState.Get(-1)
	p.luaState.Pop(1)

	if luaReturn == lua.LNil {
		return nil, nil
	}

	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %s, expected table", ErrPilotScript, p.Name, luaReturn.Type().String())
	}

	dir := convertLuaDirectionTable(luaTable)
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %s returned invalid direction {Dx=%d, Dy=%d}", ErrPilotScript, p.Name, dir.Dx, dir.Dy)
	}
	return &dir, nil
}

func (p *ScriptedPilot) Close() error {
	p.luaState.Close()
	return nil
}

func (p *ScriptedPilot) viewTable(view Snapshot, head Cell) *lua.LTable {
	tbl := p.luaState.NewTable()
	tbl.RawSetString("headX", lua.LNumber(head.X))
	tbl.RawSetString("headY", lua.LNumber(head.Y))
	tbl.RawSetString("foodX", lua.LNumber(view.Food.X))
	tbl.RawSetString("foodY", lua.LNumber(view.Food.Y))
	tbl.RawSetString("dx", lua.LNumber(view.Direction.Dx))
	tbl.RawSetString("dy", lua.LNumber(view.Direction.Dy))
	tbl.RawSetString("cellSize", lua.LNumber(view.CellSize))
	tbl.RawSetString("width", lua.LNumber(view.Columns*view.CellSize))
	tbl.RawSetString("height", lua.LNumber(view.Rows*view.CellSize))
	tbl.RawSetString("length", lua.LNumber(view.Length))

	body := p.luaState.NewTable()
	occupied := p.luaState.NewTable()
	for _, c := range view.Cells {
		cell := p.luaState.NewTable()
		cell.RawSetString("x", lua.LNumber(c.X))
		cell.RawSetString("y", lua.LNumber(c.Y))
		body.Append(cell)
		occupied.RawSetString(strconv.Itoa(c.X)+","+strconv.Itoa(c.Y), lua.LTrue)
	}
	tbl.RawSetString("body", body)
	tbl.RawSetString("occupied", occupied)
	return tbl
}

func convertLuaDirectionTable(luaTbl *lua.LTable) Direction {
	result := Direction{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		}
	})
	return result
}
