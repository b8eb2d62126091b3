package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal Game States for GameModel ---

type GameState int

const (
	StatePlaying GameState = iota
	StateBoardCleared
	StateFailed
)

// GameStoppedMsg arrives once the game loop has closed its update channel.
type GameStoppedMsg struct{}

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render("  ")
	bodyStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("34")).Render("██")
	headStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("46")).Bold(true)
	foodStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("196")).Render("● ")
	flashStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	headRunes = map[game.Direction]string{
		game.Up:    "▲ ",
		game.Down:  "▼ ",
		game.Left:  "◀ ",
		game.Right: "▶ ",
	}
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	// each grid cell is drawn two terminal columns wide to look square
	cellRenderWidth = 2
	resetFlashTicks = 10
)

// GameModel renders one running game and forwards steering keys to it.
type GameModel struct {
	ScreenWidth  int
	ScreenHeight int

	gameManager *game.GameManager
	keys        keyMap

	snapshot    game.Snapshot
	hasSnapshot bool
	erasedCells int
	resetFlash  int

	gameState    GameState
	resultScreen ResultScreen
}

func NewGameModel(gm *game.GameManager, screenWidth int, screenHeight int) GameModel {
	return GameModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameManager:  gm,
		keys:         defaultKeyMap(),
		gameState:    StatePlaying,
		resultScreen: ResultScreen{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// --- Init/Update/View Methods ---

func (m GameModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.resultScreen.ScreenWidth = msg.Width
		m.resultScreen.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.gameState != StatePlaying {
			return m.updateResultScreen(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return QuitGameMsg{} }
		case key.Matches(msg, m.keys.Up):
			m.gameManager.Steer(game.Up)
		case key.Matches(msg, m.keys.Down):
			m.gameManager.Steer(game.Down)
		case key.Matches(msg, m.keys.Left):
			m.gameManager.Steer(game.Left)
		case key.Matches(msg, m.keys.Right):
			m.gameManager.Steer(game.Right)
		}
		return m, nil

	case game.GameTickMsg:
		m.snapshot = msg.Snapshot
		m.hasSnapshot = true
		if msg.Result.Vacated != nil {
			m.erasedCells++
		}
		switch {
		case msg.Result.Reset:
			m.resetFlash = resetFlashTicks
		case m.resetFlash > 0:
			m.resetFlash--
		}
		return m, m.listenForGameUpdates()

	case game.BoardClearedMsg:
		log.Info("Board cleared", "length", msg.Snapshot.Length, "tick", msg.Snapshot.Tick)
		m.snapshot = msg.Snapshot
		m.hasSnapshot = true
		m.gameState = StateBoardCleared
		m.resultScreen.SelectedButton = 0
		return m, nil

	case game.GameErrorMsg:
		m.gameState = StateFailed
		m.resultScreen.Err = msg.Err
		m.resultScreen.SelectedButton = 0
		return m, nil

	case GameStoppedMsg:
		return m, nil
	}

	return m, nil
}

func (m GameModel) updateResultScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.resultScreen.SelectedButton = max(0, m.resultScreen.SelectedButton-1)
	case "right", "l":
		m.resultScreen.SelectedButton = min(1, m.resultScreen.SelectedButton+1)
	case "esc":
		return m, func() tea.Msg { return QuitGameMsg{} }
	case "enter":
		// 0: Menu, 1: Exit
		if m.resultScreen.SelectedButton == 0 {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) View() string {
	switch m.gameState {
	case StateBoardCleared:
		return m.resultScreen.RenderBoardClearedScreen(m.snapshot)
	case StateFailed:
		return m.resultScreen.RenderFailureScreen()
	}

	if !m.hasSnapshot {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game manager...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding

	mapContent := m.renderMap(mapWidth, m.ScreenHeight)
	statusContent := m.renderStatusPanel()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth).Height(m.ScreenHeight).Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Height(m.ScreenHeight).Render(statusContent),
	)
}

// viewport picks the first and one-past-last index of a window of size view
// on an axis of size total, keeping center in the middle where possible.
func viewport(center, view, total int) (int, int) {
	view = min(view, total)
	start := max(0, center-view/2)
	if start+view > total {
		start = max(0, total-view)
	}
	return start, min(total, start+view)
}

func (m GameModel) renderMap(width int, height int) string {
	var sb strings.Builder

	snap := m.snapshot
	grid := snap.Grid()
	occupancy := snap.Occupancy()

	head, _ := snap.Head()
	headCol, headRow := grid.ColumnRow(head)

	startCol, endCol := viewport(headCol, max(1, (width-2)/cellRenderWidth), snap.Columns)
	startRow, endRow := viewport(headRow, max(1, height-2), snap.Rows)

	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			cell := grid.CellAt(col, row)

			if segment, ok := occupancy[cell]; ok {
				if segment == 0 {
					sb.WriteString(headStyle.Render(headRunes[snap.Direction]))
				} else {
					sb.WriteString(bodyStyle)
				}
				continue
			}

			if cell == snap.Food {
				sb.WriteString(foodStyle)
				continue
			}

			sb.WriteString(voidStyle)
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(sb.String())
}

// renderStatusPanel draws the run stats and controls.
func (m GameModel) renderStatusPanel() string {
	var statusContent strings.Builder
	snap := m.snapshot
	cfg := m.gameManager.Config()

	mode := "Player"
	if m.gameManager.Autopilot() {
		mode = "Autopilot"
	}

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Snake Stats ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Mode: %s\n", mode))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", snap.Length))
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", snap.BestLength))
	statusContent.WriteString(fmt.Sprintf("Resets: %d\n", snap.Resets))
	statusContent.WriteString(fmt.Sprintf("Tick: %d\n", snap.Tick))
	statusContent.WriteString(fmt.Sprintf("Trail erased: %d\n", m.erasedCells))
	statusContent.WriteString(fmt.Sprintf("Board: %dx%d @ %d tps\n", cfg.Columns, cfg.Rows, cfg.TicksPerSecond))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", strings.TrimSpace(headRunes[snap.Direction])))

	if m.resetFlash > 0 {
		statusContent.WriteString("\n" + flashStyle.Render("Ouch! Back to the center.") + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString(strings.Join(m.keys.helpLines(), "\n") + "\n")

	return statusContent.String()
}

func (m GameModel) listenForGameUpdates() tea.Cmd {
	updates := m.gameManager.UpdateChannel
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return GameStoppedMsg{}
		}
		return msg
	}
}
