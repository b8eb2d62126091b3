package ui

import (
	"context"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Autopilot
type SetupSubmitMsg struct {
	Config game.Config
}
type SetupErrorMsg struct {
	Err error
}

// QuitGameMsg sends the controller back to the IntroScreen.
type QuitGameMsg struct{}

// GameFactory builds a ready to run game; autopilot attaches a pilot.
type GameFactory func(cfg game.Config, autopilot bool) (*game.GameManager, error)

type ControllerModel struct {
	CurrentScreen Screen

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int

	ctx        context.Context
	stopGame   context.CancelFunc
	baseConfig game.Config
	newGame    GameFactory
	autopilot  bool
}

func NewControllerModel(ctx context.Context, baseConfig game.Config, newGame GameFactory, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		IntroModel:    NewIntroModel(screenWidth, screenHeight),
		SetupModel:    NewInitialSetupModel(baseConfig, false, screenWidth, screenHeight),
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		ctx:           ctx,
		baseConfig:    baseConfig,
		newGame:       newGame,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global Key Check ---
	if msg, ok := msg.(tea.KeyMsg); ok {
		s := msg.String()
		if s == "ctrl+c" || (s == "q" && m.CurrentScreen != SetupScreen) {
			m.endGame()
			return m, tea.Quit
		}
		if s == "esc" && m.CurrentScreen == SetupScreen {
			m.CurrentScreen = IntroScreen
			return m, m.IntroModel.Init()
		}
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		m.autopilot = msg == introAutopilot
		m.CurrentScreen = SetupScreen
		m.SetupModel = NewInitialSetupModel(m.baseConfig, m.autopilot, m.ScreenWidth, m.ScreenHeight)
		return m, m.SetupModel.Init()

	case SetupSubmitMsg:
		gameManager, err := m.newGame(msg.Config, m.autopilot)
		if err != nil {
			log.Error("Could not create game", "error", err)
			m.SetupModel, cmd = m.SetupModel.Update(SetupErrorMsg{Err: err})
			return m, cmd
		}

		m.endGame()
		ctx, cancel := context.WithCancel(m.ctx)
		m.stopGame = cancel
		go func() {
			if err := gameManager.Run(ctx); err != nil {
				log.Error("Game loop ended with error", "error", err)
			}
		}()

		m.baseConfig = msg.Config
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(gameManager, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.endGame()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}

	// --- 3. Message Delegation ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	}

	return m, cmd
}

func (m *ControllerModel) endGame() {
	if m.stopGame != nil {
		m.stopGame()
		m.stopGame = nil
	}
}
