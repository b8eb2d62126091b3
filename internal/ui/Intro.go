package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introPlay = iota
	introAutopilot
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Play, 1: Autopilot
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introPlay, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			// two buttons, so every move toggles
			m.selected = 1 - m.selected
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		}
	}
	return m, nil
}

var snakeAscii = `
   ____  ____   ___  ____     ____   _   _     _     _  __  _____
  / ___||  _ \ |_ _||  _ \   / ___| | \ | |   / \   | |/ / | ____|
 | |  _ | |_) | | | | | | |  \___ \ |  \| |  / _ \  | ' /  |  _|
 | |_| ||  _ <  | | | |_| |   ___) || |\  | / ___ \ | . \  | |___
  \____||_| \_\|___||____/   |____/ |_| \_|/_/   \_\|_|\_\ |_____|

        ██████████████████▶          ●
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("46")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(snakeAscii))
	sb.WriteString("\n")

	play := introButtonStyle.Render("Play")
	autopilot := introButtonStyle.Render("Watch Autopilot")

	if m.selected == introPlay {
		play = introSelectedButtonStyle.Render("Play")
	} else {
		autopilot = introSelectedButtonStyle.Render("Watch Autopilot")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, play, autopilot)
	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
