package ui

import (
	"fmt"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// ResultScreen holds the local state for the screens shown once a game stops.
type ResultScreen struct {
	Err            error
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	resultButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = resultButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

func (r *ResultScreen) renderButtons() string {
	menuButton := resultButtonStyle.Render("MENU")
	exitButton := resultButtonStyle.Render("EXIT")

	if r.SelectedButton == 0 {
		menuButton = selectedButtonStyle.Render("MENU")
	} else {
		exitButton = selectedButtonStyle.Render("EXIT")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, menuButton, exitButton)
}

func (r *ResultScreen) place(title string, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Center, title, body, r.renderButtons())

	return lipgloss.Place(r.ScreenWidth, r.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderBoardClearedScreen is shown when the snake covers every cell.
func (r *ResultScreen) RenderBoardClearedScreen(snap game.Snapshot) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Padding(2, 5).
		Align(lipgloss.Center).
		Render("🐍 B O A R D   C L E A R E D 🐍")

	stats := fmt.Sprintf("\nFinal Stats:\nLength: %d of %d cells\nTicks: %d\nResets: %d\n",
		snap.Length, snap.Columns*snap.Rows, snap.Tick, snap.Resets)

	return r.place(title, stats)
}

// RenderFailureScreen is shown when the simulation stopped on an error.
func (r *ResultScreen) RenderFailureScreen() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(2, 5).
		Align(lipgloss.Center).
		Render("💀 G A M E   S T O P P E D 💀")

	body := "\nThe simulation hit an unrecoverable error.\n"
	if r.Err != nil {
		body += errorStyle.Render(r.Err.Error()) + "\n"
	}

	return r.place(title, body)
}
