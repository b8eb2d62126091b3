package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("46")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	fieldColumns = iota
	fieldRows
	fieldSpeed
	submitFocus
)

// SetupModel edits the board size and speed before a game starts.
type SetupModel struct {
	inputs     []textinput.Model
	focusIndex int
	base       game.Config
	autopilot  bool
	err        error
	width      int
	height     int
}

func newSetupInput(prompt string, value int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 3
	ti.Width = 5
	ti.SetValue(strconv.Itoa(value))
	ti.PromptStyle = blurredStyle
	ti.TextStyle = blurredStyle
	return ti
}

func NewInitialSetupModel(base game.Config, autopilot bool, w, h int) SetupModel {
	m := SetupModel{
		inputs: []textinput.Model{
			newSetupInput("Columns          ", base.Columns),
			newSetupInput("Rows             ", base.Rows),
			newSetupInput("Ticks per second ", base.TicksPerSecond),
		},
		base:      base,
		autopilot: autopilot,
		width:     w,
		height:    h,
	}
	m.focus(fieldColumns)
	return m
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SetupModel) focus(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = blurredStyle
			m.inputs[i].TextStyle = blurredStyle
		}
	}
}

// Config parses the form on top of the base config and validates it.
func (m SetupModel) Config() (game.Config, error) {
	cfg := m.base
	fields := []*int{&cfg.Columns, &cfg.Rows, &cfg.TicksPerSecond}
	for i, field := range fields {
		raw := strings.TrimSpace(m.inputs[i].Value())
		value, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %q is not a number", strings.TrimSpace(m.inputs[i].Prompt), raw)
		}
		*field = value
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SetupErrorMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "tab", "down":
			m.focus((m.focusIndex + 1) % (submitFocus + 1))
			return m, nil
		case "shift+tab", "up":
			m.focus((m.focusIndex + submitFocus) % (submitFocus + 1))
			return m, nil
		case "enter":
			if m.focusIndex != submitFocus {
				m.focus(m.focusIndex + 1)
				return m, nil
			}
			cfg, err := m.Config()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return SetupSubmitMsg{Config: cfg} }
		}

		if m.focusIndex < submitFocus {
			var cmd tea.Cmd
			m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	title := "New game"
	if m.autopilot {
		title = "New autopilot game"
	}
	b.WriteString(center(lipgloss.NewStyle().Bold(true).Render(title)))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(center(input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	submitText := "Start"
	var submitButton string
	if m.focusIndex == submitFocus {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(center(errorStyle.Render(m.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, enter to confirm, esc for menu, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
