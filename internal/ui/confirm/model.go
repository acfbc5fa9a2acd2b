package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazygcdevs/todo-tui/internal/theme"
)

// ConfirmedMsg is dispatched when the user approves the destructive action.
type ConfirmedMsg struct{}

// CancelledMsg is dispatched when the user backs out.
type CancelledMsg struct{}

// Model is a confirmation prompt shown before destructive actions.
type Model struct {
	form      *huh.Form
	confirmed *bool
	prompt    string
	width     int
	height    int
}

// New creates a new confirmation model.
func New(width, height int) Model {
	return Model{
		width:  width,
		height: height,
	}
}

// Start initializes the prompt. The default answer is "no".
func (m *Model) Start(prompt string) tea.Cmd {
	m.prompt = prompt
	m.confirmed = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmed),
		),
	)
	return m.form.Init()
}

// Update handles messages for the confirmation prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		confirmed := m.confirmed != nil && *m.confirmed
		return m, func() tea.Msg {
			if confirmed {
				return ConfirmedMsg{}
			}
			return CancelledMsg{}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, cmd
}

// View renders the confirmation prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.form.View())

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the prompt dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
