package todolist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazygcdevs/todo-tui/internal/model"
	"github.com/lazygcdevs/todo-tui/internal/theme"
)

// Model is the todo list view component. It renders whatever collection
// the controller pushes into it and never mutates or reorders records.
type Model struct {
	list          list.Model
	todos         []model.Todo
	hideCompleted bool
	width         int
	height        int
}

// New creates a new todo list model.
func New(width, height int) Model {
	delegate := TodoDelegate{}
	l := list.New([]list.Item{}, delegate, width, height)
	l.Title = "Todos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetTodos replaces the rendered collection. Order is preserved as given;
// the hide-completed view filter is applied here without touching the
// caller's slice.
func (m *Model) SetTodos(todos []model.Todo) tea.Cmd {
	m.todos = todos

	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		if m.hideCompleted && t.Completed {
			continue
		}
		items = append(items, TodoItem{Todo: t})
	}
	return m.list.SetItems(items)
}

// ToggleHideCompleted flips the local view filter and re-renders.
func (m *Model) ToggleHideCompleted() tea.Cmd {
	m.hideCompleted = !m.hideCompleted
	return m.SetTodos(m.todos)
}

// SelectedTodo returns the currently focused todo, if any.
func (m Model) SelectedTodo() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// View renders the todo list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no todos are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.hideCompleted && len(m.todos) > 0 {
		return style.Render("All todos are completed.\nPress H to show them.")
	}

	return style.Render("No todos yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
