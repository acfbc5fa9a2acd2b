package app

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazygcdevs/todo-tui/internal/api"
	"github.com/lazygcdevs/todo-tui/internal/model"
)

// todosLoadedMsg carries the result of a full collection fetch.
type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

// todoCreatedMsg carries the server's record for a created todo.
type todoCreatedMsg struct {
	todo *model.Todo
	err  error
}

// todoToggledMsg carries the result of a completion toggle. prev is the
// full record as it was before the optimistic flip; on failure it is
// restored verbatim.
type todoToggledMsg struct {
	prev model.Todo
	todo *model.Todo
	err  error
}

// todoUpdatedMsg carries the result of a field edit.
type todoUpdatedMsg struct {
	id   string
	todo *model.Todo
	err  error
}

// todoDeletedMsg carries the result of a delete.
type todoDeletedMsg struct {
	id  string
	err error
}

// loadTodos fetches the full collection from the server. The local
// collection is only replaced when the fetch succeeds.
func (m *Model) loadTodos() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		todos, err := c.ListTodos(context.Background())
		if err != nil {
			return todosLoadedMsg{err: err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

// createTodo sends a create request. Returns nil without issuing any
// request when the title is empty or whitespace-only.
func (m *Model) createTodo(title, description string) tea.Cmd {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	c := m.client
	return func() tea.Msg {
		todo, err := c.CreateTodo(context.Background(), api.CreateTodoRequest{
			Title:       title,
			Description: description,
		})
		if err != nil {
			return todoCreatedMsg{err: err}
		}
		return todoCreatedMsg{todo: todo}
	}
}

// startToggle flips the record's completion flag locally (optimistic) and
// returns the command that persists the new value. The prior record is
// snapshotted into the result message so a failed request restores the
// exact pre-toggle state rather than re-flipping it.
func (m *Model) startToggle(id string) tea.Cmd {
	i := m.findTodo(id)
	if i < 0 {
		return nil
	}
	prev := m.todos[i]
	completed := !prev.Completed
	m.todos[i].Completed = completed

	c := m.client
	return func() tea.Msg {
		todo, err := c.UpdateTodo(context.Background(), id, api.UpdateTodoRequest{
			Completed: &completed,
		})
		if err != nil {
			return todoToggledMsg{prev: prev, err: err}
		}
		return todoToggledMsg{prev: prev, todo: todo}
	}
}

// updateTodo sends a field edit for the given record. This path is not
// optimistic: local state changes only after the server confirms.
func (m *Model) updateTodo(id, title, description string) tea.Cmd {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	c := m.client
	return func() tea.Msg {
		todo, err := c.UpdateTodo(context.Background(), id, api.UpdateTodoRequest{
			Title:       &title,
			Description: &description,
		})
		if err != nil {
			return todoUpdatedMsg{id: id, err: err}
		}
		return todoUpdatedMsg{id: id, todo: todo}
	}
}

// deleteTodo sends a delete request. The local record is removed only
// after the server confirms.
func (m *Model) deleteTodo(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{id: id, err: err}
	}
}

// findTodo returns the index of the record with the given ID, or -1.
func (m *Model) findTodo(id string) int {
	for i := range m.todos {
		if m.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// removeTodo deletes exactly the record with the given ID from the
// collection, preserving the order of the rest.
func (m *Model) removeTodo(id string) {
	i := m.findTodo(id)
	if i < 0 {
		return
	}
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
}
