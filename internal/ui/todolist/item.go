package todolist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazygcdevs/todo-tui/internal/model"
	"github.com/lazygcdevs/todo-tui/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoItem) Title() string { return i.Todo.Title }

// Description returns a short summary line for the list.
func (i TodoItem) Description() string {
	return i.Todo.Description
}

// TodoDelegate implements list.ItemDelegate for rendering todo items.
type TodoDelegate struct{}

// Height returns the number of lines each item takes.
func (d TodoDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TodoDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TodoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d TodoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	todoItem, ok := item.(TodoItem)
	if !ok {
		return
	}

	t := todoItem.Todo
	isSelected := index == m.Index()

	var prefix string
	if t.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	title := t.Title
	if t.Completed {
		title = theme.DimmedStyle.Render(title)
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(t.UpdatedAt))

	line := fmt.Sprintf("%s %s  %s", prefix, title, timeStr)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
