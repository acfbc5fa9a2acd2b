package todolist

import (
	"testing"

	"github.com/lazygcdevs/todo-tui/internal/model"
)

func testTodos() []model.Todo {
	return []model.Todo{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second", Completed: true},
		{ID: "c", Title: "Third"},
	}
}

func TestSetTodosPreservesOrder(t *testing.T) {
	m := New(80, 24)
	m.SetTodos(testTodos())

	items := m.list.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		got := items[i].(TodoItem).Todo.ID
		if got != want {
			t.Errorf("items[%d].ID = %q, want %q", i, got, want)
		}
	}
}

func TestHideCompletedFilter(t *testing.T) {
	m := New(80, 24)
	m.SetTodos(testTodos())

	m.ToggleHideCompleted()
	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 with completed hidden", len(items))
	}
	for _, it := range items {
		if it.(TodoItem).Todo.Completed {
			t.Error("completed record still visible with filter on")
		}
	}

	m.ToggleHideCompleted()
	if len(m.list.Items()) != 3 {
		t.Errorf("items = %d, want all 3 after filter off", len(m.list.Items()))
	}
}

func TestSelectedTodo(t *testing.T) {
	m := New(80, 24)

	if _, ok := m.SelectedTodo(); ok {
		t.Error("SelectedTodo() on empty list = ok, want none")
	}

	m.SetTodos(testTodos())
	todo, ok := m.SelectedTodo()
	if !ok {
		t.Fatal("SelectedTodo() = none, want the first record")
	}
	if todo.ID != "a" {
		t.Errorf("SelectedTodo().ID = %q, want a", todo.ID)
	}
}
