package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lazygcdevs/todo-tui/internal/api"
	"github.com/lazygcdevs/todo-tui/internal/model"
	"github.com/lazygcdevs/todo-tui/tests/testutil"
)

func TestListTodos(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Seed(
		model.Todo{ID: "a", Title: "First"},
		model.Todo{ID: "b", Title: "Second", Completed: true},
	)
	client := srv.Client(t)

	todos, err := client.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos() error = %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("ListTodos() returned %d todos, want 2", len(todos))
	}
	if todos[0].ID != "a" || todos[1].ID != "b" {
		t.Errorf("ListTodos() order = [%s %s], want [a b]", todos[0].ID, todos[1].ID)
	}
	if !todos[1].Completed {
		t.Error("ListTodos() lost the completed flag")
	}
}

func TestCreateTodo(t *testing.T) {
	srv := testutil.NewServer(t)
	client := srv.Client(t)

	todo, err := client.CreateTodo(context.Background(), api.CreateTodoRequest{
		Title:       "Buy milk",
		Description: "2 liters",
	})
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	if todo.ID == "" {
		t.Error("CreateTodo() returned a record without a server-assigned ID")
	}
	if todo.Title != "Buy milk" || todo.Description != "2 liters" {
		t.Errorf("CreateTodo() = %+v, want submitted fields echoed back", todo)
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("CreateTodo() returned zero timestamps")
	}
}

func TestUpdateTodoPartialBody(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Seed(model.Todo{ID: "a", Title: "First"})
	client := srv.Client(t)

	completed := true
	_, err := client.UpdateTodo(context.Background(), "a", api.UpdateTodoRequest{
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("UpdateTodo() error = %v", err)
	}

	body := srv.LastBody()
	if !strings.Contains(body, "completed") {
		t.Errorf("update body %q missing completed field", body)
	}
	if strings.Contains(body, "title") || strings.Contains(body, "description") {
		t.Errorf("update body %q contains fields that were not provided", body)
	}
}

func TestUpdateTodoReassignsTimestamp(t *testing.T) {
	srv := testutil.NewServer(t)
	t0 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	srv.Seed(model.Todo{ID: "a", Title: "First", UpdatedAt: t0})
	client := srv.Client(t)

	title := "Renamed"
	todo, err := client.UpdateTodo(context.Background(), "a", api.UpdateTodoRequest{
		Title: &title,
	})
	if err != nil {
		t.Fatalf("UpdateTodo() error = %v", err)
	}
	if !todo.UpdatedAt.After(t0) {
		t.Errorf("UpdatedAt = %v, want later than %v", todo.UpdatedAt, t0)
	}
	if todo.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", todo.Title, "Renamed")
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	srv := testutil.NewServer(t)
	client := srv.Client(t)

	completed := true
	_, err := client.UpdateTodo(context.Background(), "missing", api.UpdateTodoRequest{
		Completed: &completed,
	})
	if err == nil {
		t.Fatal("UpdateTodo() on missing record expected error, got nil")
	}
}

func TestDeleteTodo(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Seed(
		model.Todo{ID: "a", Title: "First"},
		model.Todo{ID: "b", Title: "Second"},
	)
	client := srv.Client(t)

	if err := client.DeleteTodo(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}

	remaining := srv.Todos()
	if len(remaining) != 1 || remaining[0].ID != "b" {
		t.Errorf("server todos after delete = %+v, want only b", remaining)
	}

	if err := client.DeleteTodo(context.Background(), "a"); err == nil {
		t.Error("DeleteTodo() on missing record expected error, got nil")
	}
}

func TestNon2xxIsUniformFailure(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Seed(model.Todo{ID: "a", Title: "First"})
	client := srv.Client(t)

	statuses := []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusInternalServerError,
		http.StatusBadGateway,
	}
	for _, status := range statuses {
		srv.FailWith(status)
		if _, err := client.ListTodos(context.Background()); err == nil {
			t.Errorf("ListTodos() with status %d expected error, got nil", status)
		}
	}
}

func TestSessionCookieAuth(t *testing.T) {
	srv := testutil.NewServer(t)

	// A client without a session gets a typed auth error.
	anon, err := api.NewClient(srv.URL, "", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	_, err = anon.ListTodos(context.Background())
	if err == nil {
		t.Fatal("ListTodos() without session expected error, got nil")
	}
	if !api.IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false, want true", err)
	}

	// The authenticated client's cookie jar carries the session.
	if _, err := srv.Client(t).ListTodos(context.Background()); err != nil {
		t.Errorf("ListTodos() with session error = %v", err)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := api.NewClient("://not-a-url", "", 0); err == nil {
		t.Error("NewClient() with invalid URL expected error, got nil")
	}
}
