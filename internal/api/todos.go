package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lazygcdevs/todo-tui/internal/model"
)

// todosEnvelope wraps the GET /todos response.
type todosEnvelope struct {
	Todos []model.Todo `json:"todos"`
}

// todoEnvelope wraps single-record responses.
type todoEnvelope struct {
	Todo model.Todo `json:"todo"`
}

// CreateTodoRequest is the POST /todos body.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateTodoRequest is the PUT /todos/{id} body. Fields are pointers so
// that only the fields the caller provides are serialized; the server
// leaves absent fields untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListTodos fetches the full current collection.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var env todosEnvelope
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &env); err != nil {
		return nil, err
	}
	return env.Todos, nil
}

// CreateTodo creates a new todo and returns the server's record,
// including the server-assigned ID and timestamps.
func (c *Client) CreateTodo(
	ctx context.Context,
	req CreateTodoRequest,
) (*model.Todo, error) {
	var env todoEnvelope
	if err := c.do(ctx, http.MethodPost, "/todos", req, &env); err != nil {
		return nil, err
	}
	return &env.Todo, nil
}

// UpdateTodo applies a partial update and returns the server's
// authoritative record.
func (c *Client) UpdateTodo(
	ctx context.Context,
	id string,
	req UpdateTodoRequest,
) (*model.Todo, error) {
	var env todoEnvelope
	path := "/todos/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, req, &env); err != nil {
		return nil, err
	}
	return &env.Todo, nil
}

// DeleteTodo removes a todo. The response body is empty.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	path := "/todos/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
