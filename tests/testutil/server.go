package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lazygcdevs/todo-tui/internal/api"
	"github.com/lazygcdevs/todo-tui/internal/model"
)

// Server is an in-memory fake of the remote todo service. It implements
// the four endpoints of the API, requires the session cookie, assigns IDs
// and timestamps the way the real service does, and supports failure
// injection for error-path tests.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	todos      []model.Todo
	nextID     int
	now        time.Time
	failStatus int
	requests   int
	lastBody   []byte
}

// NewServer starts a fake todo server. It is closed automatically when
// the test completes.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		nextID: 1,
		now:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Client returns an api.Client authenticated against this server.
func (s *Server) Client(t *testing.T) *api.Client {
	t.Helper()

	c, err := api.NewClient(s.URL, "test-session", 5*time.Second)
	if err != nil {
		t.Fatalf("creating test client: %v", err)
	}
	return c
}

// Seed replaces the server-side collection.
func (s *Server) Seed(todos ...model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]model.Todo{}, todos...)
}

// FailWith makes every subsequent request fail with the given status.
// Passing 0 restores normal behavior.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// RequestCount returns how many requests the server has received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// LastBody returns the raw body of the most recent request.
func (s *Server) LastBody() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.lastBody)
}

// Todos returns a copy of the server-side collection.
func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo{}, s.todos...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	body, _ := io.ReadAll(r.Body)
	s.lastBody = body

	if c, err := r.Cookie(api.SessionCookieName); err != nil || c.Value == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if s.failStatus != 0 {
		http.Error(w, "injected failure", s.failStatus)
		return
	}

	switch {
	case r.URL.Path == "/todos" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"todos": s.todos})

	case r.URL.Path == "/todos" && r.Method == http.MethodPost:
		s.handleCreate(w, body)

	case strings.HasPrefix(r.URL.Path, "/todos/") && r.Method == http.MethodPut:
		s.handleUpdate(w, strings.TrimPrefix(r.URL.Path, "/todos/"), body)

	case strings.HasPrefix(r.URL.Path, "/todos/") && r.Method == http.MethodDelete:
		s.handleDelete(w, strings.TrimPrefix(r.URL.Path, "/todos/"))

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, body []byte) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	s.now = s.now.Add(time.Second)
	todo := model.Todo{
		ID:          fmt.Sprintf("todo-%d", s.nextID),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}
	s.nextID++
	s.todos = append([]model.Todo{todo}, s.todos...)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"todo": todo})
}

func (s *Server) handleUpdate(w http.ResponseWriter, id string, body []byte) {
	i := s.find(id)
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}
		s.todos[i].Title = *req.Title
	}
	if req.Description != nil {
		s.todos[i].Description = *req.Description
	}
	if req.Completed != nil {
		s.todos[i].Completed = *req.Completed
	}

	s.now = s.now.Add(time.Second)
	s.todos[i].UpdatedAt = s.now

	writeJSON(w, http.StatusOK, map[string]interface{}{"todo": s.todos[i]})
}

func (s *Server) handleDelete(w http.ResponseWriter, id string) {
	i := s.find(id)
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// find returns the index of the todo with the given ID, or -1.
// Callers must hold the mutex.
func (s *Server) find(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
