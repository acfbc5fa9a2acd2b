package app

import (
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lazygcdevs/todo-tui/internal/api"
	"github.com/lazygcdevs/todo-tui/internal/keys"
	"github.com/lazygcdevs/todo-tui/internal/model"
	"github.com/lazygcdevs/todo-tui/internal/theme"
	"github.com/lazygcdevs/todo-tui/internal/ui"
	"github.com/lazygcdevs/todo-tui/internal/ui/command"
	"github.com/lazygcdevs/todo-tui/internal/ui/confirm"
	helpview "github.com/lazygcdevs/todo-tui/internal/ui/help"
	"github.com/lazygcdevs/todo-tui/internal/ui/todoform"
	"github.com/lazygcdevs/todo-tui/internal/ui/todolist"
)

// statusTTL is how long a transient status message stays visible.
const statusTTL = 5 * time.Second

// statusExpiredMsg is sent when a status message's auto-clear timer fires.
// It carries the message identity so a superseded timer is a no-op.
type statusExpiredMsg struct {
	id string
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTodoCreate
	ViewTodoEdit
	ViewConfirmDelete
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model. It owns the authoritative in-memory
// todo collection, orchestrates API calls, and routes between views. All
// collection mutations happen here, on the event loop.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *api.Client
	keys         *keys.KeyMap
	serverLabel  string

	// todos is the authoritative collection, in insertion order with the
	// newest created record first.
	todos []model.Todo

	todoList    todolist.Model
	formView    todoform.Model
	confirmView confirm.Model
	helpView    helpview.Model
	commandView command.Model

	deleteTarget model.Todo
	status       *model.StatusMessage
	spinner      spinner.Model
	loading      bool
	ready        bool
}

// New creates the root application model with the given API client.
func New(client *api.Client) Model {
	k := keys.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		currentView: ViewList,
		client:      client,
		keys:        k,
		serverLabel: serverLabel(client.BaseURL()),
		todoList:    todolist.New(80, 24),
		formView:    todoform.New(80, 24),
		confirmView: confirm.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		spinner:     sp,
		loading:     true,
	}
}

// serverLabel extracts a short display label from the API base URL.
func serverLabel(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

// Init starts the spinner and kicks off the initial collection load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTodos())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.todoList.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Previous collection stays as-is; no partial clears.
			log.Error("loading todos", "err", msg.err)
			return m, m.setStatus(model.MessageError, loadFailureText(msg.err))
		}
		m.todos = msg.todos
		return m, m.syncList()

	case todoCreatedMsg:
		if msg.err != nil {
			log.Error("creating todo", "err", msg.err)
			return m, m.setStatus(model.MessageError, "Could not create todo")
		}
		m.todos = append([]model.Todo{*msg.todo}, m.todos...)
		return m, tea.Batch(
			m.syncList(),
			m.setStatus(model.MessageSuccess, "Todo created"),
		)

	case todoToggledMsg:
		if msg.err != nil {
			// Restore the snapshot verbatim; recomputing the flip here
			// would double-negate under rapid repeated toggles.
			if i := m.findTodo(msg.prev.ID); i >= 0 {
				m.todos[i] = msg.prev
			}
			log.Error("toggling todo", "id", msg.prev.ID, "err", msg.err)
			return m, tea.Batch(
				m.syncList(),
				m.setStatus(model.MessageError, "Could not update todo"),
			)
		}
		// Reconcile with the server's record; it carries the new
		// update timestamp.
		if i := m.findTodo(msg.todo.ID); i >= 0 {
			m.todos[i] = *msg.todo
		}
		return m, m.syncList()

	case todoUpdatedMsg:
		if msg.err != nil {
			log.Error("updating todo", "id", msg.id, "err", msg.err)
			return m, m.setStatus(model.MessageError, "Could not update todo")
		}
		if i := m.findTodo(msg.id); i >= 0 {
			m.todos[i] = *msg.todo
		}
		return m, tea.Batch(
			m.syncList(),
			m.setStatus(model.MessageSuccess, "Todo updated"),
		)

	case todoDeletedMsg:
		if msg.err != nil {
			log.Error("deleting todo", "id", msg.id, "err", msg.err)
			return m, m.setStatus(model.MessageError, "Could not delete todo")
		}
		m.removeTodo(msg.id)
		return m, tea.Batch(
			m.syncList(),
			m.setStatus(model.MessageSuccess, "Todo deleted"),
		)

	case statusExpiredMsg:
		// Only the timer belonging to the displayed message clears it;
		// a newer message keeps its own timer.
		if m.status != nil && m.status.ID == msg.id {
			m.status = nil
		}
		return m, nil

	case todoform.SubmitCreateMsg:
		m.currentView = ViewList
		cmd := m.createTodo(msg.Title, msg.Description)
		if cmd == nil {
			// Rejected locally; no request was issued.
			return m, m.setStatus(model.MessageError, "Title must not be empty")
		}
		return m, cmd

	case todoform.SubmitEditMsg:
		m.currentView = ViewList
		cmd := m.updateTodo(msg.ID, msg.Title, msg.Description)
		if cmd == nil {
			return m, m.setStatus(model.MessageError, "Title must not be empty")
		}
		return m, cmd

	case todoform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case confirm.ConfirmedMsg:
		m.currentView = ViewList
		return m, m.deleteTodo(m.deleteTarget.ID)

	case confirm.CancelledMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil
			}

		case ":":
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewCommand
				return m, m.commandView.Focus()
			}

		case "n":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewTodoCreate
				return m, m.formView.StartCreate()
			}

		case "e":
			if m.currentView == ViewList {
				todo, ok := m.todoList.SelectedTodo()
				if ok {
					m.previousView = m.currentView
					m.currentView = ViewTodoEdit
					return m, m.formView.StartEdit(todo)
				}
			}

		case "x", " ":
			if m.currentView == ViewList {
				todo, ok := m.todoList.SelectedTodo()
				if ok {
					cmd := m.startToggle(todo.ID)
					return m, tea.Batch(m.syncList(), cmd)
				}
			}

		case "d":
			if m.currentView == ViewList {
				todo, ok := m.todoList.SelectedTodo()
				if ok {
					m.deleteTarget = todo
					m.previousView = m.currentView
					m.currentView = ViewConfirmDelete
					return m, m.confirmView.Start(
						fmt.Sprintf("Delete %q?", todo.Title),
					)
				}
			}

		case "r":
			if m.currentView == ViewList {
				return m, m.loadTodos()
			}

		case "H":
			if m.currentView == ViewList {
				return m, m.todoList.ToggleHideCompleted()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewTodoCreate, ViewTodoEdit:
		m.formView, cmd = m.formView.Update(msg)
	case ViewConfirmDelete:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// syncList pushes the authoritative collection into the list view.
func (m *Model) syncList() tea.Cmd {
	return m.todoList.SetTodos(m.todos)
}

// setStatus replaces the displayed message and starts its auto-clear
// timer. The previous message's timer becomes a no-op because the
// identity it carries no longer matches.
func (m *Model) setStatus(kind model.MessageKind, text string) tea.Cmd {
	msg := model.NewStatusMessage(kind, text)
	m.status = &msg
	id := msg.ID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// loadFailureText maps a load error to its fixed user-facing message.
func loadFailureText(err error) string {
	if api.IsAuthError(err) {
		return "Session expired; run todo-tui -session <value> to sign in"
	}
	return "Could not load todos"
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "reload", "refresh":
		return m, m.loadTodos()
	case "new", "new todo":
		m.previousView = m.currentView
		m.currentView = ViewTodoCreate
		return m, m.formView.StartCreate()
	case "hide completed", "toggle completed":
		return m, m.todoList.ToggleHideCompleted()
	case "quit", "q":
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Todos", m.serverLabel)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusBarContent())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	if m.loading && m.currentView == ViewList {
		return m.spinner.View() + " Loading todos..."
	}

	switch m.currentView {
	case ViewList:
		return m.todoList.View()
	case ViewTodoCreate, ViewTodoEdit:
		return m.formView.View()
	case ViewConfirmDelete:
		return m.confirmView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// statusBarContent returns the transient message when one is displayed,
// otherwise the keyboard hints for the current view.
func (m Model) statusBarContent() string {
	if m.status != nil {
		switch m.status.Kind {
		case model.MessageSuccess:
			return theme.SuccessMessageStyle.Render(m.status.Text)
		default:
			return theme.ErrorMessageStyle.Render(m.status.Text)
		}
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewTodoCreate, ViewTodoEdit:
		return "enter submit | esc cancel"
	case ViewConfirmDelete:
		return "enter confirm | esc cancel"
	default:
		return "q quit | ? help | n new | e edit | x toggle | d delete | r reload"
	}
}
