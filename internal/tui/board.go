package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/usecase"
)

// KeyMap defines the board key bindings.
type KeyMap struct {
	Refresh    key.Binding
	ShowClosed key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ShowClosed: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle closed"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// msgTasksLoaded delivers a fresh task list to the model.
type msgTasksLoaded struct {
	tasks []domain.ScheduledTask
}

// msgError delivers a load failure to the model.
type msgError struct {
	err error
}

// Lister is the slice of the task use cases the board needs.
type Lister interface {
	Execute(ctx context.Context, in usecase.ListTasksInput) (*usecase.ListTasksOutput, error)
}

// Model is the bubbletea model for the task board.
type Model struct {
	lister     Lister
	clock      domain.Clock
	err        error
	keys       KeyMap
	styles     Styles
	taskList   list.Model
	width      int
	height     int
	showClosed bool
}

// New creates a new board model.
func New(lister Lister, clock domain.Clock) *Model {
	styles := DefaultStyles()
	delegate := newTaskDelegate(styles, clock.Now())

	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetFilteringEnabled(true)
	taskList.DisableQuitKeybindings()

	return &Model{
		lister:   lister,
		clock:    clock,
		keys:     DefaultKeyMap(),
		styles:   styles,
		taskList: taskList,
	}
}

// Init loads the initial task list.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

func (m *Model) loadTasks() tea.Cmd {
	includeClosed := m.showClosed
	return func() tea.Msg {
		out, err := m.lister.Execute(context.Background(), usecase.ListTasksInput{
			IncludeClosed: includeClosed,
		})
		if err != nil {
			return msgError{err: err}
		}
		return msgTasksLoaded{tasks: out.Tasks}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header and help line take three rows.
		m.taskList.SetSize(msg.Width-4, msg.Height-5)
		return m, nil

	case msgTasksLoaded:
		m.err = nil
		items := make([]list.Item, 0, len(msg.tasks))
		for _, task := range msg.tasks {
			items = append(items, taskItem{task: task})
		}
		return m, m.taskList.SetItems(items)

	case msgError:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.taskList.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadTasks()
		case key.Matches(msg, m.keys.ShowClosed):
			m.showClosed = !m.showClosed
			return m, m.loadTasks()
		}
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

// View renders the board.
func (m *Model) View() string {
	header := m.styles.Header.Render("Scheduled Tasks")
	if m.showClosed {
		header += m.styles.Status.Render("  (including closed)")
	}

	body := m.taskList.View()
	if m.err != nil {
		body = m.styles.Error.Render(fmt.Sprintf("error: %v", m.err))
	}

	help := m.styles.Help.Render("r refresh - a toggle closed - / filter - q quit")
	return m.styles.App.Render(header + "\n\n" + body + "\n" + help)
}
