package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gametimer/internal/core/model"
	"gametimer/internal/core/timekeeper"
)

const idleTitle = "!!!pick a game!!!"

// Engine is the part of the timer engine the terminal drives.
type Engine interface {
	Snapshot() timekeeper.Snapshot
	Select(name string) error
	Start() error
	Pause() error
	AddActivity(name string) (string, error)
	RemoveActivity(name string) error
	EditTotal(name string, seconds int64) error
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirmRemove
)

// dispatchMsg carries a function to run on the program's update goroutine.
type dispatchMsg func()

// eventMsg wraps an engine event.
type eventMsg timekeeper.Event

// eventsClosedMsg reports that the engine closed its observer channel.
type eventsClosedMsg struct{}

// Dispatcher returns a timekeeper.Dispatcher that delivers each tick through
// send, normally (*tea.Program).Send.
func Dispatcher(send func(tea.Msg)) timekeeper.Dispatcher {
	return func(fn func()) {
		send(dispatchMsg(fn))
	}
}

// Model is the bubbletea model of the terminal frontend.
type Model struct {
	engine   Engine
	events   <-chan timekeeper.Event
	snapshot timekeeper.Snapshot

	cursor  int
	mode    mode
	input   textinput.Model
	target  string
	status string
	width  int
}

// New builds the model. events may be nil.
func New(engine Engine, events <-chan timekeeper.Event, warnings []error) Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	m := Model{
		engine: engine,
		events: events,
		input:  input,
	}
	if len(warnings) > 0 {
		m.setError(errors.Join(warnings...))
	}
	m.refresh()
	m.cursor = m.indexOf(m.snapshot.Selected)
	return m
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles keys, ticks and engine events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		m.refresh()
		return m, nil
	case eventMsg:
		if msg.Type == timekeeper.EventWarning && msg.Err != nil {
			m.setError(fmt.Errorf("failed to save games: %w", msg.Err))
		}
		m.refresh()
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmRemove:
			return m.updateConfirm(msg), nil
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snapshot.Activities)-1 {
			m.cursor++
		}
	case "enter":
		if name, ok := m.cursorName(); ok {
			m.report(m.engine.Select(name))
		}
	case " ":
		if m.snapshot.Running {
			m.report(m.engine.Pause())
		} else {
			m.report(m.engine.Start())
		}
	case "a":
		if m.snapshot.Running {
			m.setError(errors.New("pause the timer before adding a game"))
			break
		}
		return m.beginInput(modeAdd, "", "Game name: ")
	case "e":
		name, ok := m.cursorName()
		if !ok {
			break
		}
		if m.snapshot.Running && name == m.snapshot.Selected {
			m.setError(errors.New("pause the timer before editing its time"))
			break
		}
		m.target = name
		return m.beginInput(modeEdit, strconv.FormatInt(m.totalOf(name), 10), "Seconds: ")
	case "d":
		if m.snapshot.Running {
			m.setError(errors.New("pause the timer before removing a game"))
			break
		}
		if name, ok := m.cursorName(); ok {
			m.target = name
			m.mode = modeConfirmRemove
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) beginInput(next mode, value, prompt string) (tea.Model, tea.Cmd) {
	m.mode = next
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeAdd:
			if value == "" {
				m.setError(errors.New("game name cannot be empty"))
				return m, nil
			}
			_, err := m.engine.AddActivity(value)
			m.report(err)
		case modeEdit:
			seconds, err := strconv.ParseInt(value, 10, 64)
			if err != nil || seconds < 0 {
				m.setError(errors.New("enter a whole, non-negative number of seconds"))
				return m, nil
			}
			m.report(m.engine.EditTotal(m.target, seconds))
		}
		m.endInput()
		m.refresh()
		m.cursor = m.indexOf(m.snapshot.Selected)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.target = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		m.report(m.engine.RemoveActivity(m.target))
	case "n", "N", "esc":
	default:
		return m
	}
	m.mode = modeBrowse
	m.target = ""
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.snapshot = m.engine.Snapshot()
	if m.cursor >= len(m.snapshot.Activities) {
		m.cursor = len(m.snapshot.Activities) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, model.ErrDuplicateActivity) {
		m.setError(errors.New("game already exists"))
		return
	}
	m.setError(err)
}

func (m *Model) setError(err error) {
	m.status = err.Error()
}

func (m Model) cursorName() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Activities) {
		return "", false
	}
	return m.snapshot.Activities[m.cursor].Name, true
}

func (m Model) indexOf(name string) int {
	for index, activity := range m.snapshot.Activities {
		if activity.Name == name {
			return index
		}
	}
	return m.cursor
}

func (m Model) totalOf(name string) int64 {
	for _, activity := range m.snapshot.Activities {
		if activity.Name == name {
			return activity.TotalSeconds
		}
	}
	return 0
}

// View renders the timer, the activity list and the key help.
func (m Model) View() string {
	snapshot := m.snapshot

	var name string
	if snapshot.Selected == "" {
		name = idleTitleStyle.Render(idleTitle)
	} else {
		name = titleStyle.Render(snapshot.Selected)
	}

	totalStyle := pausedStyle
	if snapshot.Running {
		totalStyle = runningStyle
	}
	timer := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		name,
		totalStyle.Render(model.FormatElapsed(snapshot.Total)),
		sessionStyle.Render("Session: "+model.FormatElapsed(snapshot.Session)),
	))

	var rows []string
	if len(snapshot.Activities) == 0 {
		rows = append(rows, helpStyle.Render("no games yet, press a to add one"))
	}
	for index, activity := range snapshot.Activities {
		pointer := "  "
		if index == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%-24s %10s", activity.Name, model.FormatElapsed(activity.TotalSeconds))
		if activity.Name == snapshot.Selected {
			line = selectedRowStyle.Render(line)
		}
		rows = append(rows, pointer+line)
	}
	list := boxStyle.Render(strings.Join(rows, "\n"))

	sections := []string{timer, list}
	switch m.mode {
	case modeAdd, modeEdit:
		sections = append(sections, m.input.View())
	case modeConfirmRemove:
		sections = append(sections, fmt.Sprintf("Are you sure you want to remove %s? (y/n)", m.target))
	}
	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}
	sections = append(sections, helpStyle.Render(m.help()))

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view + "\n"
}

func (m Model) help() string {
	switch m.mode {
	case modeAdd, modeEdit:
		return "enter confirm • esc cancel"
	case modeConfirmRemove:
		return "y remove • n keep"
	}
	return "↑/↓ move • enter select • space start/pause • a add • e edit • d remove • q quit"
}
