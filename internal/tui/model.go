// Package tui is the interactive task list view.
//
// Model.Update is the state transition: it applies a key press to the
// Store and the selected filter. Model.View renders the result and has no
// side effects.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const (
	helpText     = "a add  space toggle  d delete  f filter  1/2/3 all/pending/completed  q quit"
	inputHelp    = "enter save  esc cancel"
	inputPrompt  = "New task: "
	cursorMarker = "> "
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeAdding
)

// reloadMsg reports that the persisted list changed outside this process.
type reloadMsg struct{}

// Model holds the view state. The task list itself is owned by svc.
type Model struct {
	ctx     context.Context
	svc     service.Service
	changes <-chan struct{}

	filter task.FilterMode
	cursor int
	mode   inputMode
	input  []rune
	status string
	width  int
}

// New returns a Model showing all tasks of svc.
func New(ctx context.Context, svc service.Service) *Model {
	return &Model{ctx: ctx, svc: svc, filter: task.All}
}

// WithChanges makes the model reload svc whenever changes fires.
func (m *Model) WithChanges(changes <-chan struct{}) *Model {
	m.changes = changes
	return m
}

// Filter returns the selected filter mode.
func (m *Model) Filter() task.FilterMode { return m.filter }

// Cursor returns the index of the selected task within Visible.
func (m *Model) Cursor() int { return m.cursor }

// Adding reports whether the text input is open.
func (m *Model) Adding() bool { return m.mode == modeAdding }

// Status returns the last status line.
func (m *Model) Status() string { return m.status }

// Visible returns the tasks shown under the current filter.
func (m *Model) Visible() []task.Task {
	return task.Visible(m.svc.Tasks(), m.filter)
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case reloadMsg:
		m.svc.Load(m.ctx)
		m.clampCursor()
		return m, m.waitForChange()
	case tea.KeyMsg:
		if m.mode == modeAdding {
			return m, m.updateInput(msg)
		}
		return m, m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.Visible()) - 1
	case " ", "x", "enter":
		if t, ok := m.selected(); ok {
			if toggled, ok := m.svc.Toggle(m.ctx, t.ID); ok {
				if toggled.Completed {
					m.status = "completed: " + output.NormalizeText(toggled.Text)
				} else {
					m.status = "reopened: " + output.NormalizeText(toggled.Text)
				}
			}
		}
	case "d", "delete":
		if t, ok := m.selected(); ok && m.svc.Remove(m.ctx, t.ID) {
			m.status = "deleted: " + output.NormalizeText(t.Text)
		}
	case "a", "n":
		m.mode = modeAdding
		m.input = m.input[:0]
		m.status = ""
	case "f", "tab":
		m.setFilter(m.filter.Next())
	case "1":
		m.setFilter(task.All)
	case "2":
		m.setFilter(task.Pending)
	case "3":
		m.setFilter(task.Completed)
	}
	m.clampCursor()
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = m.input[:0]
	case tea.KeyEnter:
		m.mode = modeNormal
		if t, ok := m.svc.Add(m.ctx, string(m.input)); ok {
			m.status = "added: " + output.NormalizeText(t.Text)
			m.selectID(t.ID)
		}
		m.input = m.input[:0]
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	m.clampCursor()
	return nil
}

func (m *Model) setFilter(mode task.FilterMode) {
	if mode != m.filter {
		m.filter = mode
		m.cursor = 0
	}
}

func (m *Model) selected() (task.Task, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

// selectID moves the cursor onto id if it is visible.
func (m *Model) selectID(id int64) {
	for i, t := range m.Visible() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder

	tasks := m.svc.Tasks()
	visible := task.Visible(tasks, m.filter)
	done := len(task.Visible(tasks, task.Completed))

	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		titleStyle.Render("Tasks"),
		filterStyle.Render("["+m.filter.String()+"]"),
		mutedStyle.Render(fmt.Sprintf("%d/%d done", done, len(tasks))),
	)

	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render(output.EmptyMessage(m.filter)))
		b.WriteString("\n")
	}
	for i, t := range visible {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render(cursorMarker)
		}
		line := output.Mark(t) + " " + output.NormalizeText(t.Text)
		if t.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	if m.mode == modeAdding {
		b.WriteString(inputStyle.Render(inputPrompt+string(m.input)) + "█\n")
		b.WriteString(mutedStyle.Render(inputHelp))
	} else {
		if m.status != "" {
			b.WriteString(statusStyle.Render(m.status) + "\n")
		}
		b.WriteString(mutedStyle.Render(helpText))
	}
	b.WriteString("\n")
	return b.String()
}
