// Package output renders task lists for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"todo/internal/task"
)

const (
	// MarkDone and MarkPending prefix task text.
	MarkDone    = "[x]"
	MarkPending = "[ ]"
)

// Printer writes task lines, styled when the destination is a terminal.
type Printer struct {
	w       io.Writer
	styled  bool
	done    lipgloss.Style
	pending lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter returns a Printer for w. Styling is enabled only for terminals.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w, styled: isTerminal(w)}
	if p.styled {
		r := lipgloss.NewRenderer(w)
		p.done = r.NewStyle().Strikethrough(true).Faint(true)
		p.pending = r.NewStyle()
		p.muted = r.NewStyle().Faint(true)
	}
	return p
}

// Render writes the tasks visible under mode, numbered by their position in
// the full list so numbers stay valid as task references under any filter.
// When nothing is visible the empty-state message for mode is written
// instead, unless quiet is set.
// Render is idempotent: the output depends only on its arguments.
func (p *Printer) Render(tasks []task.Task, mode task.FilterMode, quiet bool) {
	visible := 0
	for i, t := range tasks {
		if !mode.Matches(t) {
			continue
		}
		p.FormatTask(i+1, t)
		visible++
	}
	if visible == 0 && !quiet {
		p.line(p.muted, EmptyMessage(mode))
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  {MARK} {TEXT}\n" (4-wide right-aligned number, two spaces, mark, text)
func (p *Printer) FormatTask(num int, t task.Task) {
	text := Mark(t) + " " + NormalizeText(t.Text)
	style := p.pending
	if t.Completed {
		style = p.done
	}
	fmt.Fprintf(p.w, "%4d  %s\n", num, p.style(style, text))
}

func (p *Printer) line(style lipgloss.Style, s string) {
	fmt.Fprintln(p.w, p.style(style, s))
}

func (p *Printer) style(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Mark returns the completion mark for t.
func Mark(t task.Task) string {
	if t.Completed {
		return MarkDone
	}
	return MarkPending
}

// EmptyMessage returns the message shown when no task is visible under mode.
func EmptyMessage(mode task.FilterMode) string {
	switch mode {
	case task.Completed:
		return "No completed tasks yet."
	case task.Pending:
		return "No pending tasks."
	default:
		return "No tasks yet. Add one to get started!"
	}
}

// NormalizeText normalizes task text for single-line display.
// - Newlines and tabs are replaced with spaces
// - Empty or whitespace-only text becomes "(untitled)"
func NormalizeText(text string) string {
	text = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(text)

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
