package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
)

// sourced is implemented by services persisted in a watchable file.
type sourced interface {
	Source() string
}

// Run starts the interactive view on in/out and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer, log *slog.Logger) error {
	m := New(ctx, svc)

	if s, ok := svc.(sourced); ok && s.Source() != "" {
		w, err := Watch(s.Source(), log)
		if err != nil {
			log.Warn("live reload disabled", "error", err)
		} else {
			defer w.Close()
			m.WithChanges(w.Changes())
		}
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
