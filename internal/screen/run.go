package screen

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Run starts the screen and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		_, err := p.Run()
		return err
	})

	// Quit cleanly on cancellation so the terminal is restored.
	g.Go(func() error {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
		return nil
	})

	return g.Wait()
}
