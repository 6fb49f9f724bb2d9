package play

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quizdeck/internal/session"
)

// Run drives s interactively until the user quits. It returns the snapshot
// write error, if the attempt finished and saving failed.
func Run(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	model := NewModel(s, opts)
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	}
	if in != nil {
		programOpts = append(programOpts, tea.WithInput(in))
	}
	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return fmt.Errorf("run quiz ui: %w", err)
	}
	if finished, ok := final.(Model); ok && finished.SaveErr() != nil {
		return fmt.Errorf("save run: %w", finished.SaveErr())
	}
	return nil
}
