// Package play runs an interactive quiz attempt in the terminal.
package play

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/attempt"
	"quizdeck/internal/session"
)

// Options configures the quiz program.
type Options struct {
	NoColor bool
	// Context bounds the snapshot write on finish.
	Context context.Context
}

// Model is the Bubble Tea model over one quiz session.
type Model struct {
	session  *session.Session
	ctx      context.Context
	keys     keyMap
	help     help.Model
	progress progress.Model
	noColor  bool
	width    int

	cursor    int
	lastIndex int
	saving    bool
	saved     bool
	saveErr   error
	// quitting holds a quit requested while the snapshot write runs.
	quitting  bool
}

// NewModel constructs a model for a session that has already been started
// or opened on a finished result.
func NewModel(s *session.Session, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	h := help.New()
	if opts.NoColor {
		bar = progress.New(progress.WithoutPercentage())
		bar.Full, bar.Empty = '#', '.'
		bar.FullColor, bar.EmptyColor = "", ""
		h.Styles = plainHelpStyles()
	}
	return Model{
		session:   s,
		ctx:       ctx,
		keys:      defaultKeyMap(),
		help:      h,
		progress:  bar,
		noColor:   opts.NoColor,
		lastIndex: s.CurrentIndex(),
	}
}

func plainHelpStyles() help.Styles {
	plain := lipgloss.NewStyle()
	return help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// savedMsg reports the outcome of the finish-time snapshot write.
type savedMsg struct {
	err error
}

// Update applies key presses to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		m.progress.Width = max(min(typed.Width-20, 60), 10)
		return m, nil
	case savedMsg:
		m.saving = false
		m.saved = typed.err == nil
		m.saveErr = typed.err
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	before := s.Status()
	keys := m.keys.forStatus(before == attempt.StatusFinished)

	switch {
	case key.Matches(msg, keys.Quit):
		if m.saving {
			m.quitting = true
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if q := s.CurrentQuestion(); q != nil && m.cursor < len(q.Choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select):
		if q := s.CurrentQuestion(); q != nil && m.cursor < len(q.Choices) {
			s.Select(q.Choices[m.cursor].ID)
		}
	case key.Matches(msg, keys.Confirm):
		if before == attempt.StatusRunning {
			if s.CanCheck() {
				s.GoToReview()
			}
		} else {
			s.Next()
		}
	case key.Matches(msg, keys.Prev):
		s.Prev()
	case key.Matches(msg, keys.Next):
		s.Next()
	case key.Matches(msg, keys.Finish):
		s.FinishIfPossible()
	case key.Matches(msg, keys.Restart):
		if m.saving {
			return m, nil
		}
		if state := s.State(); state.Quiz != nil {
			s.Start(*state.Quiz)
			m.saved, m.saveErr = false, nil
		}
	}

	if s.CurrentIndex() != m.lastIndex {
		m.cursor = 0
		m.lastIndex = s.CurrentIndex()
	}
	if before != attempt.StatusFinished && s.Status() == attempt.StatusFinished {
		m.saving = true
		return m, saveRun(m.ctx, s)
	}
	return m, nil
}

func saveRun(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: s.SaveRun(ctx)}
	}
}

// SaveErr returns the error of the last snapshot write, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.session
	var body string
	if s.Status() == attempt.StatusFinished {
		body = m.renderFinished()
	} else {
		body = m.renderQuestion()
	}
	keys := m.keys.forStatus(s.Status() == attempt.StatusFinished)
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(keys))
}
