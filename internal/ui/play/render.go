package play

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/attempt"
	"quizdeck/internal/quiz"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCursor  = lipgloss.Color("212")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorPending = lipgloss.Color("220")
)

// renderQuestion renders the active question with its choices.
func (m Model) renderQuestion() string {
	s := m.session
	q := s.CurrentQuestion()
	if q == nil {
		return "No quiz loaded."
	}
	state := s.State()
	lines := []string{
		stylize(state.Quiz.Title, m.noColor, colorTitle, true),
		stylize(fmt.Sprintf("Question %d of %d", s.CurrentIndex()+1, s.Total()), m.noColor, colorMuted, false),
		m.renderProgress(),
		"",
		q.Prompt,
	}
	if q.IsMulti() {
		lines = append(lines, stylize("(select all that apply)", m.noColor, colorMuted, false))
	}
	lines = append(lines, "")

	reviewed := s.Status() == attempt.StatusReview
	selected := s.SelectedIDs()
	for i, choice := range q.Choices {
		lines = append(lines, m.renderChoice(*q, choice, i == m.cursor, slices.Contains(selected, choice.ID), reviewed))
	}

	if reviewed {
		lines = append(lines, "")
		if s.IsQuestionCorrect(*q) {
			lines = append(lines, stylize("Correct!", m.noColor, colorCorrect, true))
		} else {
			lines = append(lines, stylize("Not quite.", m.noColor, colorWrong, true))
		}
		if q.Explanation != "" {
			lines = append(lines, q.Explanation)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderChoice(q quiz.Question, choice quiz.Choice, atCursor, chosen, reviewed bool) string {
	pointer := "  "
	if atCursor && !reviewed {
		pointer = stylize("> ", m.noColor, colorCursor, false)
	}
	box := "( )"
	if chosen {
		box = "(*)"
	}
	if q.IsMulti() {
		box = "[ ]"
		if chosen {
			box = "[x]"
		}
	}
	line := pointer + box + " " + choice.Text
	if !reviewed {
		return line
	}
	correct := slices.Contains(q.CorrectChoiceIDs, choice.ID)
	switch {
	case correct:
		return stylize(line+"  ✓", m.noColor, colorCorrect, false)
	case chosen:
		return stylize(line+"  ✗", m.noColor, colorWrong, false)
	}
	return line
}

func (m Model) renderProgress() string {
	s := m.session
	pct := s.ProgressPct()
	label := fmt.Sprintf("%d/%d answered (%d%%)", s.AnsweredCount(), s.Total(), pct)
	return m.progress.ViewAs(float64(pct)/100) + " " + label
}

// renderFinished renders the score and the per-question results.
func (m Model) renderFinished() string {
	s := m.session
	state := s.State()
	lines := []string{
		stylize(state.Quiz.Title, m.noColor, colorTitle, true),
		stylize(ScoreLine(s.CorrectCount(), s.Total(), s.ScorePct()), m.noColor, scoreColor(s.ScorePct()), true),
		"",
		RenderResults(s.Results(), m.noColor),
	}
	switch {
	case m.saving && m.quitting:
		lines = append(lines, stylize("Saving result before quitting...", m.noColor, colorMuted, false))
	case m.saving:
		lines = append(lines, stylize("Saving result...", m.noColor, colorMuted, false))
	case m.saveErr != nil:
		lines = append(lines, stylize("Save failed: "+m.saveErr.Error(), m.noColor, colorWrong, false))
	case m.saved:
		lines = append(lines, stylize("Saved as last run.", m.noColor, colorMuted, false))
	}
	return strings.Join(lines, "\n")
}

// ScoreLine formats the final score.
func ScoreLine(correct, total, pct int) string {
	return fmt.Sprintf("Score: %d/%d (%d%%)", correct, total, pct)
}

func scoreColor(pct int) lipgloss.Color {
	switch {
	case pct >= 80:
		return colorCorrect
	case pct >= 50:
		return colorPending
	default:
		return colorWrong
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
