package play

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/attempt"
	"quizdeck/internal/quiz"
)

const promptLimit = 40

// resultColumns returns the result table columns.
func resultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: promptLimit},
		{Title: "Your answer", Width: 18},
		{Title: "Correct", Width: 18},
		{Title: "Result", Width: 10},
	}
}

// tableStyles returns table styles for the result view.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Header = lipgloss.NewStyle().Padding(0, 1)
		styles.Cell = lipgloss.NewStyle().Padding(0, 1)
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Foreground(lipgloss.Color("252"))
	styles.Selected = lipgloss.NewStyle()
	return styles
}

// ResultRows converts per-question outcomes into table rows.
func ResultRows(results []attempt.QuestionResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, result := range results {
		rows = append(rows, table.Row{
			strconv.Itoa(result.Index + 1),
			truncate(result.Question.Prompt, promptLimit),
			choiceTexts(result.Question, result.Selected),
			choiceTexts(result.Question, result.Question.CorrectChoiceIDs),
			string(result.Outcome),
		})
	}
	return rows
}

// RenderResults renders outcomes as a static table.
func RenderResults(results []attempt.QuestionResult, noColor bool) string {
	rows := ResultRows(results)
	t := table.New(
		table.WithColumns(resultColumns()),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithStyles(tableStyles(noColor)),
		table.WithHeight(len(rows)+2),
	)
	return t.View()
}

func choiceTexts(q quiz.Question, ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		if choice, ok := q.Choice(id); ok {
			texts = append(texts, choice.Text)
		} else {
			texts = append(texts, id)
		}
	}
	return strings.Join(texts, ", ")
}

// truncate shortens text to limit runes.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}
