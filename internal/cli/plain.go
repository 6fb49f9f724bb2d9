package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"quizdeck/internal/attempt"
	"quizdeck/internal/quiz"
	"quizdeck/internal/session"
	"quizdeck/internal/ui/play"
)

const (
	promptRunning = "Choose by number (e.g. 1 or 1,3), enter=check, n=next, p=prev, f=finish, q=quit> "
	promptReview  = "enter=next, p=prev, f=finish, q=quit> "
)

// runPlain drives a started session with line prompts. The snapshot is saved
// once the attempt finishes; quitting early saves nothing.
func runPlain(ctx context.Context, s *session.Session, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch s.Status() {
		case attempt.StatusIdle:
			return fmt.Errorf("no quiz started")
		case attempt.StatusFinished:
			printResult(out, s)
			if err := s.SaveRun(ctx); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			fmt.Fprintln(out, "Saved as last run.")
			return nil
		}

		printQuestion(out, s)
		if s.Status() == attempt.StatusReview {
			fmt.Fprint(out, promptReview)
		} else {
			fmt.Fprint(out, promptRunning)
		}
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return err
		}
		if err == io.EOF && strings.TrimSpace(line) == "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Attempt abandoned.")
			return nil
		}
		if quit := applyPlainInput(out, s, strings.TrimSpace(line)); quit {
			fmt.Fprintln(out, "Attempt abandoned.")
			return nil
		}
		if err == io.EOF && s.Status() != attempt.StatusFinished {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Attempt abandoned.")
			return nil
		}
	}
}

// applyPlainInput applies one line of input. It reports true on quit.
func applyPlainInput(out io.Writer, s *session.Session, input string) bool {
	switch strings.ToLower(input) {
	case "q", "quit":
		return true
	case "n", "next":
		s.Next()
		return false
	case "p", "prev":
		s.Prev()
		return false
	case "f", "finish":
		s.FinishIfPossible()
		if s.Status() != attempt.StatusFinished {
			fmt.Fprintf(out, "Answer every question before finishing (%d/%d answered).\n", s.AnsweredCount(), s.Total())
		}
		return false
	case "":
		if s.Status() == attempt.StatusReview {
			s.Next()
		} else if s.CanCheck() {
			s.GoToReview()
		} else {
			fmt.Fprintln(out, "Pick a choice by number first.")
		}
		return false
	}

	q := s.CurrentQuestion()
	if q == nil {
		return false
	}
	picks, problem := parsePicks(input, len(q.Choices))
	if problem != "" {
		fmt.Fprintln(out, problem)
		return false
	}
	if !q.IsMulti() {
		if len(picks) != 1 {
			fmt.Fprintln(out, "Pick exactly one choice.")
			return false
		}
		s.SetSingle(q.Choices[picks[0]].ID)
		return false
	}
	for _, pick := range picks {
		s.ToggleMulti(q.Choices[pick].ID)
	}
	return false
}

// parsePicks turns "1,3" or "1 3" into zero-based choice indexes. A
// non-empty problem describes invalid input for the user.
func parsePicks(input string, count int) ([]int, string) {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	picks := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Sprintf("Unknown input %q.", input)
		}
		if n < 1 || n > count {
			return nil, fmt.Sprintf("Choice %d is out of range (1-%d).", n, count)
		}
		picks = append(picks, n-1)
	}
	return picks, ""
}

func printQuestion(out io.Writer, s *session.Session) {
	q := s.CurrentQuestion()
	reviewed := s.Status() == attempt.StatusReview
	selected := s.SelectedIDs()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Question %d/%d | %d/%d answered (%d%%)\n",
		s.CurrentIndex()+1, s.Total(), s.AnsweredCount(), s.Total(), s.ProgressPct())
	fmt.Fprintln(out, q.Prompt)
	if q.IsMulti() {
		fmt.Fprintln(out, "(select all that apply)")
	}
	for i, choice := range q.Choices {
		fmt.Fprintf(out, "  %d) %s %s%s\n", i+1, choiceBox(*q, slices.Contains(selected, choice.ID)), choice.Text, reviewMark(*q, choice, selected, reviewed))
	}
	if !reviewed {
		return
	}
	if s.IsQuestionCorrect(*q) {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintln(out, "Not quite.")
	}
	if q.Explanation != "" {
		fmt.Fprintln(out, q.Explanation)
	}
}

func choiceBox(q quiz.Question, chosen bool) string {
	switch {
	case q.IsMulti() && chosen:
		return "[x]"
	case q.IsMulti():
		return "[ ]"
	case chosen:
		return "(*)"
	default:
		return "( )"
	}
}

func reviewMark(q quiz.Question, choice quiz.Choice, selected []string, reviewed bool) string {
	if !reviewed {
		return ""
	}
	if slices.Contains(q.CorrectChoiceIDs, choice.ID) {
		return "  ✓"
	}
	if slices.Contains(selected, choice.ID) {
		return "  ✗"
	}
	return ""
}

// printResult writes the score and per-question table of a finished attempt.
func printResult(out io.Writer, s *session.Session) {
	state := s.State()
	fmt.Fprintln(out)
	if state.Quiz != nil {
		fmt.Fprintln(out, state.Quiz.Title)
	}
	fmt.Fprintln(out, play.ScoreLine(s.CorrectCount(), s.Total(), s.ScorePct()))
	fmt.Fprintln(out, play.RenderResults(s.Results(), true))
}
