package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"quizdeck/internal/attempt"
	"quizdeck/internal/kv"
	"quizdeck/internal/quiz"
	"quizdeck/internal/testutil"
)

// TestAttemptFeatures runs the attempt feature scenarios against the session.
func TestAttemptFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "attempt",
		ScenarioInitializer: InitializeAttemptScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("..", "..", "features")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeAttemptScenario wires steps for attempt scenarios.
func InitializeAttemptScenario(ctx *godog.ScenarioContext) {
	state := &attemptScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a quiz "([^"]+)" with questions:$`, state.givenQuiz)
	ctx.Step(`^I start quiz "([^"]+)"$`, state.startQuiz)
	ctx.Step(`^I choose "([^"]+)"$`, state.choose)
	ctx.Step(`^I toggle "([^"]+)"$`, state.toggle)
	ctx.Step(`^I check the answer$`, state.check)
	ctx.Step(`^I go to the next question$`, state.next)
	ctx.Step(`^I go to the previous question$`, state.prev)
	ctx.Step(`^I go to question (-?\d+)$`, state.goTo)
	ctx.Step(`^I finish if possible$`, state.finish)
	ctx.Step(`^I save the run$`, state.save)
	ctx.Step(`^I reset the attempt$`, state.resetAttempt)
	ctx.Step(`^the page is reloaded$`, state.reload)
	ctx.Step(`^I open the last result$`, state.openLastResult)
	ctx.Step(`^the attempt is "([^"]+)"$`, state.thenStatus)
	ctx.Step(`^the current index is (\d+)$`, state.thenIndex)
	ctx.Step(`^the correct count is (\d+)$`, state.thenCorrect)
	ctx.Step(`^the wrong count is (\d+)$`, state.thenWrong)
	ctx.Step(`^the score is (\d+) percent$`, state.thenScorePct)
	ctx.Step(`^the progress is (\d+) percent$`, state.thenProgress)
	ctx.Step(`^the selection is "([^"]*)"$`, state.thenSelection)
	ctx.Step(`^starting fails with not found$`, state.thenNotFound)
	ctx.Step(`^no last result was opened$`, state.thenNotOpened)
	ctx.Step(`^the attempt has default values$`, state.thenDefaults)
}

type attemptScenarioState struct {
	quizzes  []quiz.Quiz
	store    *kv.Memory
	clock    *testutil.FakeClock
	session  *Session
	startErr error
	opened   bool
}

func (s *attemptScenarioState) reset() {
	s.quizzes = nil
	s.store = kv.NewMemory()
	s.clock = testutil.NewFakeClock(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	s.session = nil
	s.startErr = nil
	s.opened = false
}

// current builds the session lazily so every quiz step lands in the catalog.
func (s *attemptScenarioState) current() (*Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	catalog, err := quiz.NewCatalog(s.quizzes...)
	if err != nil {
		return nil, err
	}
	s.session = New(Config{Catalog: catalog, Store: s.store, Now: s.clock.Now})
	return s.session, nil
}

func (s *attemptScenarioState) givenQuiz(id string, table *godog.Table) error {
	q := quiz.Quiz{ID: id, Title: id}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 4 {
			return fmt.Errorf("expected 4 columns (id, type, choices, correct), got %d", len(row.Cells))
		}
		question := quiz.Question{
			ID:               row.Cells[0].Value,
			Prompt:           "Question " + row.Cells[0].Value,
			Type:             quiz.QuestionType(row.Cells[1].Value),
			CorrectChoiceIDs: splitIDs(row.Cells[3].Value),
		}
		for _, choiceID := range splitIDs(row.Cells[2].Value) {
			question.Choices = append(question.Choices, quiz.Choice{ID: choiceID, Text: strings.ToUpper(choiceID)})
		}
		q.Questions = append(q.Questions, question)
	}
	normalized, err := quiz.Normalize(q)
	if err != nil {
		return err
	}
	s.quizzes = append(s.quizzes, normalized)
	return nil
}

func (s *attemptScenarioState) startQuiz(id string) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	s.startErr = session.StartByID(id)
	return nil
}

func (s *attemptScenarioState) do(fn func(*Session)) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	fn(session)
	s.clock.Advance(time.Second)
	return nil
}

func (s *attemptScenarioState) choose(id string) error {
	return s.do(func(session *Session) { session.Select(id) })
}

func (s *attemptScenarioState) toggle(id string) error {
	return s.do(func(session *Session) { session.ToggleMulti(id) })
}

func (s *attemptScenarioState) check() error {
	return s.do(func(session *Session) { session.GoToReview() })
}

func (s *attemptScenarioState) next() error {
	return s.do(func(session *Session) { session.Next() })
}

func (s *attemptScenarioState) prev() error {
	return s.do(func(session *Session) { session.Prev() })
}

func (s *attemptScenarioState) goTo(index int) error {
	return s.do(func(session *Session) { session.GoTo(index) })
}

func (s *attemptScenarioState) finish() error {
	return s.do(func(session *Session) { session.FinishIfPossible() })
}

func (s *attemptScenarioState) resetAttempt() error {
	return s.do(func(session *Session) { session.Reset() })
}

func (s *attemptScenarioState) save() error {
	session, err := s.current()
	if err != nil {
		return err
	}
	return session.SaveRun(context.Background())
}

// reload drops the in-memory session but keeps the store.
func (s *attemptScenarioState) reload() error {
	s.session = nil
	return nil
}

func (s *attemptScenarioState) openLastResult() error {
	session, err := s.current()
	if err != nil {
		return err
	}
	opened, err := session.OpenLastResult(context.Background())
	if err != nil {
		return err
	}
	s.opened = opened
	return nil
}

func (s *attemptScenarioState) thenStatus(want string) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	if got := session.Status(); got != attempt.Status(want) {
		return fmt.Errorf("expected status %s, got %s", want, got)
	}
	return nil
}

func (s *attemptScenarioState) thenIndex(want int) error {
	return s.expectInt("current index", want, func(session *Session) int { return session.CurrentIndex() })
}

func (s *attemptScenarioState) thenCorrect(want int) error {
	return s.expectInt("correct count", want, func(session *Session) int { return session.CorrectCount() })
}

func (s *attemptScenarioState) thenWrong(want int) error {
	return s.expectInt("wrong count", want, func(session *Session) int { return session.WrongCount() })
}

func (s *attemptScenarioState) thenScorePct(want int) error {
	return s.expectInt("score", want, func(session *Session) int { return session.ScorePct() })
}

func (s *attemptScenarioState) thenProgress(want int) error {
	return s.expectInt("progress", want, func(session *Session) int { return session.ProgressPct() })
}

func (s *attemptScenarioState) expectInt(label string, want int, read func(*Session) int) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	if got := read(session); got != want {
		return fmt.Errorf("expected %s %d, got %d", label, want, got)
	}
	return nil
}

func (s *attemptScenarioState) thenSelection(want string) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	if got := strings.Join(session.SelectedIDs(), ","); got != want {
		return fmt.Errorf("expected selection %q, got %q", want, got)
	}
	return nil
}

func (s *attemptScenarioState) thenNotFound() error {
	if !errors.Is(s.startErr, quiz.ErrNotFound) {
		return fmt.Errorf("expected not found error, got %v", s.startErr)
	}
	return nil
}

func (s *attemptScenarioState) thenNotOpened() error {
	if s.opened {
		return fmt.Errorf("expected no last result to be opened")
	}
	return nil
}

func (s *attemptScenarioState) thenDefaults() error {
	session, err := s.current()
	if err != nil {
		return err
	}
	state := session.State()
	if state.Status != attempt.StatusIdle || state.Quiz != nil || state.CurrentIndex != 0 ||
		len(state.Answers) != 0 || len(state.Reviewed) != 0 ||
		!state.StartedAt.IsZero() || !state.FinishedAt.IsZero() {
		return fmt.Errorf("expected default attempt, got %+v", state)
	}
	return nil
}

func splitIDs(value string) []string {
	var ids []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
