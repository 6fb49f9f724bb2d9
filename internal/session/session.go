// Package session composes one quiz attempt with its catalog and storage.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quizdeck/internal/attempt"
	"quizdeck/internal/kv"
	"quizdeck/internal/persist"
	"quizdeck/internal/quiz"
)

// Catalog resolves quizzes by id.
type Catalog interface {
	Get(id string) (quiz.Quiz, bool)
}

// Config wires a Session.
type Config struct {
	Catalog Catalog
	Store   kv.Store
	Now     func() time.Time
	Logger  *slog.Logger
	// NewRunID overrides snapshot run ids in tests.
	NewRunID func() string
}

// Session is the entry point the UI layers call into.
type Session struct {
	state   *attempt.State
	flow    *attempt.Flow
	answers *attempt.Answers
	scorer  *attempt.Scorer
	persist *persist.Adapter
	catalog Catalog
	logger  *slog.Logger
}

// New builds a session with an idle attempt.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	state := attempt.NewState()
	flow := attempt.NewFlow(state, cfg.Now)
	scorer := attempt.NewScorer(state)
	return &Session{
		state:   state,
		flow:    flow,
		answers: attempt.NewAnswers(state, flow),
		scorer:  scorer,
		persist: persist.NewAdapter(state, flow, scorer, persist.Config{
			Store:    cfg.Store,
			Now:      cfg.Now,
			Logger:   logger,
			NewRunID: cfg.NewRunID,
		}),
		catalog: cfg.Catalog,
		logger:  logger,
	}
}

// State returns a copy of the attempt for rendering.
func (s *Session) State() attempt.State {
	return s.state.Clone()
}

// Status returns the attempt status.
func (s *Session) Status() attempt.Status {
	return s.state.Status
}

// LoadQuiz resolves id in the catalog.
func (s *Session) LoadQuiz(id string) (quiz.Quiz, error) {
	if s.catalog != nil {
		if q, ok := s.catalog.Get(id); ok {
			return q, nil
		}
	}
	return quiz.Quiz{}, fmt.Errorf("%w: %s", quiz.ErrNotFound, id)
}

// Start begins a fresh attempt at q.
func (s *Session) Start(q quiz.Quiz) {
	s.flow.Start(q)
	s.logger.Debug("attempt started", "quiz_id", q.ID, "questions", len(q.Questions))
}

// StartByID looks up id and starts it. The attempt is untouched when the id
// is unknown.
func (s *Session) StartByID(id string) error {
	q, err := s.LoadQuiz(id)
	if err != nil {
		return err
	}
	s.Start(q)
	return nil
}

// OpenLastResult replaces the attempt with a finished, read-only view of the
// stored snapshot. It reports false and leaves the attempt untouched when no
// snapshot exists.
func (s *Session) OpenLastResult(ctx context.Context) (bool, error) {
	snapshot, ok := s.persist.LoadLastRun(ctx)
	if !ok {
		return false, nil
	}
	q, err := s.LoadQuiz(snapshot.QuizID)
	if err != nil {
		return false, fmt.Errorf("open last result: %w", err)
	}
	s.state.Replace(attempt.State{
		Status:       attempt.StatusFinished,
		Quiz:         &q,
		CurrentIndex: 0,
		Answers:      snapshot.Answers,
		Reviewed:     snapshot.Reviewed,
		StartedAt:    snapshot.Started(),
		FinishedAt:   snapshot.Finished(),
	})
	return true, nil
}

// Total returns the question count.
func (s *Session) Total() int { return s.flow.Total() }

// CurrentQuestion returns the active question or nil.
func (s *Session) CurrentQuestion() *quiz.Question { return s.flow.CurrentQuestion() }

// CurrentIndex returns the zero-based position.
func (s *Session) CurrentIndex() int { return s.state.CurrentIndex }

// IsLast reports whether the active question is the final one.
func (s *Session) IsLast() bool { return s.flow.IsLast() }

// AnsweredCount counts questions with a recorded answer.
func (s *Session) AnsweredCount() int { return s.flow.AnsweredCount() }

// AllAnswered reports whether every question has a recorded answer.
func (s *Session) AllAnswered() bool { return s.flow.AllAnswered() }

// ProgressPct returns completion in percent.
func (s *Session) ProgressPct() int { return s.flow.ProgressPct() }

// GoTo moves to index, clamped to the question range.
func (s *Session) GoTo(index int) { s.flow.GoTo(index) }

// Next advances, finishing from the reviewed last question.
func (s *Session) Next() { s.flow.Next() }

// Prev steps back one question.
func (s *Session) Prev() { s.flow.Prev() }

// GoToReview checks the active question.
func (s *Session) GoToReview() { s.flow.GoToReview() }

// FinishIfPossible finishes once every question is answered.
func (s *Session) FinishIfPossible() { s.flow.FinishIfPossible() }

// Reset discards the attempt.
func (s *Session) Reset() { s.flow.Reset() }

// SelectedIDs returns the choices recorded for the active question.
func (s *Session) SelectedIDs() []string { return s.answers.SelectedIDs() }

// CanCheck reports whether the active question can be checked.
func (s *Session) CanCheck() bool { return s.answers.CanCheck() }

// SetSingle replaces the active answer with choiceID.
func (s *Session) SetSingle(choiceID string) { s.answers.SetSingle(choiceID) }

// ToggleMulti adds or removes choiceID from the active answer.
func (s *Session) ToggleMulti(choiceID string) { s.answers.ToggleMulti(choiceID) }

// Select applies choiceID by the active question's type.
func (s *Session) Select(choiceID string) { s.answers.Select(choiceID) }

// IsQuestionCorrect reports whether q was answered correctly.
func (s *Session) IsQuestionCorrect(q quiz.Question) bool { return s.scorer.IsQuestionCorrect(q) }

// IsReviewed reports whether the question with id has been checked.
func (s *Session) IsReviewed(id string) bool { return s.state.Reviewed[id] }

// CorrectCount counts checked questions answered correctly.
func (s *Session) CorrectCount() int { return s.scorer.CorrectCount() }

// WrongCount counts checked questions answered wrongly.
func (s *Session) WrongCount() int { return s.scorer.WrongCount() }

// ScorePct returns the rounded share of correct questions.
func (s *Session) ScorePct() int { return s.scorer.ScorePct() }

// Results returns per-question outcomes.
func (s *Session) Results() []attempt.QuestionResult { return s.scorer.Results() }

// SaveRun persists the attempt as the last run.
func (s *Session) SaveRun(ctx context.Context) error { return s.persist.SaveRun(ctx) }

// LastRun returns the stored snapshot, if any.
func (s *Session) LastRun(ctx context.Context) (persist.Snapshot, bool) {
	return s.persist.LoadLastRun(ctx)
}
