package attempt

import (
	"math"

	"quizdeck/internal/quiz"
)

// Outcome classifies a question for result display.
type Outcome string

const (
	// OutcomeUnanswered marks a question with no recorded choice.
	OutcomeUnanswered Outcome = "unanswered"
	// OutcomePending marks an answered question that has not been checked.
	OutcomePending Outcome = "pending"
	// OutcomeCorrect marks a checked question whose choices match exactly.
	OutcomeCorrect Outcome = "correct"
	// OutcomeWrong marks a checked question whose choices differ.
	OutcomeWrong Outcome = "wrong"
)

// QuestionResult is the scored view of a single question.
type QuestionResult struct {
	Index    int
	Question quiz.Question
	Selected []string
	Reviewed bool
	Outcome  Outcome
}

// Scorer computes correctness from an attempt without mutating it.
type Scorer struct {
	state *State
}

// NewScorer binds a scorer to state.
func NewScorer(state *State) *Scorer {
	return &Scorer{state: state}
}

// IsQuestionCorrect reports whether the recorded choices equal the answer key
// as sets.
func (s *Scorer) IsQuestionCorrect(q quiz.Question) bool {
	return sameSet(s.state.Answers[q.ID], q.CorrectChoiceIDs)
}

// CorrectCount counts reviewed questions answered correctly.
func (s *Scorer) CorrectCount() int {
	correct, _ := s.counts()
	return correct
}

// WrongCount counts reviewed questions answered incorrectly.
func (s *Scorer) WrongCount() int {
	_, wrong := s.counts()
	return wrong
}

func (s *Scorer) counts() (correct, wrong int) {
	if s.state.Quiz == nil {
		return 0, 0
	}
	for _, q := range s.state.Quiz.Questions {
		if !s.state.Reviewed[q.ID] {
			continue
		}
		if s.IsQuestionCorrect(q) {
			correct++
		} else {
			wrong++
		}
	}
	return correct, wrong
}

// ScorePct is the correct count over all questions, in percent.
func (s *Scorer) ScorePct() int {
	if s.state.Quiz == nil || len(s.state.Quiz.Questions) == 0 {
		return 0
	}
	total := float64(len(s.state.Quiz.Questions))
	return int(math.Round(float64(s.CorrectCount()) / total * 100))
}

// Results returns the outcome of every question in quiz order.
func (s *Scorer) Results() []QuestionResult {
	if s.state.Quiz == nil {
		return nil
	}
	results := make([]QuestionResult, 0, len(s.state.Quiz.Questions))
	for i, q := range s.state.Quiz.Questions {
		selected := append([]string{}, s.state.Answers[q.ID]...)
		reviewed := s.state.Reviewed[q.ID]
		outcome := OutcomePending
		switch {
		case reviewed && s.IsQuestionCorrect(q):
			outcome = OutcomeCorrect
		case reviewed:
			outcome = OutcomeWrong
		case len(selected) == 0:
			outcome = OutcomeUnanswered
		}
		results = append(results, QuestionResult{
			Index:    i,
			Question: q,
			Selected: selected,
			Reviewed: reviewed,
			Outcome:  outcome,
		})
	}
	return results
}

func sameSet(a, b []string) bool {
	left := toSet(a)
	right := toSet(b)
	if len(left) != len(right) {
		return false
	}
	for id := range left {
		if _, ok := right[id]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
