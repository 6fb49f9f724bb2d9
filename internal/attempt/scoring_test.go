package attempt

import (
	"testing"

	"quizdeck/internal/quiz"
	"quizdeck/internal/testutil"
)

func TestIsQuestionCorrectUsesSetEquality(t *testing.T) {
	q := quiz.Question{ID: "m", Type: quiz.Multi, CorrectChoiceIDs: []string{"a", "c"}}
	cases := []struct {
		name   string
		chosen []string
		want   bool
	}{
		{"exact", []string{"a", "c"}, true},
		{"reordered", []string{"c", "a"}, true},
		{"subset", []string{"a"}, false},
		{"superset", []string{"a", "b", "c"}, false},
		{"disjoint", []string{"b"}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := NewState()
			state.Answers["m"] = tc.chosen
			if got := NewScorer(state).IsQuestionCorrect(q); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsQuestionCorrectAfterToggles(t *testing.T) {
	h := newHarness()
	h.flow.Start(testutil.MixedQuiz())
	h.flow.Next()
	for _, id := range []string{"c", "b", "a", "b", "c", "c"} {
		h.answers.ToggleMulti(id)
	}
	if !h.scorer.IsQuestionCorrect(h.state.Quiz.Questions[1]) {
		t.Fatalf("expected %v to match answer key", h.state.Answers["m1"])
	}
}

func TestCountsOnlyReviewedQuestions(t *testing.T) {
	h := newHarness()
	h.flow.Start(testutil.MixedQuiz())
	h.answers.SetSingle("a")
	h.flow.Next()
	h.answers.ToggleMulti("b")
	h.flow.GoToReview()

	if got := h.scorer.CorrectCount(); got != 0 {
		t.Fatalf("expected unreviewed correct answer to be excluded, got %d", got)
	}
	if got := h.scorer.WrongCount(); got != 1 {
		t.Fatalf("expected one wrong, got %d", got)
	}
	h.flow.Prev()
	h.flow.GoToReview()
	if got := h.scorer.CorrectCount(); got != 1 {
		t.Fatalf("expected one correct, got %d", got)
	}
	if got := h.scorer.ScorePct(); got != 33 {
		t.Fatalf("expected 33%%, got %d", got)
	}
}

func TestScorePctBounds(t *testing.T) {
	h := newHarness()
	if got := h.scorer.ScorePct(); got != 0 {
		t.Fatalf("expected 0 without quiz, got %d", got)
	}
	h.flow.Start(quiz.Quiz{ID: "empty"})
	if got := h.scorer.ScorePct(); got != 0 {
		t.Fatalf("expected 0 for empty quiz, got %d", got)
	}
	h.flow.Start(testutil.TwoSingleQuiz())
	h.answers.SetSingle("a")
	h.flow.Next()
	h.answers.SetSingle("b")
	h.flow.FinishIfPossible()
	if got := h.scorer.ScorePct(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

// TestTwoQuestionScenario walks the reference scenario: Q1 answered right but
// never checked, Q2 answered wrong and checked, then finished with Next.
func TestTwoQuestionScenario(t *testing.T) {
	h := newHarness()
	h.flow.Start(testutil.TwoSingleQuiz())
	h.answers.SetSingle("a")
	h.flow.Next()
	if h.state.CurrentIndex != 1 {
		t.Fatalf("expected to advance to Q2, got %d", h.state.CurrentIndex)
	}
	h.answers.SetSingle("x")
	h.flow.GoToReview()
	h.flow.Next()

	if h.state.Status != StatusFinished {
		t.Fatalf("expected finished, got %s", h.state.Status)
	}
	if got := h.scorer.CorrectCount(); got != 1 {
		t.Fatalf("expected correct count 1, got %d", got)
	}
	if got := h.scorer.WrongCount(); got != 1 {
		t.Fatalf("expected wrong count 1, got %d", got)
	}
	if got := h.scorer.ScorePct(); got != 50 {
		t.Fatalf("expected 50%%, got %d", got)
	}
}

func TestResultsOutcomes(t *testing.T) {
	h := newHarness()
	h.flow.Start(testutil.MixedQuiz())
	h.answers.SetSingle("a")
	h.flow.GoToReview()
	h.flow.Next()
	h.answers.ToggleMulti("b")
	h.flow.GoToReview()
	h.flow.Next()

	results := h.scorer.Results()
	want := []Outcome{OutcomeCorrect, OutcomeWrong, OutcomeUnanswered}
	for i, outcome := range want {
		if results[i].Outcome != outcome {
			t.Fatalf("question %d: expected %s, got %s", i, outcome, results[i].Outcome)
		}
	}
	h.answers.SetSingle("a")
	if got := h.scorer.Results()[2].Outcome; got != OutcomePending {
		t.Fatalf("expected pending, got %s", got)
	}
}
