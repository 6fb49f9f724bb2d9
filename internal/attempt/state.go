package attempt

import (
	"time"

	"quizdeck/internal/quiz"
)

// Status is the position of an attempt in its lifecycle.
type Status string

const (
	// StatusIdle means no quiz is loaded.
	StatusIdle Status = "idle"
	// StatusRunning means the current question is open for answering.
	StatusRunning Status = "running"
	// StatusReview means the current question shows its answer check.
	StatusReview Status = "review"
	// StatusFinished is terminal until the attempt is reset.
	StatusFinished Status = "finished"
)

// State is the mutable record of one quiz attempt. Flow, Answers and Scorer
// share a pointer to the same State.
type State struct {
	Status       Status
	Quiz         *quiz.Quiz
	CurrentIndex int
	// Answers maps question id to chosen choice ids in selection order.
	Answers map[string][]string
	// Reviewed marks questions whose answer check has been shown.
	Reviewed   map[string]bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewState returns an idle attempt with empty answer maps.
func NewState() *State {
	state := &State{}
	state.Replace(defaults())
	return state
}

func defaults() State {
	return State{
		Status:   StatusIdle,
		Answers:  map[string][]string{},
		Reviewed: map[string]bool{},
	}
}

// Replace swaps the whole record in place so every holder of the pointer
// observes the new contents.
func (s *State) Replace(next State) {
	if next.Answers == nil {
		next.Answers = map[string][]string{}
	}
	if next.Reviewed == nil {
		next.Reviewed = map[string]bool{}
	}
	*s = next
}

// Clone returns a deep copy of the answer and review maps. The quiz is
// shared because it is never mutated.
func (s State) Clone() State {
	answers := make(map[string][]string, len(s.Answers))
	for id, chosen := range s.Answers {
		answers[id] = append([]string(nil), chosen...)
	}
	reviewed := make(map[string]bool, len(s.Reviewed))
	for id, ok := range s.Reviewed {
		reviewed[id] = ok
	}
	s.Answers = answers
	s.Reviewed = reviewed
	return s
}
