package attempt

import (
	"math"
	"time"

	"quizdeck/internal/quiz"
)

// Flow drives navigation over an attempt and derives position facts from it.
type Flow struct {
	state *State
	now   func() time.Time
}

// NewFlow binds a flow controller to state. A nil now uses time.Now.
func NewFlow(state *State, now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	return &Flow{state: state, now: now}
}

// Total returns the number of questions, 0 without a quiz.
func (f *Flow) Total() int {
	if f.state.Quiz == nil {
		return 0
	}
	return len(f.state.Quiz.Questions)
}

// CurrentQuestion returns the question at the current index, or nil.
func (f *Flow) CurrentQuestion() *quiz.Question {
	q := f.state.Quiz
	if q == nil {
		return nil
	}
	index := f.state.CurrentIndex
	if index < 0 || index >= len(q.Questions) {
		return nil
	}
	return &q.Questions[index]
}

// IsLast reports whether the current index is the final question.
func (f *Flow) IsLast() bool {
	total := f.Total()
	return total > 0 && f.state.CurrentIndex >= total-1
}

// AnsweredCount counts questions with at least one chosen id.
func (f *Flow) AnsweredCount() int {
	if f.state.Quiz == nil {
		return 0
	}
	count := 0
	for _, q := range f.state.Quiz.Questions {
		if len(f.state.Answers[q.ID]) > 0 {
			count++
		}
	}
	return count
}

// AllAnswered reports whether every question has a recorded answer.
func (f *Flow) AllAnswered() bool {
	total := f.Total()
	return total > 0 && f.AnsweredCount() == total
}

// ProgressPct is the answered fraction in percent. It stays below 100 until
// the attempt is finished.
func (f *Flow) ProgressPct() int {
	total := f.Total()
	if total == 0 {
		return 0
	}
	if f.state.Status == StatusFinished {
		return 100
	}
	pct := int(math.Round(float64(f.AnsweredCount()) / float64(total) * 100))
	return min(pct, 99)
}

// Start loads quiz into a fresh running attempt.
func (f *Flow) Start(q quiz.Quiz) {
	loaded := q
	f.state.Replace(State{
		Status:    StatusRunning,
		Quiz:      &loaded,
		StartedAt: f.now(),
	})
}

// GoTo moves to index, clamped into range. Status follows the review flag of
// the destination question.
func (f *Flow) GoTo(index int) {
	if f.state.Quiz == nil || f.state.Status == StatusFinished {
		return
	}
	last := max(0, f.Total()-1)
	f.state.CurrentIndex = min(max(index, 0), last)
	if q := f.CurrentQuestion(); q != nil {
		if f.state.Reviewed[q.ID] {
			f.state.Status = StatusReview
		} else {
			f.state.Status = StatusRunning
		}
	}
}

// Prev moves one question back.
func (f *Flow) Prev() {
	if f.state.Status == StatusIdle {
		return
	}
	f.GoTo(f.state.CurrentIndex - 1)
}

// Next moves one question forward. On the last question the first call
// reviews it and a call on the reviewed last question finishes the attempt.
func (f *Flow) Next() {
	if f.state.Quiz == nil || f.state.Status == StatusFinished {
		return
	}
	if !f.IsLast() {
		f.GoTo(f.state.CurrentIndex + 1)
		return
	}
	q := f.CurrentQuestion()
	if !f.state.Reviewed[q.ID] {
		f.GoToReview()
		return
	}
	f.finish()
}

// GoToReview marks the current question reviewed and shows its check.
func (f *Flow) GoToReview() {
	q := f.CurrentQuestion()
	if q == nil || f.state.Status == StatusFinished {
		return
	}
	f.state.Reviewed[q.ID] = true
	f.state.Status = StatusReview
}

// FinishIfPossible finishes the attempt once every question is answered.
func (f *Flow) FinishIfPossible() {
	if f.state.Quiz == nil || f.state.Status == StatusFinished {
		return
	}
	if !f.AllAnswered() {
		return
	}
	f.finish()
}

// finish reviews every question so the final score covers the whole quiz.
func (f *Flow) finish() {
	for _, q := range f.state.Quiz.Questions {
		f.state.Reviewed[q.ID] = true
	}
	f.state.Status = StatusFinished
	f.state.FinishedAt = f.now()
}

// Reset returns the attempt to idle defaults.
func (f *Flow) Reset() {
	f.state.Replace(defaults())
}
