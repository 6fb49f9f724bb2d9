package attempt

import (
	"time"

	"quizdeck/internal/testutil"
)

type harness struct {
	state   *State
	flow    *Flow
	answers *Answers
	scorer  *Scorer
	clock   *testutil.FakeClock
}

func newHarness() *harness {
	clock := testutil.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	state := NewState()
	flow := NewFlow(state, clock.Now)
	return &harness{
		state:   state,
		flow:    flow,
		answers: NewAnswers(state, flow),
		scorer:  NewScorer(state),
		clock:   clock,
	}
}
