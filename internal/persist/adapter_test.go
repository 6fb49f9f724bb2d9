package persist

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"quizdeck/internal/attempt"
	"quizdeck/internal/kv"
	"quizdeck/internal/testutil"
)

type fixture struct {
	state   *attempt.State
	flow    *attempt.Flow
	answers *attempt.Answers
	scorer  *attempt.Scorer
	store   kv.Store
	adapter *Adapter
	clock   *testutil.FakeClock
}

func newFixture(store kv.Store) *fixture {
	clock := testutil.NewFakeClock(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	state := attempt.NewState()
	flow := attempt.NewFlow(state, clock.Now)
	scorer := attempt.NewScorer(state)
	return &fixture{
		state:   state,
		flow:    flow,
		answers: attempt.NewAnswers(state, flow),
		scorer:  scorer,
		store:   store,
		clock:   clock,
		adapter: NewAdapter(state, flow, scorer, Config{
			Store:    store,
			Now:      clock.Now,
			NewRunID: func() string { return "run-1" },
		}),
	}
}

func TestSaveRunWithoutQuizIsNoop(t *testing.T) {
	ctx := testutil.Context(t, 0)
	f := newFixture(kv.NewMemory())
	if err := f.adapter.SaveRun(ctx); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if _, ok, _ := f.store.Get(ctx, StorageKey); ok {
		t.Fatalf("expected nothing to be written")
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	ctx := testutil.Context(t, 0)
	f := newFixture(kv.NewMemory())
	f.flow.Start(testutil.TwoSingleQuiz())
	f.answers.SetSingle("a")
	f.flow.Next()
	f.answers.SetSingle("x")
	f.clock.Advance(time.Minute)
	f.flow.FinishIfPossible()

	if err := f.adapter.SaveRun(ctx); err != nil {
		t.Fatalf("save run: %v", err)
	}
	snapshot, ok := f.adapter.LoadLastRun(ctx)
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if snapshot.QuizID != "pair" || snapshot.Score != f.scorer.CorrectCount() || snapshot.Total != f.flow.Total() {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if snapshot.Score != 1 || snapshot.Total != 2 || snapshot.ScorePct() != 50 {
		t.Fatalf("expected 1/2, got %d/%d", snapshot.Score, snapshot.Total)
	}
	if snapshot.RunID != "run-1" {
		t.Fatalf("expected run id run-1, got %q", snapshot.RunID)
	}
	if !snapshot.Finished().Equal(f.state.FinishedAt) {
		t.Fatalf("expected finishedAt %v, got %v", f.state.FinishedAt, snapshot.Finished())
	}
	if !snapshot.Started().Equal(f.state.StartedAt) {
		t.Fatalf("expected startedAt %v, got %v", f.state.StartedAt, snapshot.Started())
	}
	if !reflect.DeepEqual(snapshot.Answers, map[string][]string{"q1": {"a"}, "q2": {"x"}}) {
		t.Fatalf("unexpected answers: %v", snapshot.Answers)
	}
	if !snapshot.Reviewed["q1"] || !snapshot.Reviewed["q2"] {
		t.Fatalf("unexpected reviewed: %v", snapshot.Reviewed)
	}
}

func TestSaveRunUsesNowWhenUnfinished(t *testing.T) {
	ctx := testutil.Context(t, 0)
	f := newFixture(kv.NewMemory())
	f.flow.Start(testutil.TwoSingleQuiz())
	f.clock.Advance(5 * time.Second)
	if err := f.adapter.SaveRun(ctx); err != nil {
		t.Fatalf("save run: %v", err)
	}
	snapshot, ok := f.adapter.LoadLastRun(ctx)
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if !snapshot.Finished().Equal(f.clock.Now()) {
		t.Fatalf("expected finishedAt to default to now, got %v", snapshot.Finished())
	}
	if snapshot.Score != 0 {
		t.Fatalf("expected score 0, got %d", snapshot.Score)
	}
}

func TestSaveRunOverwritesPreviousSnapshot(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := kv.NewMemory()
	f := newFixture(store)
	f.flow.Start(testutil.TwoSingleQuiz())
	if err := f.adapter.SaveRun(ctx); err != nil {
		t.Fatalf("save run: %v", err)
	}
	f.flow.Start(testutil.MixedQuiz())
	if err := f.adapter.SaveRun(ctx); err != nil {
		t.Fatalf("save run: %v", err)
	}
	snapshot, _ := f.adapter.LoadLastRun(ctx)
	if snapshot.QuizID != "mixed" || snapshot.Total != 3 {
		t.Fatalf("expected mixed snapshot, got %+v", snapshot)
	}
}

func TestLoadLastRunFailsSoft(t *testing.T) {
	cases := map[string]string{
		"not json":       "{oops",
		"wrong shape":    `["a","b"]`,
		"missing quiz":   `{"score":1,"total":2}`,
		"score overflow": `{"quizId":"q","score":3,"total":2}`,
		"empty":          "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := testutil.Context(t, 0)
			store := kv.NewMemory()
			if err := store.Set(ctx, StorageKey, raw); err != nil {
				t.Fatalf("seed store: %v", err)
			}
			f := newFixture(store)
			if snapshot, ok := f.adapter.LoadLastRun(ctx); ok {
				t.Fatalf("expected absent snapshot, got %+v", snapshot)
			}
		})
	}
}

func TestLoadLastRunMissing(t *testing.T) {
	f := newFixture(kv.NewMemory())
	if _, ok := f.adapter.LoadLastRun(testutil.Context(t, 0)); ok {
		t.Fatalf("expected no snapshot")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }

func TestStoreErrors(t *testing.T) {
	ctx := testutil.Context(t, 0)
	f := newFixture(failingStore{})
	if _, ok := f.adapter.LoadLastRun(ctx); ok {
		t.Fatalf("expected read failure to report absent")
	}
	f.flow.Start(testutil.TwoSingleQuiz())
	if err := f.adapter.SaveRun(ctx); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestDecodeLegacySnapshot(t *testing.T) {
	snapshot, ok := Decode(`{"quizId":"web-basics","score":3,"total":6,"finishedAt":1700000000000}`)
	if !ok {
		t.Fatalf("expected legacy snapshot to decode")
	}
	if snapshot.Answers == nil || snapshot.Reviewed == nil {
		t.Fatalf("expected empty maps for legacy snapshot")
	}
	if snapshot.ScorePct() != 50 {
		t.Fatalf("expected 50%%, got %d", snapshot.ScorePct())
	}
}
