package persist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quizdeck/internal/attempt"
	"quizdeck/internal/kv"
)

// Config wires an Adapter to its store and clock.
type Config struct {
	Store  kv.Store
	Now    func() time.Time
	Logger *slog.Logger
	// NewRunID overrides run id generation in tests.
	NewRunID func() string
}

// Adapter saves and loads the last-run snapshot for an attempt.
type Adapter struct {
	state    *attempt.State
	flow     *attempt.Flow
	scorer   *attempt.Scorer
	store    kv.Store
	now      func() time.Time
	logger   *slog.Logger
	newRunID func() string
}

// NewAdapter binds persistence to an attempt and its derived views.
func NewAdapter(state *attempt.State, flow *attempt.Flow, scorer *attempt.Scorer, cfg Config) *Adapter {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	newRunID := cfg.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Adapter{
		state:    state,
		flow:     flow,
		scorer:   scorer,
		store:    cfg.Store,
		now:      now,
		logger:   logger,
		newRunID: newRunID,
	}
}

// SaveRun overwrites the stored snapshot with the current attempt. It does
// nothing when no quiz is loaded.
func (a *Adapter) SaveRun(ctx context.Context) error {
	if a.state.Quiz == nil {
		return nil
	}
	if a.store == nil {
		return fmt.Errorf("save run: no store configured")
	}
	finishedAt := a.state.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = a.now()
	}
	recorded := a.state.Clone()
	snapshot := Snapshot{
		RunID:      a.newRunID(),
		QuizID:     a.state.Quiz.ID,
		Score:      a.scorer.CorrectCount(),
		Total:      a.flow.Total(),
		StartedAt:  toMillis(a.state.StartedAt),
		FinishedAt: toMillis(finishedAt),
		Answers:    recorded.Answers,
		Reviewed:   recorded.Reviewed,
	}
	payload, err := Encode(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := a.store.Set(ctx, StorageKey, payload); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	a.logger.Debug("saved run", "run_id", snapshot.RunID, "quiz_id", snapshot.QuizID, "score", snapshot.Score, "total", snapshot.Total)
	return nil
}

// LoadLastRun returns the stored snapshot. Missing, unreadable or malformed
// content reports false.
func (a *Adapter) LoadLastRun(ctx context.Context) (Snapshot, bool) {
	if a.store == nil {
		return Snapshot{}, false
	}
	raw, ok, err := a.store.Get(ctx, StorageKey)
	if err != nil {
		a.logger.Warn("read last run", "error", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}
	snapshot, ok := Decode(raw)
	if !ok {
		a.logger.Debug("ignoring malformed last run", "key", StorageKey)
	}
	return snapshot, ok
}
