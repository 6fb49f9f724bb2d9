package persist

import (
	"encoding/json"
	"math"
	"time"
)

// StorageKey is the single key under which the last run is stored.
const StorageKey = "quizdeck:lastRun"

// Snapshot is the persisted summary of the most recently saved attempt.
// Timestamps are unix milliseconds.
type Snapshot struct {
	RunID      string              `json:"runId"`
	QuizID     string              `json:"quizId"`
	Score      int                 `json:"score"`
	Total      int                 `json:"total"`
	StartedAt  int64               `json:"startedAt,omitempty"`
	FinishedAt int64               `json:"finishedAt"`
	Answers    map[string][]string `json:"answers,omitempty"`
	Reviewed   map[string]bool     `json:"reviewed,omitempty"`
}

// ScorePct is the saved score over the saved total, in percent.
func (s Snapshot) ScorePct() int {
	if s.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Score) / float64(s.Total) * 100))
}

// Started returns StartedAt as a time, zero when unset.
func (s Snapshot) Started() time.Time {
	return fromMillis(s.StartedAt)
}

// Finished returns FinishedAt as a time, zero when unset.
func (s Snapshot) Finished() time.Time {
	return fromMillis(s.FinishedAt)
}

// Encode renders the snapshot as JSON.
func Encode(snapshot Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses stored content. It reports false for empty, malformed or
// inconsistent content instead of returning an error.
func Decode(raw string) (Snapshot, bool) {
	if raw == "" {
		return Snapshot{}, false
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return Snapshot{}, false
	}
	if snapshot.QuizID == "" || snapshot.Total < 0 || snapshot.Score < 0 || snapshot.Score > snapshot.Total {
		return Snapshot{}, false
	}
	if snapshot.Answers == nil {
		snapshot.Answers = map[string][]string{}
	}
	if snapshot.Reviewed == nil {
		snapshot.Reviewed = map[string]bool{}
	}
	return snapshot, true
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
