package attempt

// Answers records selections for the current question.
type Answers struct {
	state *State
	flow  *Flow
}

// NewAnswers binds an answer recorder to state, resolving the current
// question through flow.
func NewAnswers(state *State, flow *Flow) *Answers {
	return &Answers{state: state, flow: flow}
}

// SelectedIDs returns a copy of the chosen ids for the current question.
func (a *Answers) SelectedIDs() []string {
	q := a.flow.CurrentQuestion()
	if q == nil {
		return []string{}
	}
	return append([]string{}, a.state.Answers[q.ID]...)
}

// CanCheck reports whether the current question has an answer to check.
func (a *Answers) CanCheck() bool {
	return len(a.SelectedIDs()) > 0
}

// SetSingle replaces the selection with exactly choiceID.
func (a *Answers) SetSingle(choiceID string) {
	id, ok := a.editable()
	if !ok {
		return
	}
	a.state.Answers[id] = []string{choiceID}
}

// ToggleMulti adds choiceID when absent and removes it when present.
func (a *Answers) ToggleMulti(choiceID string) {
	id, ok := a.editable()
	if !ok {
		return
	}
	current := a.state.Answers[id]
	next := make([]string, 0, len(current)+1)
	found := false
	for _, chosen := range current {
		if chosen == choiceID {
			found = true
			continue
		}
		next = append(next, chosen)
	}
	if !found {
		next = append(next, choiceID)
	}
	a.state.Answers[id] = next
}

// Select applies single or multi semantics by the current question's type.
func (a *Answers) Select(choiceID string) {
	q := a.flow.CurrentQuestion()
	if q == nil {
		return
	}
	if q.IsMulti() {
		a.ToggleMulti(choiceID)
		return
	}
	a.SetSingle(choiceID)
}

// editable returns the current question id while its answer can change.
// A finished attempt is read-only.
func (a *Answers) editable() (string, bool) {
	q := a.flow.CurrentQuestion()
	if q == nil || a.state.Status == StatusFinished {
		return "", false
	}
	return q.ID, true
}
