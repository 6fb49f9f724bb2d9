package quiz

// QuestionType selects how answers are recorded for a question.
type QuestionType string

const (
	// Single questions accept exactly one choice.
	Single QuestionType = "single"
	// Multi questions accept any non-empty set of choices.
	Multi QuestionType = "multi"
)

// Quiz is an ordered set of questions loaded from the catalog.
type Quiz struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Choice is one selectable answer of a question.
type Choice struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question holds a prompt, its choices and the answer key.
//
// CorrectChoiceID is the legacy single-answer key. Normalization folds it
// into CorrectChoiceIDs when the array is absent and clears it.
type Question struct {
	ID               string       `json:"id" yaml:"id"`
	Prompt           string       `json:"question" yaml:"question"`
	Choices          []Choice     `json:"choices" yaml:"choices"`
	Type             QuestionType `json:"type,omitempty" yaml:"type,omitempty"`
	CorrectChoiceIDs []string     `json:"correctChoiceIds,omitempty" yaml:"correctChoiceIds,omitempty"`
	CorrectChoiceID  string       `json:"correctChoiceId,omitempty" yaml:"correctChoiceId,omitempty"`
	Explanation      string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// IsMulti reports whether the question uses multi-choice semantics.
func (q Question) IsMulti() bool {
	return q.Type == Multi
}

// Choice returns the choice with the given id.
func (q Question) Choice(id string) (Choice, bool) {
	for _, choice := range q.Choices {
		if choice.ID == id {
			return choice, true
		}
	}
	return Choice{}, false
}
