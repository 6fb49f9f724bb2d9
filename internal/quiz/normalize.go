package quiz

import (
	"fmt"
	"strings"

	"quizdeck/internal/validation"
)

// Normalize trims whitespace, applies defaults, folds the legacy answer key
// and validates a quiz.
func Normalize(q Quiz) (Quiz, error) {
	collector := validation.NewCollector("quiz")
	q.ID = strings.TrimSpace(q.ID)
	if q.ID == "" {
		collector.Add("id", "is required")
	}
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		collector.Add("title", "is required")
	}
	q.Description = strings.TrimSpace(q.Description)
	if len(q.Questions) == 0 {
		collector.Add("questions", "must include at least one entry")
	}

	questions := make([]Question, len(q.Questions))
	seenIDs := map[string]struct{}{}
	for i, question := range q.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question = normalizeQuestion(question, collector.Under(prefix))
		if question.ID != "" {
			if _, exists := seenIDs[question.ID]; exists {
				collector.Add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
			} else {
				seenIDs[question.ID] = struct{}{}
			}
		}
		questions[i] = question
	}
	q.Questions = questions

	if err := collector.Err(); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func normalizeQuestion(question Question, add validation.Adder) Question {
	question.ID = strings.TrimSpace(question.ID)
	if question.ID == "" {
		add("id", "is required")
	}
	question.Prompt = strings.TrimSpace(question.Prompt)
	if question.Prompt == "" {
		add("question", "is required")
	}
	question.Explanation = strings.TrimSpace(question.Explanation)

	switch QuestionType(strings.ToLower(strings.TrimSpace(string(question.Type)))) {
	case "", Single:
		question.Type = Single
	case Multi:
		question.Type = Multi
	default:
		add("type", fmt.Sprintf("unsupported type %q (expected single|multi)", question.Type))
	}

	choiceIDs := map[string]struct{}{}
	choices := make([]Choice, len(question.Choices))
	if len(question.Choices) == 0 {
		add("choices", "must include at least one entry")
	}
	for i, choice := range question.Choices {
		field := fmt.Sprintf("choices[%d]", i)
		choice.ID = strings.TrimSpace(choice.ID)
		choice.Text = strings.TrimSpace(choice.Text)
		if choice.ID == "" {
			add(field+".id", "is required")
		} else if _, exists := choiceIDs[choice.ID]; exists {
			add(field+".id", fmt.Sprintf("duplicate id %q", choice.ID))
		} else {
			choiceIDs[choice.ID] = struct{}{}
		}
		if choice.Text == "" {
			add(field+".text", "is required")
		}
		choices[i] = choice
	}
	question.Choices = choices

	correct := normalizeStringSlice(question.CorrectChoiceIDs)
	legacy := strings.TrimSpace(question.CorrectChoiceID)
	if len(correct) == 0 && legacy != "" {
		correct = []string{legacy}
	}
	question.CorrectChoiceID = ""

	if len(correct) == 0 {
		add("correctChoiceIds", "must include at least one entry")
	}
	seenCorrect := map[string]struct{}{}
	for i, id := range correct {
		field := fmt.Sprintf("correctChoiceIds[%d]", i)
		if id == "" {
			add(field, "is required")
			continue
		}
		if _, exists := seenCorrect[id]; exists {
			add(field, fmt.Sprintf("duplicate id %q", id))
			continue
		}
		seenCorrect[id] = struct{}{}
		if _, ok := choiceIDs[id]; !ok {
			add(field, fmt.Sprintf("unknown choice %q", id))
		}
	}
	if question.Type == Single && len(correct) > 1 {
		add("correctChoiceIds", "single questions take exactly one correct choice")
	}
	question.CorrectChoiceIDs = correct
	return question
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
