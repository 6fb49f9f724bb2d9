package testutil

import "quizdeck/internal/quiz"

// TwoSingleQuiz returns a two question single-choice quiz whose answer keys
// are "a" and "b".
func TwoSingleQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:    "pair",
		Title: "Pair",
		Questions: []quiz.Question{
			{
				ID:               "q1",
				Prompt:           "First",
				Type:             quiz.Single,
				Choices:          []quiz.Choice{{ID: "a", Text: "A"}, {ID: "x", Text: "X"}},
				CorrectChoiceIDs: []string{"a"},
			},
			{
				ID:               "q2",
				Prompt:           "Second",
				Type:             quiz.Single,
				Choices:          []quiz.Choice{{ID: "b", Text: "B"}, {ID: "x", Text: "X"}},
				CorrectChoiceIDs: []string{"b"},
			},
		},
	}
}

// MixedQuiz returns a three question quiz with a multi-choice question in
// the middle.
func MixedQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:    "mixed",
		Title: "Mixed",
		Questions: []quiz.Question{
			{
				ID:               "s1",
				Prompt:           "Single",
				Type:             quiz.Single,
				Choices:          []quiz.Choice{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
				CorrectChoiceIDs: []string{"a"},
			},
			{
				ID:               "m1",
				Prompt:           "Multi",
				Type:             quiz.Multi,
				Choices:          []quiz.Choice{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}, {ID: "c", Text: "C"}},
				CorrectChoiceIDs: []string{"a", "c"},
			},
			{
				ID:               "s2",
				Prompt:           "Single again",
				Type:             quiz.Single,
				Choices:          []quiz.Choice{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
				CorrectChoiceIDs: []string{"b"},
			},
		},
	}
}
