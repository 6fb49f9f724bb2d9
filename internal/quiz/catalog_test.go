package quiz

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinQuizzesAreValid(t *testing.T) {
	quizzes, err := Builtin()
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if len(quizzes) == 0 {
		t.Fatalf("expected at least one builtin quiz")
	}
	for _, q := range quizzes {
		for _, question := range q.Questions {
			if len(question.CorrectChoiceIDs) == 0 {
				t.Fatalf("%s/%s: expected normalized answer key", q.ID, question.ID)
			}
		}
	}
}

func TestCatalogGet(t *testing.T) {
	catalog, err := NewCatalog(Quiz{ID: "a", Title: "A"}, Quiz{ID: "b", Title: "B"})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	got, ok := catalog.Get("b")
	if !ok || got.Title != "B" {
		t.Fatalf("expected quiz b, got %+v (ok=%v)", got, ok)
	}
	if _, ok := catalog.Get("missing"); ok {
		t.Fatalf("expected missing quiz to be absent")
	}
	if list := catalog.List(); len(list) != 2 || list[0].ID != "a" {
		t.Fatalf("unexpected list order: %+v", list)
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	if _, err := NewCatalog(Quiz{ID: "a"}, Quiz{ID: "a"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadCatalogIncludesDirs(t *testing.T) {
	dir := t.TempDir()
	payload := `id: extra
title: Extra
questions:
  - id: q1
    question: Yes?
    choices: [{id: y, text: "Yes"}, {id: n, text: "No"}]
    correctChoiceId: y
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	catalog, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if _, ok := catalog.Get("extra"); !ok {
		t.Fatalf("expected extra quiz in catalog")
	}
	if _, ok := catalog.Get("web-basics"); !ok {
		t.Fatalf("expected builtin quiz in catalog")
	}
}
