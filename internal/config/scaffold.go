package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScaffoldOptions are the answers collected by quizdeck init.
type ScaffoldOptions struct {
	Backend    string
	CatalogDir string
}

const configTemplate = `version: 1
storage:
  backend: %s
  path: %q
  dsn: ""
  redis:
    addr: "localhost:6379"
    password: ""
    db: 0
catalog:
  dirs:
    - %q
ui:
  mode: auto
  no_color: false
log:
  level: warn
  file: ""
`

const exampleQuiz = `id: example
title: Example quiz
description: Edit or copy this file to add your own questions.
questions:
  - id: q1
    question: Which planet is closest to the sun?
    choices:
      - id: mercury
        text: Mercury
      - id: venus
        text: Venus
    correctChoiceIds: [mercury]
  - id: q2
    question: Which of these are prime numbers?
    type: multi
    choices:
      - id: two
        text: "2"
      - id: four
        text: "4"
      - id: five
        text: "5"
    correctChoiceIds: [two, five]
    explanation: 4 is divisible by 2.
`

// Scaffold writes a config file at configPath and an example quiz in the
// catalog directory. It returns the files it wrote.
func Scaffold(configPath string, opts ScaffoldOptions) ([]string, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if err := ensureAbsent(configPath, "config"); err != nil {
		return nil, err
	}
	backend := opts.Backend
	if backend == "" {
		backend = "file"
	}
	catalogDir := opts.CatalogDir
	if catalogDir == "" {
		catalogDir = "quizzes"
	}

	root := RootFromConfigPath(configPath)
	examplePath := filepath.Join(root, catalogDir, "example.yml")
	if filepath.IsAbs(catalogDir) {
		examplePath = filepath.Join(catalogDir, "example.yml")
	}
	if err := ensureAbsent(examplePath, "example quiz"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(examplePath), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	payload := fmt.Sprintf(configTemplate, backend, DefaultStateRel, catalogDir)
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		return nil, fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(examplePath, []byte(exampleQuiz), 0o644); err != nil {
		return nil, fmt.Errorf("write example quiz: %w", err)
	}
	return []string{configPath, examplePath}, nil
}

func ensureAbsent(path, label string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s path %q is a directory", label, path)
		}
		return fmt.Errorf("%s file already exists at %q", label, path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s file: %w", label, err)
	}
	return nil
}
