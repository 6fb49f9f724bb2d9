package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizdeck/internal/config"
)

const pairQuizYAML = `id: pair
title: Pair
questions:
  - id: q1
    question: First
    choices:
      - {id: a, text: A}
      - {id: x, text: X}
    correctChoiceIds: [a]
  - id: q2
    question: Second
    choices:
      - {id: b, text: B}
      - {id: x, text: X}
    correctChoiceId: b
`

// setupWorkspace creates a project with a config, a quiz folder holding the
// pair quiz, and points the CLI at it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, config.ConfigPath(root), "version: 1\ncatalog:\n  dirs: [quizzes]\n")
	writeFile(t, filepath.Join(root, "quizzes", "pair.yml"), pairQuizYAML)

	for _, key := range []string{
		config.EnvStorageBackend, config.EnvStorageDSN, config.EnvStoragePath,
		config.EnvRedisAddr, config.EnvRedisPassword, config.EnvRedisDB, config.EnvLogLevel,
	} {
		prev, had := os.LookupEnv(key)
		_ = os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
			}
		})
	}

	origWD, origTTY, origTake := workingDir, isTerminal, takeInput
	workingDir = func() (string, error) { return root, nil }
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() {
		workingDir, isTerminal, takeInput = origWD, origTTY, origTake
	})
	return root
}

func writeFile(t *testing.T, path, payload string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// runWithInput runs the CLI with stdin for take set to input.
func runWithInput(input string, args ...string) (int, string, string) {
	takeInput = strings.NewReader(input)
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}
