package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizdeck/internal/config"
	"quizdeck/internal/kv"
	"quizdeck/internal/vcs"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// workTreeRoot is overridden in tests.
var workTreeRoot = func(startDir string) string {
	root, err := vcs.WorkTreeRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path of the config file to create (default: .quizdeck/config.yml at the repo root)")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		wd, err := workingDir()
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		var target, repoRoot string
		if value := strings.TrimSpace(*configPath); value != "" {
			if !filepath.IsAbs(value) {
				value = filepath.Join(wd, value)
			}
			target = value
			repoRoot = workTreeRoot(config.RootFromConfigPath(target))
		} else {
			repoRoot = workTreeRoot(wd)
			base := repoRoot
			if base == "" {
				base = wd
			}
			target = config.ConfigPath(base)
		}

		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", target)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", target)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		reader := bufio.NewReader(initInput)
		confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize quizdeck config at %s?", target), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		backendNames := make([]string, 0, len(kv.Backends))
		for _, b := range kv.Backends {
			backendNames = append(backendNames, string(b))
		}
		backendValue, err := promptChoice(reader, stdout, "Storage backend", backendNames, string(kv.BackendFile))
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		backend, err := kv.ParseBackend(backendValue)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		catalogDir, err := promptString(reader, stdout, "Quiz folder", "quizzes")
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		addGitignore := false
		if repoRoot != "" && backend == kv.BackendFile {
			answer, err := promptYesNo(reader, stdout, fmt.Sprintf("Add %s to .gitignore?", config.DefaultStateRel), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			addGitignore = answer
		}

		written, err := config.Scaffold(target, config.ScaffoldOptions{Backend: string(backend), CatalogDir: catalogDir})
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}

		if addGitignore {
			statePath := filepath.Join(config.RootFromConfigPath(target), config.DefaultStateRel)
			updated, err := addGitignoreEntry(repoRoot, statePath)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}
