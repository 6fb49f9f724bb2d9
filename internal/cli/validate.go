package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"quizdeck/internal/quiz"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizdeck/config.yml)")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}

		if flags.NArg() > 0 {
			return validateQuizFiles(flags.Args(), stdout, stderr)
		}

		rt, err := openRuntime(context.Background(), *configPath, false, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		defer rt.Close()
		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "Catalog OK (%d quizzes)\n", len(rt.catalog.List()))
		return ExitOK
	}
}

func validateQuizFiles(paths []string, stdout, stderr io.Writer) int {
	code := ExitOK
	for _, path := range paths {
		loaded, err := quiz.LoadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed: %s:\n%v\n", path, err)
			code = ExitError
			continue
		}
		fmt.Fprintf(stdout, "OK %s (%s, %d questions)\n", path, loaded.ID, len(loaded.Questions))
	}
	return code
}
