package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"quizdeck/internal/quiz"
	"quizdeck/internal/ui/play"
)

// takeInput allows tests to override stdin for the attempt.
var takeInput io.Reader = os.Stdin

// runTake builds the handler for the take command.
func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizdeck/config.yml)")
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: ui.mode from config)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one quiz id")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		quizID := flags.Arg(0)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rt, err := openRuntime(ctx, *configPath, true, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			return ExitError
		}
		defer rt.Close()

		mode := *uiMode
		if mode == "" {
			mode = rt.cfg.UI.Mode
		}
		decision, err := resolveUIMode(mode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		if err := rt.session.StartByID(quizID); err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			if errors.Is(err, quiz.ErrNotFound) {
				fmt.Fprintln(stderr, "Run \"quizdeck list\" to see available quizzes.")
			}
			return ExitError
		}
		rt.logger.Info("attempt started", "quiz_id", quizID, "live", decision.useLive)

		if decision.useLive {
			err = play.Run(ctx, rt.session, takeInput, stdout, play.Options{NoColor: *noColor || rt.cfg.UI.NoColor})
		} else {
			err = runPlain(ctx, rt.session, takeInput, stdout)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Take failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
