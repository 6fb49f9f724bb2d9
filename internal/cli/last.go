package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"
)

// runLast builds the handler for the last command.
func runLast(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		ctx := context.Background()
		rt, err := openRuntime(ctx, *configPath, true, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Last failed: %v\n", err)
			return ExitError
		}
		defer rt.Close()

		snapshot, ok := rt.session.LastRun(ctx)
		if !ok {
			fmt.Fprintln(stdout, "No saved run.")
			return ExitOK
		}
		opened, err := rt.session.OpenLastResult(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Last failed: %v\n", err)
			return ExitError
		}
		if !opened {
			fmt.Fprintln(stdout, "No saved run.")
			return ExitOK
		}

		if snapshot.RunID != "" {
			fmt.Fprintf(stdout, "Run %s\n", snapshot.RunID)
		}
		if finished := snapshot.Finished(); !finished.IsZero() {
			fmt.Fprintf(stdout, "Finished %s\n", finished.Local().Format(time.DateTime))
		}
		printResult(stdout, rt.session)
		return ExitOK
	}
}
