package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
)

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		rt, err := openRuntime(context.Background(), *configPath, false, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "List failed: %v\n", err)
			return ExitError
		}
		defer rt.Close()

		writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tTITLE\tQUESTIONS")
		for _, q := range rt.catalog.List() {
			fmt.Fprintf(writer, "%s\t%s\t%d\n", q.ID, q.Title, len(q.Questions))
		}
		if err := writer.Flush(); err != nil {
			fmt.Fprintf(stderr, "List failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
