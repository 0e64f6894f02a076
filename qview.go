// `qview` -- Render PBS queue, node and owner reports from raw records
//
// See MANUAL.md for a manual, or run `qview help` for brief help.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	. "qview/command"
	"qview/daemon"
	"qview/jobs"
	"qview/nodes"
	"qview/owners"
)

const QviewVersion = "0.1.0"

func main() {
	err := qview()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func qview() error {
	out := flag.CommandLine.Output()

	if len(os.Args) < 2 {
		fmt.Fprintf(out, "Required operation missing, try `qview help`\n")
		os.Exit(2)
	}

	verb := os.Args[1]
	switch verb {
	case "help", "-h":
		fmt.Fprintf(out, "Usage: %s command [options]\n", os.Args[0])
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  jobs    - print a table of queued and running jobs\n")
		fmt.Fprintf(out, "  nodes   - print a table of cluster nodes\n")
		fmt.Fprintf(out, "  owners  - print per-user aggregates of the job table\n")
		fmt.Fprintf(out, "  daemon  - serve the reports over HTTP\n")
		fmt.Fprintf(out, "  version - print information about the program\n")
		fmt.Fprintf(out, "  help    - print this message\n")
		fmt.Fprintf(out, "Each command accepts -h to further explain options.\n")
		os.Exit(0)
	case "version":
		fmt.Printf("qview version(%s)\n", QviewVersion)
		os.Exit(0)
	}

	cmd := newCommand(verb)
	if cmd == nil {
		fmt.Fprintf(out, "Unknown operation `%s`, try `qview help`\n", verb)
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cmd.Add(fs)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s %s [options]\n\n", os.Args[0], verb)
		for _, s := range cmd.Summary() {
			fmt.Fprintln(out, "  ", s)
		}
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[2:])

	if rest := fs.Args(); len(rest) > 0 {
		fmt.Fprintf(out, "Rest arguments not accepted by `%s`.\n", verb)
		os.Exit(2)
	}

	if err := cmd.Validate(); err != nil {
		fmt.Fprintf(out, "Bad arguments, try -h\n%v\n", err.Error())
		os.Exit(2)
	}

	return cmd.Perform(os.Stdin, os.Stdout, os.Stderr)
}

func newCommand(verb string) Command {
	switch verb {
	case "jobs":
		return new(jobs.JobsCommand)
	case "nodes":
		return new(nodes.NodesCommand)
	case "owners":
		return new(owners.OwnersCommand)
	case "daemon":
		return daemon.New(runVerb)
	default:
		return nil
	}
}

// runVerb is the entry point the daemon uses to run a report for an HTTP
// request; same construction and validation as the command line, but with
// errors reported instead of exiting.
func runVerb(verb string, args []string, in io.Reader, stdout, stderr io.Writer) error {
	cmd := newCommand(verb)
	if cmd == nil || verb == "daemon" {
		return fmt.Errorf("Unknown operation %q", verb)
	}
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cmd.Add(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cmd.Validate(); err != nil {
		return err
	}
	return cmd.Perform(in, stdout, stderr)
}
