// `qview daemon` - HTTP server that renders reports on behalf of remote
// clients.
//
// The server responds to POST requests whose path is a report verb: `POST
// /jobs` runs `qview jobs` with the request body as the raw-record input.
// Query parameters are the verb's long option names with urlencoded values;
// boolean options must have the value "true".  The response body is the
// rendered report, text/plain, colored only when `color=true` was asked for.
// A successful run yields 2xx, a bad request 4xx, an internal failure 5xx.
//
// Arguments:
//
// -port <port-number>
//
//  Optional.  The port to listen on, default 8088.
//
// -auth <filename>
//
//  Optional.  Names a file with username:password pairs, one per line, to
//  be matched against incoming HTTP basic authentication headers.  (If the
//  connection is not HTTPS then the password may have been intercepted in
//  transit.)
//
// Termination and reloading:
//
//  Sending SIGTERM to `qview daemon` will shut it down in an orderly
//  manner.  SIGHUP rereads the -auth password file, so credentials can be
//  rotated without a restart; without -auth it is ignored.
//
//  The daemon is usually run in the background and exit codes are not
//  easily examined, but when the daemon exits it will deliver a non-zero
//  exit code if an error was discovered during startup or shutdown.

package daemon

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"qview/auth"
	. "qview/command"
)

const defaultListenPort = 8088

// RunVerb runs one report verb against the given argument list and streams;
// the daemon is wired to main's verb dispatcher through this so the two
// entry points cannot drift apart.
type RunVerb func(verb string, args []string, in io.Reader, stdout, stderr io.Writer) error

// Immutable after Validate and thread-safe: every HTTP handler runs as a
// separate goroutine against this one value.
type DaemonCommand struct {
	VerboseArgs
	Port     uint
	AuthFile string

	authenticator *auth.Authenticator
	runVerb       RunVerb
}

func New(runVerb RunVerb) *DaemonCommand {
	return &DaemonCommand{runVerb: runVerb}
}

func (dc *DaemonCommand) Add(fs *flag.FlagSet) {
	dc.VerboseArgs.Add(fs)
	fs.UintVar(&dc.Port, "port", defaultListenPort, "Listen for connections on `port`")
	fs.StringVar(&dc.AuthFile, "auth", "", "Authentication info `filename` for report access")
}

func (dc *DaemonCommand) Summary() []string {
	return []string{
		"Run qview as an HTTP server that renders reports for POSTed",
		"record sets.  See the manual for the request protocol.",
	}
}

func (dc *DaemonCommand) Validate() error {
	var e1, e2 error
	e1 = dc.VerboseArgs.Validate()
	if dc.AuthFile != "" {
		dc.authenticator, e2 = auth.ReadPasswords(dc.AuthFile)
		if e2 != nil {
			e2 = fmt.Errorf("Failed to read authentication file: %w", e2)
		}
	}
	return errors.Join(e1, e2)
}
