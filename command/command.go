package command

import (
	"flag"
	"io"
)

// Command is the interface of every qview verb.  Commands are parameterized
// by their flags, validated once, and then immutable: Perform may run
// concurrently against the same command value (the daemon does this).
type Command interface {
	// Add registers the verb's flags.
	Add(fs *flag.FlagSet)

	// Summary returns the text printed by `qview help <verb>`.
	Summary() []string

	// Validate checks and post-processes the parsed flags.
	Validate() error

	// Perform runs the verb.  Input records come from in unless the verb
	// has its own input source.
	Perform(in io.Reader, stdout, stderr io.Writer) error
}
