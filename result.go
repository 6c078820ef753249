package rclonerun

import (
	"fmt"

	"github.com/monopole/rclonerun/exitcode"
	"github.com/monopole/rclonerun/parsers"
)

// Command is one request: a template, the values to substitute into it,
// and the error kinds to tolerate on this call. A Command is consumed by
// Run and never mutated.
type Command struct {
	// Template is the rclone command line with %s placeholders, starting
	// at the subcommand, e.g. "copy %s %s".
	Template string

	// Args are the substitution values in placeholder order. An element
	// may be a scalar, a []string or a []any; arrays expand element-wise.
	Args []any

	// Suppress names error kinds to downgrade from fatal to warning for
	// this call, in addition to the Runner-wide list. Identifiers match
	// case-insensitively.
	Suppress []string
}

// Result is everything one Run produced.
type Result struct {
	// Cmd is the fully compiled command line that was executed.
	Cmd string

	// Subcommand is the lowercased subcommand token, "" if unrecognized.
	Subcommand string

	// Status is the raw process exit status.
	Status int

	// Output is the combined stdout and stderr text, unparsed.
	Output string

	// Kind classifies Status.
	Kind exitcode.Kind

	// Warning holds the classified error when a suppression rule
	// downgraded it; nil on a clean exit or a fatal one.
	Warning error

	// Echoed reports whether output was streamed live to the echo sink.
	Echoed bool

	// Parsed is the subcommand-specific structured result; nil for
	// subcommands without a parser, and nil when the run aborted.
	Parsed parsers.Parsed
}

// ExitError is a nonzero exit that no suppression rule covered. Its message
// carries the full command line and the raw output, so the failure can be
// reproduced by hand.
type ExitError struct {
	Kind   exitcode.Kind
	Status int
	Cmd    string
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("rclone exited %d (%s) running %q; output:\n%s",
		e.Status, e.Kind, e.Cmd, e.Output)
}
