package rclonerun

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/monopole/rclonerun/exitcode"
	"github.com/monopole/rclonerun/internal/cmdline"
	"github.com/monopole/rclonerun/parsers"
)

// Runner executes rclone commands and turns their output into typed
// results.
//
// Each call to Run is one pass through a fixed pipeline: build the command
// line from a template and values, run it as a single synchronous
// subprocess, classify the exit status against rclone's code table, and,
// for the recognized subcommands, parse the captured output. Data flows
// strictly forward; classification never looks at parsed output, and
// parsing consults classification only to skip JSON decoding when lsjson
// hit a missing directory.
//
// A Runner holds no per-call state, so one instance may be shared by
// concurrent goroutines. The only shared resource is the live-echo sink;
// when two verbose Runs overlap, their echoed output interleaves in no
// defined order.
//
// There is no timeout, retry or cancellation: a hung subprocess hangs the
// caller. That's a known limitation, not something this layer papers over.
type Runner struct {
	params *Parameters
}

// NewRunner returns a new Runner, or an error on bad parameters.
// A nil argument gets all-default Parameters.
func NewRunner(params *Parameters) (*Runner, error) {
	if params == nil {
		params = &Parameters{}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Runner{params: params}, nil
}

// RunFmt runs a command with no per-call suppressions.
// It's sugar for Run.
func (r *Runner) RunFmt(template string, args ...any) (*Result, error) {
	return r.Run(Command{Template: template, Args: args})
}

// Run executes one Command through the whole pipeline.
//
// On a formatting error nothing executes and the Result is nil. On a fatal
// exit the Result still carries the status and raw output next to the
// returned *ExitError, but parsing is skipped entirely. A suppressed exit
// proceeds to parsing and reports the downgraded error in Result.Warning.
// Parsing failures abort regardless of suppressions.
func (r *Runner) Run(c Command) (*Result, error) {
	cc, err := cmdline.Compile(r.params.Path, c.Template, c.Args)
	if err != nil {
		return nil, fmt.Errorf("formatting %q: %w", c.Template, err)
	}
	r.params.Logger.Debug("running rclone", "cmd", cc.Line)

	status, output, err := r.exec(cc)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Cmd:        cc.Line,
		Subcommand: cc.Subcommand,
		Status:     status,
		Output:     output,
		Kind:       exitcode.Classify(status),
		Echoed:     cc.Echo,
	}
	r.params.Logger.Debug("rclone exited",
		"status", status, "kind", res.Kind.String())

	if res.Kind != exitcode.KindNone {
		exitErr := &ExitError{
			Kind: res.Kind, Status: status, Cmd: cc.Line, Output: output,
		}
		if !r.suppressed(c, res.Kind) {
			return res, exitErr
		}
		res.Warning = exitErr
	}
	if p := parsers.For(cc.Subcommand); p != nil {
		parsed, err := p.Parse(output, cc.Line, res.Kind)
		if err != nil {
			return res, err
		}
		res.Parsed = parsed
	}
	return res, nil
}

// suppressed merges the runner-wide and per-call suppression lists and
// asks whether k is covered.
func (r *Runner) suppressed(c Command, k exitcode.Kind) bool {
	ids := make([]string, 0, len(r.params.Suppress)+len(c.Suppress))
	ids = append(ids, r.params.Suppress...)
	ids = append(ids, c.Suppress...)
	return exitcode.NewSuppressSet(ids...).Has(k)
}

// exec runs the compiled command, blocking until it exits, and returns the
// exit status and combined stdout/stderr text. When the caller asked for
// verbose output the text is also streamed to the echo sink as it arrives.
//
// A nonzero exit status is not an error here; classification is the next
// stage's job. The error return covers infrastructure trouble only, e.g.
// an executable that could not be started.
func (r *Runner) exec(cc *cmdline.Compiled) (int, string, error) {
	cmd := exec.Command(cc.Argv[0], cc.Argv[1:]...)
	var buf bytes.Buffer
	var sink io.Writer = &buf
	if cc.Echo {
		sink = io.MultiWriter(&buf, r.params.Echo)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, buf.String(),
				fmt.Errorf("trying to start %s - %w", cc.Argv[0], err)
		}
		return exitErr.ExitCode(), buf.String(), nil
	}
	return 0, buf.String(), nil
}
